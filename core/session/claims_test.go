package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func testUser() User {
	return User{
		ID:       "u-1",
		Name:     "Ana",
		LastName: "Quispe",
		Email:    "ana@uni.edu",
		Role:     RoleStudent,
		CI:       "E-200",
	}
}

func TestClaimsRoundTrip(t *testing.T) {
	tok, err := SignToken(NewClaims(testUser(), "tests", time.Hour), testSecret)
	if err != nil {
		t.Fatalf("SignToken() failed: %v", err)
	}

	claims, err := ParseClaims(tok, testSecret)
	if err != nil {
		t.Fatalf("ParseClaims() failed: %v", err)
	}
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ana@uni.edu", claims.Email)
	assert.Equal(t, RoleStudent, claims.Role)
	assert.Equal(t, "E-200", claims.CI)
	assert.True(t, claims.IsStudent)
	assert.False(t, claims.IsAdmin)
}

func TestParseClaimsBadSecret(t *testing.T) {
	tok, err := SignToken(NewClaims(testUser(), "tests", time.Hour), testSecret)
	if err != nil {
		t.Fatalf("SignToken() failed: %v", err)
	}
	_, err = ParseClaims(tok, []byte("other-secret"))
	assert.Error(t, err)
}

// Tokens from the real backend are opaque to the client: with no secret the
// claims are read without verification.
func TestParseClaimsUnverified(t *testing.T) {
	tok, err := SignToken(NewClaims(testUser(), "backend", time.Hour), []byte("backend-only"))
	if err != nil {
		t.Fatalf("SignToken() failed: %v", err)
	}
	claims, err := ParseClaims(tok, nil)
	if err != nil {
		t.Fatalf("ParseClaims() failed: %v", err)
	}
	assert.Equal(t, "u-1", claims.Subject)
}

func TestUserRoles(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.True(t, User{Role: RoleTeacher}.IsTeacher())
	assert.False(t, User{Role: RoleStudent}.IsAdmin())
	assert.Greater(t, RolePriority(RoleAdmin), RolePriority(RoleTeacher))
	assert.Greater(t, RolePriority(RoleTeacher), RolePriority(RoleStudent))
	assert.Zero(t, RolePriority("desconocido"))
}
