package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var errInvalidToken = errors.New("invalid token")

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name      string `json:"nombre,omitempty"`
	Email     string `json:"correo,omitempty"`
	Role      string `json:"rol,omitempty"`
	CI        string `json:"ci,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"`
	IsTeacher bool   `json:"is_teacher,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

// NewClaims builds the claims for a user, as the stub server issues them.
func NewClaims(usr User, issuer string, expiry time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   usr.ID,
			Audience:  "RedSocial",
			ExpiresAt: now.Add(expiry).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:      usr.Name,
		Email:     usr.Email,
		Role:      usr.Role,
		CI:        usr.CI,
		IsStudent: usr.IsStudent(),
		IsTeacher: usr.IsTeacher(),
		IsAdmin:   usr.IsAdmin(),
	}
}

// SignToken signs claims with the given secret (HS256).
func SignToken(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// ParseClaims extracts the claims from a bearer token. When a secret is
// provided the signature is verified; otherwise the token is treated as
// opaque (the real backend owns the key) and claims are parsed unverified.
func ParseClaims(tokenString string, secret []byte) (*Claims, error) {
	claims := new(Claims)
	if len(secret) > 0 {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errInvalidToken
			}
			return secret, nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "parsing token")
		}
		if !token.Valid {
			return nil, errInvalidToken
		}
		return claims, nil
	}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(err, "parsing token")
	}
	return claims, nil
}
