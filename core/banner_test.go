package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBannerAutoDismiss(t *testing.T) {
	var b Banner
	b.Show(BannerSuccess, "guardado", 20*time.Millisecond)

	kind, msg := b.Message()
	assert.Equal(t, BannerSuccess, kind)
	assert.Equal(t, "guardado", msg)

	time.Sleep(60 * time.Millisecond)
	_, msg = b.Message()
	assert.Empty(t, msg)
}

// A newer banner must survive the expiry of an older one: the stale timer
// fires but finds the sequence has moved on.
func TestBannerStaleTimerIgnored(t *testing.T) {
	var b Banner
	b.Show(BannerError, "primero", 20*time.Millisecond)
	b.Show(BannerSuccess, "segundo", 500*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	kind, msg := b.Message()
	assert.Equal(t, BannerSuccess, kind)
	assert.Equal(t, "segundo", msg)
}

func TestBannerSticky(t *testing.T) {
	var b Banner
	b.ShowSticky(BannerError, "sin conexión")
	time.Sleep(30 * time.Millisecond)

	_, msg := b.Message()
	assert.Equal(t, "sin conexión", msg)
	assert.True(t, b.Sticky())

	b.Dismiss()
	_, msg = b.Message()
	assert.Empty(t, msg)
}
