package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocal_AppliesOffset(t *testing.T) {
	c := NewLocal(-180)

	before := time.Now().UTC().Add(-3 * time.Hour)
	got := c.Now()
	after := time.Now().UTC().Add(-3 * time.Hour)

	assert.Equal(t, time.UTC, got.Location())
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestFixed_Advance(t *testing.T) {
	at := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	c := &Fixed{At: at}

	c.Advance(90 * time.Minute)

	assert.Equal(t, at.Add(90*time.Minute), c.Now())
}
