package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_PerClientBuckets(t *testing.T) {
	store := NewStore(Rate{RequestsPerSecond: 0, Burst: 2}, 10, time.Minute)

	assert.True(t, store.Allow("10.0.0.1"))
	assert.True(t, store.Allow("10.0.0.1"))
	assert.False(t, store.Allow("10.0.0.1"))

	assert.True(t, store.Allow("10.0.0.2"), "other clients have their own bucket")
	assert.Equal(t, 2, store.Len())
	assert.Same(t, store.GetLimiter("10.0.0.1"), store.GetLimiter("10.0.0.1"))
}

func TestStore_BoundedSize(t *testing.T) {
	store := NewStore(Rate{RequestsPerSecond: 0, Burst: 1}, 2, time.Minute)

	store.Allow("a")
	store.Allow("b")
	store.Allow("c")

	assert.Equal(t, 2, store.Len())
}

func TestStore_BucketsExpire(t *testing.T) {
	store := NewStore(Rate{RequestsPerSecond: 0, Burst: 1}, 10, 50*time.Millisecond)

	assert.True(t, store.Allow("a"))
	assert.False(t, store.Allow("a"))

	time.Sleep(150 * time.Millisecond)
	assert.True(t, store.Allow("a"), "an expired bucket starts full")
}
