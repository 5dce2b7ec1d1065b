//go:build unit

package dispatch

import (
	"testing"
	"time"

	"roomserve/internal/domain/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_Publish(t *testing.T) {
	r := NewRegistry(8, time.Minute, testLogger())
	b := NewBroadcaster(r, testLogger())

	all := r.Subscribe(Filter{})
	kitchenOnly := r.Subscribe(Filter{Department: "kitchen"})
	floor3 := r.Subscribe(Filter{Kind: request.KindHousekeeping, Department: "floor-3"})

	b.Publish(envelopeFixture("food", "kitchen", 1))
	b.Publish(envelopeFixture("housekeeping", "floor-3", 1))

	t.Run("wildcard session receives everything", func(t *testing.T) {
		first := <-all.Events()
		second := <-all.Events()
		assert.Equal(t, "kitchen", first.Department)
		assert.Equal(t, "floor-3", second.Department)
		assert.Len(t, all.Events(), 0)
	})

	t.Run("department filter excludes other departments", func(t *testing.T) {
		got := <-kitchenOnly.Events()
		assert.Equal(t, "kitchen", got.Department)
		assert.Len(t, kitchenOnly.Events(), 0)
	})

	t.Run("narrow filter sees only its slice", func(t *testing.T) {
		got := <-floor3.Events()
		assert.Equal(t, "floor-3", got.Department)
		assert.Equal(t, "housekeeping", got.Kind)
		assert.Len(t, floor3.Events(), 0)
	})
}

func TestBroadcaster_PerRequestOrderPreserved(t *testing.T) {
	r := NewRegistry(16, time.Minute, testLogger())
	b := NewBroadcaster(r, testLogger())
	s := r.Subscribe(Filter{})

	for v := int64(1); v <= 5; v++ {
		b.Publish(envelopeFixture("food", "kitchen", v))
	}

	for v := int64(1); v <= 5; v++ {
		got := <-s.Events()
		assert.Equal(t, v, got.Record.Version, "events must arrive in acceptance order")
	}
}

func TestBroadcaster_LaggingSessionDoesNotBlockOthers(t *testing.T) {
	r := NewRegistry(1, time.Minute, testLogger())
	b := NewBroadcaster(r, testLogger())

	laggard := r.Subscribe(Filter{})
	healthy := r.Subscribe(Filter{})

	b.Publish(envelopeFixture("food", "kitchen", 1))
	b.Publish(envelopeFixture("food", "kitchen", 2))

	// the laggard kept only the first event
	got := <-laggard.Events()
	assert.Equal(t, int64(1), got.Record.Version)
	assert.Len(t, laggard.Events(), 0)

	// drain the healthy session up to its buffer
	got = <-healthy.Events()
	require.Equal(t, int64(1), got.Record.Version)

	// further publishes still reach the healthy session once it drains
	b.Publish(envelopeFixture("food", "kitchen", 3))
	got = <-healthy.Events()
	assert.Equal(t, int64(3), got.Record.Version)
}
