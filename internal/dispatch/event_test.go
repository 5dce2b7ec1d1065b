//go:build unit

package dispatch_test

import (
	"testing"

	"roomserve/internal/dispatch"
	"roomserve/internal/domain/request"
	"roomserve/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFrom(t *testing.T) {
	req, err := builder.NewServiceRequestBuilder().
		WithDepartment("floor-3").
		BuildDomain()
	require.NoError(t, err)

	got := dispatch.SnapshotFrom(req)

	want := dispatch.Snapshot{
		ID:          req.ID(),
		Kind:        "food",
		RoomNumber:  "302",
		RequesterID: req.RequesterID(),
		Department:  "floor-3",
		LineItems: []dispatch.LineItem{
			{ServiceRef: "menu-club-sandwich", Name: "Club Sandwich", Quantity: 1, PriceCents: 1850},
			{ServiceRef: "menu-sparkling-water", Name: "Sparkling Water", Quantity: 2, PriceCents: 450},
		},
		TotalCents: 2750,
		Status:     "pending",
		AssignedTo: nil,
		Version:    1,
		CreatedAt:  req.CreatedAt(),
		UpdatedAt:  req.UpdatedAt(),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEnvelope(t *testing.T) {
	staffID := builder.NewActorBuilder().Build().ID
	req := builder.NewServiceRequestBuilder().BuildAt(request.StatusPreparing, staffID)

	env := dispatch.NewEnvelope(dispatch.EventRequestUpdated, req)

	assert.Equal(t, dispatch.EventRequestUpdated, env.EventType)
	assert.Equal(t, "food", env.Kind)
	assert.Equal(t, "kitchen", env.Department)
	assert.Equal(t, req.ID(), env.Record.ID)
	assert.Equal(t, "preparing", env.Record.Status)
	require.NotNil(t, env.Record.AssignedTo)
	assert.Equal(t, staffID, *env.Record.AssignedTo)
	assert.Equal(t, int64(2), env.Record.Version)
}
