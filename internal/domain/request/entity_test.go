//go:build unit

package request_test

import (
	"testing"
	"time"

	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ServiceRequestBuilder)
	errIs  error
}

func TestServiceRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewServiceRequestBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, request.KindFood, actual.Kind())
		assert.Equal(t, request.StatusPending, actual.Status())
		assert.Equal(t, staff.DepartmentKitchen, actual.Department())
		assert.Nil(t, actual.AssignedTo())
		assert.Equal(t, int64(1), actual.Version())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		// 1850 + 2*450
		assert.Equal(t, int64(2750), actual.TotalCents())
	})

	t.Run("department defaults to the kind's home department", func(t *testing.T) {
		food, err := builder.NewServiceRequestBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, staff.DepartmentKitchen, food.Department())

		hk, err := builder.NewServiceRequestBuilder().
			WithKind(request.KindHousekeeping).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, staff.DepartmentHousekeeping, hk.Department())
	})

	t.Run("explicit department wins over the default", func(t *testing.T) {
		actual, err := builder.NewServiceRequestBuilder().
			WithKind(request.KindHousekeeping).
			WithDepartment("floor-3").
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, staff.Department("floor-3"), actual.Department())
	})

	t.Run("intake validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "unknown kind",
				mutate: func(b *builder.ServiceRequestBuilder) { b.Kind = "spa" },
				errIs:  request.ErrUnknownKind,
			},
			{
				name:   "empty room number",
				mutate: func(b *builder.ServiceRequestBuilder) { b.RoomNumber = "" },
				errIs:  request.ErrEmptyRoomNumber,
			},
			{
				name:   "missing requester",
				mutate: func(b *builder.ServiceRequestBuilder) { b.RequesterID = uuid.Nil },
				errIs:  request.ErrMissingRequester,
			},
			{
				name:   "no line items",
				mutate: func(b *builder.ServiceRequestBuilder) { b.LineItems = nil },
				errIs:  request.ErrNoLineItems,
			},
			{
				name: "zero quantity line item",
				mutate: func(b *builder.ServiceRequestBuilder) {
					b.LineItems = []request.LineItem{{Name: "Towels", Quantity: 0}}
				},
				errIs: request.ErrInvalidQuantity,
			},
			{
				name: "negative price line item",
				mutate: func(b *builder.ServiceRequestBuilder) {
					b.LineItems = []request.LineItem{{Name: "Towels", Quantity: 1, PriceCents: -1}}
				},
				errIs: request.ErrNegativePrice,
			},
			{
				name: "free of charge line item is fine",
				mutate: func(b *builder.ServiceRequestBuilder) {
					b.LineItems = []request.LineItem{{Name: "Extra Towels", Quantity: 3, PriceCents: 0}}
				},
			},
		})
	})
}

func TestNewLineItem(t *testing.T) {
	t.Run("subtotal multiplies quantity and unit price", func(t *testing.T) {
		li, err := request.NewLineItem("menu-1", "Club Sandwich", 3, 1850, "")
		require.NoError(t, err)
		assert.Equal(t, int64(5550), li.SubtotalCents())
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		_, err := request.NewLineItem("menu-1", "Club Sandwich", 0, 1850, "")
		assert.ErrorIs(t, err, request.ErrInvalidQuantity)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := request.NewLineItem("menu-1", "Club Sandwich", 1, -50, "")
		assert.ErrorIs(t, err, request.ErrNegativePrice)
	})
}

func TestAdvanced(t *testing.T) {
	staffID := uuid.New()

	t.Run("claim fixes the assignee and bumps the version", func(t *testing.T) {
		req, err := builder.NewServiceRequestBuilder().BuildDomain()
		require.NoError(t, err)

		later := req.CreatedAt().Add(5 * time.Minute)
		next := req.Advanced(request.StatusPreparing, &staffID, later)

		assert.Equal(t, request.StatusPreparing, next.Status())
		require.NotNil(t, next.AssignedTo())
		assert.Equal(t, staffID, *next.AssignedTo())
		assert.Equal(t, req.Version()+1, next.Version())
		assert.Equal(t, later, next.UpdatedAt())

		// the receiver is untouched
		assert.Equal(t, request.StatusPending, req.Status())
		assert.Nil(t, req.AssignedTo())
		assert.Equal(t, int64(1), req.Version())
	})

	t.Run("assignee is write-once", func(t *testing.T) {
		other := uuid.New()
		req := builder.NewServiceRequestBuilder().BuildAt(request.StatusPreparing, staffID)

		next := req.Advanced(request.StatusInProgress, &other, req.UpdatedAt())
		require.NotNil(t, next.AssignedTo())
		assert.Equal(t, staffID, *next.AssignedTo())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewServiceRequestBuilder()
			tc.mutate(b)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}
