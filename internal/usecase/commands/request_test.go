//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roomserve/internal/dispatch"
	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/infra/store"
	"roomserve/internal/pkg/clock"
	"roomserve/internal/pkg/errs"
	"roomserve/internal/usecase/commands"
	"roomserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// capturePublisher records published envelopes in order.
type capturePublisher struct {
	mu     sync.Mutex
	events []dispatch.Envelope
}

func (p *capturePublisher) Publish(env dispatch.Envelope) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, env)
}

func (p *capturePublisher) all() []dispatch.Envelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]dispatch.Envelope(nil), p.events...)
}

type RequestCommandsTestSuite struct {
	suite.Suite
	store     *store.MemoryRequestStore
	publisher *capturePublisher
	clock     *clock.MockClock
	cmds      commands.RequestCommands
}

func (s *RequestCommandsTestSuite) SetupTest() {
	s.store = store.NewMemoryRequestStore()
	s.publisher = &capturePublisher{}
	s.clock = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewRequestCommands(s.store, s.publisher, s.clock)
}

func TestRequestCommandsSuite(t *testing.T) {
	suite.Run(t, new(RequestCommandsTestSuite))
}

func (s *RequestCommandsTestSuite) createParams(muts ...func(*commands.CreateRequestParams)) commands.CreateRequestParams {
	params := commands.CreateRequestParams{
		Kind:        request.KindFood,
		RoomNumber:  "302",
		RequesterID: uuid.New(),
		LineItems: []commands.LineItemParams{
			{ServiceRef: "menu-club-sandwich", Name: "Club Sandwich", Quantity: 1, PriceCents: 1850},
			{ServiceRef: "menu-sparkling-water", Name: "Sparkling Water", Quantity: 2, PriceCents: 450},
		},
	}
	for _, m := range muts {
		m(&params)
	}
	return params
}

// ================================================================================
// CreateRequest
// ================================================================================

func (s *RequestCommandsTestSuite) TestCreateRequest() {
	ctx := context.Background()

	s.Run("persists a pending request and broadcasts RequestCreated", func() {
		req, err := s.cmds.CreateRequest(ctx, s.createParams())
		s.Require().NoError(err)

		s.Equal(request.StatusPending, req.Status())
		s.Equal(staff.DepartmentKitchen, req.Department())
		s.Equal(int64(2750), req.TotalCents())
		s.Equal(int64(1), req.Version())

		stored, err := s.store.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		s.Equal(req.ID(), stored.ID())

		events := s.publisher.all()
		s.Require().Len(events, 1)
		s.Equal(dispatch.EventRequestCreated, events[0].EventType)
		s.Equal(req.ID(), events[0].Record.ID)
		s.Equal("pending", events[0].Record.Status)
	})

	s.Run("validation failure publishes nothing", func() {
		_, err := s.cmds.CreateRequest(ctx, s.createParams(func(p *commands.CreateRequestParams) {
			p.LineItems = nil
		}))
		s.Require().Error(err)
		s.ErrorIs(err, errs.ErrDomainValidation)
		s.Empty(s.publisher.all())
	})

	s.Run("bad line item surfaces as validation error", func() {
		_, err := s.cmds.CreateRequest(ctx, s.createParams(func(p *commands.CreateRequestParams) {
			p.LineItems[0].Quantity = 0
		}))
		s.ErrorIs(err, errs.ErrDomainValidation)
	})
}

// ================================================================================
// ClaimOrAdvance
// ================================================================================

func (s *RequestCommandsTestSuite) seedPending() *request.ServiceRequest {
	req, err := s.cmds.CreateRequest(context.Background(), s.createParams())
	s.Require().NoError(err)
	return req
}

func (s *RequestCommandsTestSuite) TestClaimOrAdvance() {
	ctx := context.Background()
	kitchenStaff := builder.NewActorBuilder().Build()

	s.Run("claim fixes the assignee and broadcasts the update", func() {
		req := s.seedPending()

		updated, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusPreparing, kitchenStaff, nil)
		s.Require().NoError(err)
		s.Equal(request.StatusPreparing, updated.Status())
		s.Require().NotNil(updated.AssignedTo())
		s.Equal(kitchenStaff.ID, *updated.AssignedTo())
		s.Equal(int64(2), updated.Version())

		events := s.publisher.all()
		s.Require().Len(events, 2) // create + update
		s.Equal(dispatch.EventRequestUpdated, events[1].EventType)
		s.Equal("preparing", events[1].Record.Status)
		s.Equal(int64(2), events[1].Record.Version)
	})

	s.Run("full chain to delivery", func() {
		req := s.seedPending()

		for _, status := range []request.Status{request.StatusPreparing, request.StatusInProgress, request.StatusDelivered} {
			updated, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), status, kitchenStaff, nil)
			s.Require().NoError(err)
			s.Equal(status, updated.Status())
		}

		final, err := s.store.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		s.Equal(request.StatusDelivered, final.Status())
		s.Equal(int64(4), final.Version())
	})

	s.Run("unknown id", func() {
		_, err := s.cmds.ClaimOrAdvance(ctx, uuid.New(), request.StatusPreparing, kitchenStaff, nil)
		s.ErrorIs(err, errs.ErrRequestNotFound)
	})

	s.Run("skipping a step", func() {
		req := s.seedPending()
		_, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusDelivered, kitchenStaff, nil)
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("wrong department cannot claim", func() {
		req := s.seedPending()
		hkStaff := builder.NewActorBuilder().WithDepartment(staff.DepartmentHousekeeping).Build()

		_, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusPreparing, hkStaff, nil)
		s.ErrorIs(err, errs.ErrForbidden)
	})

	s.Run("second claimer is told who holds the claim", func() {
		req := s.seedPending()
		winner := builder.NewActorBuilder().Build()
		loser := builder.NewActorBuilder().Build()

		_, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusPreparing, winner, nil)
		s.Require().NoError(err)

		_, err = s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusInProgress, loser, nil)
		s.Require().Error(err)

		var assigned *commands.AlreadyAssignedError
		s.Require().True(errors.As(err, &assigned))
		s.Equal(winner.ID, assigned.AssigneeID)
		s.ErrorIs(err, errs.ErrForbidden)
	})

	s.Run("stale observed version is rejected before planning", func() {
		req := s.seedPending()

		_, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusPreparing, kitchenStaff, nil)
		s.Require().NoError(err)

		// client still holds version 1
		observed := int64(1)
		_, err = s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusInProgress, kitchenStaff, &observed)
		s.ErrorIs(err, errs.ErrStaleRequest)
	})

	s.Run("re-issuing the same transition is stale, not double-applied", func() {
		req := s.seedPending()

		_, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusPreparing, kitchenStaff, nil)
		s.Require().NoError(err)

		_, err = s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusPreparing, kitchenStaff, nil)
		s.ErrorIs(err, errs.ErrInvalidTransition)

		final, err := s.store.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		s.Equal(int64(2), final.Version())
	})

	s.Run("cancellation broadcasts like any other transition", func() {
		req := s.seedPending()

		updated, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusCancelled, kitchenStaff, nil)
		s.Require().NoError(err)
		s.Equal(request.StatusCancelled, updated.Status())
		s.Nil(updated.AssignedTo(), "cancel from pending never assigns")

		events := s.publisher.all()
		last := events[len(events)-1]
		s.Equal(dispatch.EventRequestUpdated, last.EventType)
		s.Equal("cancelled", last.Record.Status)
	})

	s.Run("failed transitions publish nothing", func() {
		req := s.seedPending()
		before := len(s.publisher.all())

		_, err := s.cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusDelivered, kitchenStaff, nil)
		s.Require().Error(err)
		s.Len(s.publisher.all(), before)
	})
}

func TestClaimRace(t *testing.T) {
	memStore := store.NewMemoryRequestStore()
	publisher := &capturePublisher{}
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cmds := commands.NewRequestCommands(memStore, publisher, clk)
	ctx := context.Background()

	req, err := cmds.CreateRequest(ctx, commands.CreateRequestParams{
		Kind:        request.KindHousekeeping,
		RoomNumber:  "417",
		RequesterID: uuid.New(),
		LineItems:   []commands.LineItemParams{{Name: "Fresh Towels", Quantity: 2}},
	})
	require.NoError(t, err)

	const racers = 16
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := range racers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			actor := builder.NewActorBuilder().
				WithDepartment(staff.DepartmentHousekeeping).
				Build()
			_, results[n] = cmds.ClaimOrAdvance(ctx, req.ID(), request.StatusInProgress, actor, nil)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		// losers see either the lost race or, when they re-read after the
		// winner's write, a request already past the requested status
		ok := errors.Is(err, errs.ErrStaleRequest) || errors.Is(err, errs.ErrInvalidTransition)
		assert.True(t, ok, "unexpected loser error: %v", err)
	}
	assert.Equal(t, 1, wins)

	final, err := memStore.FindByID(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, request.StatusInProgress, final.Status())
	assert.Equal(t, int64(2), final.Version())
	require.NotNil(t, final.AssignedTo())

	// exactly create + one accepted claim were broadcast
	assert.Len(t, publisher.all(), 2)
}
