//go:build unit

package queries_test

import (
	"context"
	"testing"

	"roomserve/internal/domain/request"
	"roomserve/internal/infra/store"
	"roomserve/internal/pkg/errs"
	"roomserve/internal/usecase/queries"
	"roomserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestQueries(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryRequestStore()
	q := queries.NewRequestQueries(memStore)

	req, err := builder.NewServiceRequestBuilder().BuildDomain()
	require.NoError(t, err)
	require.NoError(t, memStore.Create(ctx, req))

	t.Run("get by id", func(t *testing.T) {
		found, err := q.GetByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, req.ID(), found.ID())
	})

	t.Run("missing id maps to the domain error", func(t *testing.T) {
		_, err := q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("list active passes filters through", func(t *testing.T) {
		result, err := q.ListActive(ctx, request.KindFood, "", nil)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, req.ID(), result[0].ID())

		result, err = q.ListActive(ctx, request.KindHousekeeping, "", nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
