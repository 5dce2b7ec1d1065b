package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgErrCodeUniqueViolation = "23505"

const requestColumns = `id, kind, room_number, requester_id, department, line_items,
	total_cents, status, assigned_to, version, created_at, updated_at`

// PostgresRequestStore is the durable Request Store. Its CompareAndSwapStatus
// is the claim arbiter's atomic primitive: a single conditional UPDATE, so
// exactly one of any set of racing writers wins.
type PostgresRequestStore struct {
	pool *pgxpool.Pool
}

func NewPostgresRequestStore(pool *pgxpool.Pool) *PostgresRequestStore {
	return &PostgresRequestStore{pool: pool}
}

// Migrate applies the store schema. Statements are idempotent.
func (s *PostgresRequestStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return infra.WrapRepoErr("failed to apply service_requests schema", err)
	}
	return nil
}

type lineItemRow struct {
	ServiceRef   string `json:"service_ref"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"price_cents"`
	Instructions string `json:"instructions,omitempty"`
}

func (s *PostgresRequestStore) Create(ctx context.Context, req *request.ServiceRequest) error {
	items, err := marshalLineItems(req.LineItems())
	if err != nil {
		return infra.WrapRepoErr("failed to encode line items", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO service_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.ID(), req.Kind().String(), req.RoomNumber(), req.RequesterID(),
		req.Department().String(), items, req.TotalCents(), req.Status().String(),
		req.AssignedTo(), req.Version(), req.CreatedAt(), req.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("service request already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create service request", err)
	}
	return nil
}

func (s *PostgresRequestStore) FindByID(ctx context.Context, id uuid.UUID) (*request.ServiceRequest, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests
		WHERE id = $1`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service request by ID", err)
	}
	return req, nil
}

// CompareAndSwapStatus applies an accepted transition plan if and only if the
// stored status and version still match what the caller observed. The
// assignee is only ever set once: COALESCE keeps an existing assignment and a
// nil ClaimedBy leaves an unclaimed request unassigned.
func (s *PostgresRequestStore) CompareAndSwapStatus(
	ctx context.Context,
	id uuid.UUID,
	expectedStatus request.Status,
	expectedVersion int64,
	plan request.Plan,
	now time.Time,
) (*request.ServiceRequest, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE service_requests
		SET status = $2,
		    assigned_to = COALESCE(assigned_to, $3),
		    version = version + 1,
		    updated_at = $4
		WHERE id = $1 AND status = $5 AND version = $6
		RETURNING `+requestColumns,
		id, plan.To.String(), plan.ClaimedBy, now,
		expectedStatus.String(), expectedVersion,
	)

	req, err := scanRequest(row)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr("failed to update service request status", err)
	}

	// Zero rows: the id is unknown, or another writer won the race.
	var exists bool
	checkErr := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM service_requests WHERE id = $1)`, id,
	).Scan(&exists)
	if checkErr != nil {
		return nil, infra.WrapRepoErr("failed to check service request existence", checkErr)
	}
	if !exists {
		return nil, infra.WrapRepoErr("service request not found", err, infra.KindNotFound)
	}
	return nil, infra.WrapRepoErr("service request status changed since last read", err, infra.KindStale)
}

func (s *PostgresRequestStore) ListActive(
	ctx context.Context,
	kind request.Kind,
	department staff.Department,
	requesterID *uuid.UUID,
) ([]*request.ServiceRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests
		WHERE status NOT IN ('delivered', 'completed', 'cancelled')
		  AND ($1 = '' OR kind = $1)
		  AND ($2 = '' OR department = $2)
		  AND ($3::uuid IS NULL OR requester_id = $3)
		ORDER BY created_at, id`,
		kind.String(), department.String(), requesterID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active service requests", err)
	}
	defer rows.Close()

	var result []*request.ServiceRequest
	for rows.Next() {
		req, scanErr := scanRequest(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan service request row", scanErr)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service request rows", err)
	}
	return result, nil
}

func scanRequest(row pgx.Row) (*request.ServiceRequest, error) {
	var (
		id          uuid.UUID
		kind        string
		roomNumber  string
		requesterID uuid.UUID
		department  string
		itemsJSON   []byte
		totalCents  int64
		status      string
		assignedTo  *uuid.UUID
		version     int64
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(
		&id, &kind, &roomNumber, &requesterID, &department, &itemsJSON,
		&totalCents, &status, &assignedTo, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	items, err := unmarshalLineItems(itemsJSON)
	if err != nil {
		return nil, err
	}

	return request.ReconstructServiceRequest(
		id,
		request.Kind(kind),
		roomNumber,
		requesterID,
		staff.Department(department),
		items,
		totalCents,
		request.Status(status),
		assignedTo,
		version,
		createdAt,
		updatedAt,
	), nil
}

func marshalLineItems(items []request.LineItem) ([]byte, error) {
	rows := make([]lineItemRow, len(items))
	for i, li := range items {
		rows[i] = lineItemRow{
			ServiceRef:   li.ServiceRef,
			Name:         li.Name,
			Quantity:     li.Quantity,
			PriceCents:   li.PriceCents,
			Instructions: li.Instructions,
		}
	}
	return json.Marshal(rows)
}

func unmarshalLineItems(data []byte) ([]request.LineItem, error) {
	var rows []lineItemRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	items := make([]request.LineItem, len(rows))
	for i, r := range rows {
		items[i] = request.LineItem{
			ServiceRef:   r.ServiceRef,
			Name:         r.Name,
			Quantity:     r.Quantity,
			PriceCents:   r.PriceCents,
			Instructions: r.Instructions,
		}
	}
	return items, nil
}
