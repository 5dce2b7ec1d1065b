package store

// Schema is the durable store's DDL. Applied on startup and by the test
// harness; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS service_requests (
    id            UUID PRIMARY KEY,
    kind          TEXT        NOT NULL,
    room_number   TEXT        NOT NULL,
    requester_id  UUID        NOT NULL,
    department    TEXT        NOT NULL,
    line_items    JSONB       NOT NULL,
    total_cents   BIGINT      NOT NULL,
    status        TEXT        NOT NULL,
    assigned_to   UUID,
    version       BIGINT      NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_service_requests_active
    ON service_requests (kind, department, created_at)
    WHERE status NOT IN ('delivered', 'completed', 'cancelled');

CREATE INDEX IF NOT EXISTS idx_service_requests_requester
    ON service_requests (requester_id, created_at);
`
