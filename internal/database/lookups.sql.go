package database

import (
	"context"
	"net/netip"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertLookupAudit = `-- name: InsertLookupAudit :one
INSERT INTO lookup_audit (
    id, request_id, caller_kind, search_value, mode, status,
    customer_name, error, ip_address, user_agent, duration_ms
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
RETURNING id, request_id, caller_kind, search_value, mode, status, customer_name, error, ip_address, user_agent, duration_ms, created_at
`

type InsertLookupAuditParams struct {
	ID           pgtype.UUID
	RequestID    pgtype.Text
	CallerKind   pgtype.Text
	SearchValue  string
	Mode         string
	Status       string
	CustomerName pgtype.Text
	Error        pgtype.Text
	IpAddress    *netip.Addr
	UserAgent    pgtype.Text
	DurationMs   int64
}

func (q *Queries) InsertLookupAudit(ctx context.Context, arg InsertLookupAuditParams) (LookupAudit, error) {
	row := q.db.QueryRow(ctx, insertLookupAudit,
		arg.ID,
		arg.RequestID,
		arg.CallerKind,
		arg.SearchValue,
		arg.Mode,
		arg.Status,
		arg.CustomerName,
		arg.Error,
		arg.IpAddress,
		arg.UserAgent,
		arg.DurationMs,
	)
	var i LookupAudit
	err := row.Scan(
		&i.ID,
		&i.RequestID,
		&i.CallerKind,
		&i.SearchValue,
		&i.Mode,
		&i.Status,
		&i.CustomerName,
		&i.Error,
		&i.IpAddress,
		&i.UserAgent,
		&i.DurationMs,
		&i.CreatedAt,
	)
	return i, err
}

const listRecentLookupAudit = `-- name: ListRecentLookupAudit :many
SELECT id, request_id, caller_kind, search_value, mode, status, customer_name, error, ip_address, user_agent, duration_ms, created_at
FROM lookup_audit
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListRecentLookupAudit(ctx context.Context, limit int32) ([]LookupAudit, error) {
	rows, err := q.db.Query(ctx, listRecentLookupAudit, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LookupAudit
	for rows.Next() {
		var i LookupAudit
		if err := rows.Scan(
			&i.ID,
			&i.RequestID,
			&i.CallerKind,
			&i.SearchValue,
			&i.Mode,
			&i.Status,
			&i.CustomerName,
			&i.Error,
			&i.IpAddress,
			&i.UserAgent,
			&i.DurationMs,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteLookupAuditBefore = `-- name: DeleteLookupAuditBefore :execrows
DELETE FROM lookup_audit
WHERE created_at < now() - make_interval(days => $1)
`

func (q *Queries) DeleteLookupAuditBefore(ctx context.Context, days int32) (int64, error) {
	result, err := q.db.Exec(ctx, deleteLookupAuditBefore, days)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const resetLookupAudit = `-- name: ResetLookupAudit :exec
TRUNCATE lookup_audit
`

func (q *Queries) ResetLookupAudit(ctx context.Context) error {
	_, err := q.db.Exec(ctx, resetLookupAudit)
	return err
}
