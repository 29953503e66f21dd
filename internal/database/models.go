package database

import (
	"net/netip"

	"github.com/jackc/pgx/v5/pgtype"
)

type LookupAudit struct {
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
	CreatedAt    pgtype.Timestamptz
}
