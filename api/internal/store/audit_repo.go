package store

//go:generate go run go.uber.org/mock/mockgen -source=audit_repo.go -destination=../mocks/mock_recorder.go -package=mocks

import (
	"context"
	"database/sql"
	"time"
)

type ReceiptKind string

const (
	SyncUpload ReceiptKind = "sync_upload"
	Deletion   ReceiptKind = "deletion"
)

// Receipt is the acknowledgment record for a sync or deletion call. It holds
// only the opaque confirmation id and an 8-character hash prefix.
type Receipt struct {
	Kind           ReceiptKind
	ConfirmationID string
	HashPrefix     string
	At             time.Time
}

type Recorder interface {
	Record(ctx context.Context, r Receipt) error
}

// Nop discards receipts; used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Receipt) error { return nil }

type AuditRepo struct{ DB *sql.DB }

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{DB: db} }

const schema = `
create table if not exists ack_receipts (
	id              bigserial primary key,
	kind            text        not null,
	confirmation_id text        not null,
	hash_prefix     text        not null,
	acked_at        timestamptz not null,
	created_at      timestamptz not null default now()
)`

func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// Record appends a receipt. The table is write-only from the gateway.
func (r *AuditRepo) Record(ctx context.Context, rc Receipt) error {
	const q = `
insert into ack_receipts(kind, confirmation_id, hash_prefix, acked_at)
values ($1,$2,$3,$4)`
	_, err := r.DB.ExecContext(ctx, q, string(rc.Kind), rc.ConfirmationID, rc.HashPrefix, rc.At.UTC())
	return err
}
