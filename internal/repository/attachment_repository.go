package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error)
	GetByStoredName(ctx context.Context, ticketID, storedName string) (*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (id, ticket_id, file_name, stored_name, content_type, size_bytes, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		attachment.ID,
		attachment.TicketID,
		attachment.FileName,
		attachment.StoredName,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.CreatedAt,
	)
	return err
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	const query = `
        SELECT id, ticket_id, file_name, stored_name, content_type, size_bytes, created_at
        FROM attachments WHERE ticket_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TicketID,
			&attachment.FileName,
			&attachment.StoredName,
			&attachment.ContentType,
			&attachment.SizeBytes,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}

func (r *attachmentRepository) GetByStoredName(ctx context.Context, ticketID, storedName string) (*domain.Attachment, error) {
	const query = `
        SELECT id, ticket_id, file_name, stored_name, content_type, size_bytes, created_at
        FROM attachments WHERE ticket_id=$1 AND stored_name=$2`
	var attachment domain.Attachment
	if err := r.pool.QueryRow(ctx, query, ticketID, storedName).Scan(
		&attachment.ID,
		&attachment.TicketID,
		&attachment.FileName,
		&attachment.StoredName,
		&attachment.ContentType,
		&attachment.SizeBytes,
		&attachment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
