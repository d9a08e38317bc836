package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// CommentRepository persists ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (id, ticket_id, author_id, author_name, content, is_internal, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.TicketID,
		comment.AuthorID,
		comment.AuthorName,
		comment.Content,
		comment.Internal,
		comment.CreatedAt,
	)
	return err
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Comment, error) {
	query := `
        SELECT id, ticket_id, author_id, author_name, content, is_internal, created_at
        FROM comments WHERE ticket_id=$1`
	if !includeInternal {
		query += ` AND is_internal = FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Content,
			&comment.Internal,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
