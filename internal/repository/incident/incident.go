package incident

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = `id, order_id, courier_id, type, description, photo_url, status, order_status_at_report,
	admin_notes, decision, new_courier_id, resolved_by, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIncident(row scanner) (*IncidentDB, error) {
	var incidentDB IncidentDB
	err := row.Scan(
		&incidentDB.ID,
		&incidentDB.OrderID,
		&incidentDB.CourierID,
		&incidentDB.Type,
		&incidentDB.Description,
		&incidentDB.PhotoURL,
		&incidentDB.Status,
		&incidentDB.OrderStatusAtReport,
		&incidentDB.AdminNotes,
		&incidentDB.Decision,
		&incidentDB.NewCourierID,
		&incidentDB.ResolvedBy,
		&incidentDB.CreatedAt,
		&incidentDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &incidentDB, nil
}

// Create второй pending инцидент по заказу упирается в частичный уникальный индекс.
func (r *Repository) Create(ctx context.Context, incidentModifyEntity entities.IncidentModify) (*entities.Incident, error) {
	incidentModel := FromDomainModify(&incidentModifyEntity)

	query := `INSERT INTO incidents (id, order_id, courier_id, type, description, photo_url, status, order_status_at_report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	incidentDB, err := scanIncident(r.querier.QueryRow(
		ctx,
		query,
		incidentModel.ID,
		incidentModel.OrderID,
		incidentModel.CourierID,
		incidentModel.Type,
		incidentModel.Description,
		incidentModel.PhotoURL,
		incidentModel.Status,
		incidentModel.OrderStatusAtReport,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: pending incident already exists", entities.ErrConflict)
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, entities.ErrOrderNotFound
		}
		return nil, repository.Wrap("unexpected incident repository create error", err)
	}

	return ToDomain(incidentDB), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Incident, error) {
	query := `SELECT ` + columns + `
		FROM incidents
		WHERE id = $1`

	incidentDB, err := scanIncident(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrIncidentNotFound
		}
		return nil, repository.Wrap("unexpected incident repository getbyid error", err)
	}

	return ToDomain(incidentDB), nil
}

// List новые инциденты сверху.
func (r *Repository) List(ctx context.Context, filter entities.IncidentFilter) ([]entities.Incident, error) {
	builder := qb.
		Select(columns).
		From("incidents")

	if filter.OrderIDs != nil {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIDs})
	}
	if filter.CourierID != nil {
		builder = builder.Where(sq.Eq{"courier_id": *filter.CourierID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected incident repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.Wrap("unexpected incident repository list error", err)
	}
	defer rows.Close()

	incidentModels := make([]IncidentDB, 0, 8)
	for rows.Next() {
		incidentDB, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected incident repository list error: %w", err)
		}
		incidentModels = append(incidentModels, *incidentDB)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("unexpected incident repository list error", err)
	}

	return ToDomainList(incidentModels), nil
}

func (r *Repository) Update(ctx context.Context, incidentModifyEntity entities.IncidentModify) (*entities.Incident, error) {
	if incidentModifyEntity.ID == nil {
		return nil, entities.ErrIncidentNotFound
	}
	incidentModel := FromDomainModify(&incidentModifyEntity)

	builder := qb.
		Update("incidents")

	if incidentModel.Description != nil {
		builder = builder.Set("description", incidentModel.Description)
	}
	if incidentModel.PhotoURL != nil {
		builder = builder.Set("photo_url", incidentModel.PhotoURL)
	}
	if incidentModel.Status != nil {
		builder = builder.Set("status", incidentModel.Status)
	}
	if incidentModel.AdminNotes != nil {
		builder = builder.Set("admin_notes", incidentModel.AdminNotes)
	}
	if incidentModel.Decision != nil {
		builder = builder.Set("decision", incidentModel.Decision)
	}
	if incidentModel.NewCourierID != nil {
		builder = builder.Set("new_courier_id", incidentModel.NewCourierID)
	}
	if incidentModel.ResolvedBy != nil {
		builder = builder.Set("resolved_by", incidentModel.ResolvedBy)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	query, args, err := builder.
		Where(sq.Eq{"id": incidentModel.ID}).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected incident repository update error: %w", err)
	}

	incidentDB, err := scanIncident(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrIncidentNotFound
		}
		return nil, repository.Wrap("unexpected incident repository update error", err)
	}

	return ToDomain(incidentDB), nil
}
