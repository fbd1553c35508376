package courier

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

// Справочник пользователей ведется снаружи, здесь только чтение и присутствие курьера.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Courier, error) {
	query := `SELECT id, name, phone, role, active, presence, created_at, updated_at
		FROM users
		WHERE id = $1`

	var courierModel CourierDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&courierModel.ID,
			&courierModel.Name,
			&courierModel.Phone,
			&courierModel.Role,
			&courierModel.Active,
			&courierModel.Presence,
			&courierModel.CreatedAt,
			&courierModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrCourierNotFound
		}

		return nil, repository.Wrap("unexpected courier repository getbyid error", err)
	}

	return ToDomain(&courierModel), nil
}

func (r *Repository) List(ctx context.Context, filter entities.CourierFilter) ([]entities.Courier, error) {
	builder := qb.
		Select("id", "name", "phone", "role", "active", "presence", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"role": entities.RoleCourier.String()})

	if filter.EligibleOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(sq.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := builder.OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.Wrap("unexpected courier repository list error", err)
	}
	defer rows.Close()

	// начальная емкость, справочник может быть и маленьким и большим
	courierModels := make([]CourierDB, 0, 8)
	for rows.Next() {
		var courierModel CourierDB
		err := rows.Scan(
			&courierModel.ID,
			&courierModel.Name,
			&courierModel.Phone,
			&courierModel.Role,
			&courierModel.Active,
			&courierModel.Presence,
			&courierModel.CreatedAt,
			&courierModel.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected courier repository list error: %w", err)
		}
		courierModels = append(courierModels, courierModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, repository.Wrap("unexpected courier repository list error", err)
	}

	return ToDomainList(courierModels), nil
}

func (r *Repository) UpdatePresence(ctx context.Context, id string, presence entities.CourierPresenceType) (*entities.Courier, error) {
	query, args, err := qb.
		Update("users").
		Set("presence", presence.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "role": entities.RoleCourier.String()}).
		Suffix("RETURNING id, name, phone, role, active, presence, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	var courierModel CourierDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&courierModel.ID,
			&courierModel.Name,
			&courierModel.Phone,
			&courierModel.Role,
			&courierModel.Active,
			&courierModel.Presence,
			&courierModel.CreatedAt,
			&courierModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrCourierNotFound
		}

		return nil, repository.Wrap("unexpected courier repository update error", err)
	}

	return ToDomain(&courierModel), nil
}

// CountEligible активные курьеры, которым можно назначать заказы.
func (r *Repository) CountEligible(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND active`

	var count int64
	if err := r.querier.QueryRow(ctx, query, entities.RoleCourier.String()).Scan(&count); err != nil {
		return 0, repository.Wrap("unexpected courier repository count error", err)
	}

	return count, nil
}
