package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "order_number", "sender_id", "courier_id",
	"pickup_address", "pickup_postal_code", "delivery_address", "delivery_postal_code",
	"recipient_name", "recipient_phone", "pickup_at", "delivery_at",
	"notes", "status", "created_at", "updated_at",
}

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

func scanOrder(row scanner) (*OrderDB, error) {
	var orderDB OrderDB
	err := row.Scan(
		&orderDB.ID,
		&orderDB.OrderNumber,
		&orderDB.SenderID,
		&orderDB.CourierID,
		&orderDB.PickupAddress,
		&orderDB.PickupPostalCode,
		&orderDB.DeliveryAddress,
		&orderDB.DeliveryPostalCode,
		&orderDB.RecipientName,
		&orderDB.RecipientPhone,
		&orderDB.PickupAt,
		&orderDB.DeliveryAt,
		&orderDB.Notes,
		&orderDB.Status,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderDB, nil
}

func (r *Repository) Create(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	orderModel := FromDomainModify(&orderModifyEntity)

	query, args, err := qb.
		Insert("orders").
		Columns(
			"id", "order_number", "sender_id",
			"pickup_address", "pickup_postal_code", "delivery_address", "delivery_postal_code",
			"recipient_name", "recipient_phone", "pickup_at", "delivery_at",
			"notes", "status",
		).
		Values(
			orderModel.ID, orderModel.OrderNumber, orderModel.SenderID,
			orderModel.PickupAddress, orderModel.PickupPostalCode, orderModel.DeliveryAddress, orderModel.DeliveryPostalCode,
			orderModel.RecipientName, orderModel.RecipientPhone, orderModel.PickupAt, orderModel.DeliveryAt,
			orderModel.Notes, orderModel.Status,
		).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: order number or id already exists", entities.ErrConflict)
		}
		return nil, repository.Wrap("unexpected order repository create error", err)
	}

	return ToDomain(orderDB), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := qb.
		Select(columns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrOrderNotFound
		}
		return nil, repository.Wrap("unexpected order repository getbyid error", err)
	}

	return ToDomain(orderDB), nil
}

// List заказы по ближайшему времени доставки.
func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	query, args, err := applyFilter(qb.Select(columns...).From("orders"), filter).
		OrderBy("delivery_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.Wrap("unexpected order repository list error", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 16)
	for rows.Next() {
		orderDB, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, *orderDB)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("unexpected order repository list error", err)
	}

	return ToDomainList(orderModels), nil
}

func (r *Repository) Update(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	if orderModifyEntity.ID == nil {
		return nil, entities.ErrOrderNotFound
	}
	orderModel := FromDomainModify(&orderModifyEntity)

	builder := qb.
		Update("orders")

	// опционные поля
	if orderModel.OrderNumber != nil {
		builder = builder.Set("order_number", orderModel.OrderNumber)
	}
	if orderModel.SenderID != nil {
		builder = builder.Set("sender_id", orderModel.SenderID)
	}
	if orderModel.ClearCourier {
		builder = builder.Set("courier_id", nil)
	} else if orderModel.CourierID != nil {
		builder = builder.Set("courier_id", orderModel.CourierID)
	}
	if orderModel.PickupAddress != nil {
		builder = builder.Set("pickup_address", orderModel.PickupAddress)
	}
	if orderModel.PickupPostalCode != nil {
		builder = builder.Set("pickup_postal_code", orderModel.PickupPostalCode)
	}
	if orderModel.DeliveryAddress != nil {
		builder = builder.Set("delivery_address", orderModel.DeliveryAddress)
	}
	if orderModel.DeliveryPostalCode != nil {
		builder = builder.Set("delivery_postal_code", orderModel.DeliveryPostalCode)
	}
	if orderModel.RecipientName != nil {
		builder = builder.Set("recipient_name", orderModel.RecipientName)
	}
	if orderModel.RecipientPhone != nil {
		builder = builder.Set("recipient_phone", orderModel.RecipientPhone)
	}
	if orderModel.PickupAt != nil {
		builder = builder.Set("pickup_at", orderModel.PickupAt)
	}
	if orderModel.DeliveryAt != nil {
		builder = builder.Set("delivery_at", orderModel.DeliveryAt)
	}
	if orderModel.Notes != nil {
		builder = builder.Set("notes", orderModel.Notes)
	}
	if orderModel.Status != nil {
		builder = builder.Set("status", orderModel.Status)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	query, args, err := builder.
		Where(sq.Eq{"id": orderModel.ID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrOrderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: order number already exists", entities.ErrConflict)
		}
		return nil, repository.Wrap("unexpected order repository update error", err)
	}

	return ToDomain(orderDB), nil
}

// Delete удаляет заказ вместе с зависимыми записями (ON DELETE CASCADE).
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		return repository.Wrap("unexpected order repository delete error", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrOrderNotFound
	}

	return nil
}

// Count updatedSince ограничивает выборку заказами, измененными не раньше момента.
func (r *Repository) Count(ctx context.Context, filter entities.OrderFilter, updatedSince *time.Time) (int64, error) {
	builder := applyFilter(qb.Select("COUNT(*)").From("orders"), filter)
	if updatedSince != nil {
		builder = builder.Where(sq.GtOrEq{"updated_at": *updatedSince})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository count error: %w", err)
	}

	var count int64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, repository.Wrap("unexpected order repository count error", err)
	}

	return count, nil
}

func applyFilter(builder sq.SelectBuilder, filter entities.OrderFilter) sq.SelectBuilder {
	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": statusStrings(filter.Statuses)})
	}
	if filter.SenderID != nil {
		builder = builder.Where(sq.Eq{"sender_id": *filter.SenderID})
	}
	if filter.CourierID != nil {
		builder = builder.Where(sq.Eq{"courier_id": *filter.CourierID})
	}
	if filter.IDs != nil {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}
	return builder
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}
