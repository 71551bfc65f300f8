package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/dbmetrics"
	"github.com/agroboost/AgroBoost-RentalService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"provider_id",
	"name",
	"description",
	"category",
	"price_per_day",
	"price_per_hour",
	"location",
	"images",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository stores the equipment catalog
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.Images == nil {
		s.Images = []string{}
	}

	query, args, err := psqlbuilder.Insert("services").
		Columns("provider_id", "name", "description", "category", "price_per_day",
			"price_per_hour", "location", "images", "is_available").
		Values(s.ProviderID, s.Name, s.Description, s.Category, s.PricePerDay,
			s.PricePerHour, s.Location, pq.Array(s.Images), s.IsAvailable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}
	return s, nil
}

// List returns one page of services and the total match count
func (r *Repository) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("services"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	page := filter.Page.Normalize()
	query, args, err := applyFilter(psqlbuilder.Select(columns...).From("services"), filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return services, total, nil
}

func (r *Repository) Update(ctx context.Context, s *domain.Service) error {
	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name).
		Set("description", s.Description).
		Set("category", s.Category).
		Set("price_per_day", s.PricePerDay).
		Set("price_per_hour", s.PricePerHour).
		Set("location", s.Location).
		Set("is_available", s.IsAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "Update", query, args)
}

// SetImages replaces the image URL list
func (r *Repository) SetImages(ctx context.Context, id int64, images []string) error {
	if images == nil {
		images = []string{}
	}
	query, args, err := psqlbuilder.Update("services").
		Set("images", pq.Array(images)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetImages - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "SetImages", query, args)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("services").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "Delete", query, args)
}

// Count returns the number of services and how many are available, optionally for one provider
func (r *Repository) Count(ctx context.Context, providerID *int64) (total int, available int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)", "COUNT(*) FILTER (WHERE is_available)").From("services")
	if providerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *providerID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total, &available); err != nil {
		return 0, 0, fmt.Errorf("%w: Count - execute query: %v", ErrExecQuery, err)
	}
	return total, available, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.ServiceFilter) squirrel.SelectBuilder {
	if filter.ProviderID != nil {
		b = b.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.Category != "" {
		b = b.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"location": pattern},
		})
	}
	if filter.Available != nil {
		b = b.Where(squirrel.Eq{"is_available": *filter.Available})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s                    domain.Service
		pricePerHour         sql.NullFloat64
		images               pq.StringArray
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.Name,
		&s.Description,
		&s.Category,
		&s.PricePerDay,
		&pricePerHour,
		&s.Location,
		&images,
		&s.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pricePerHour.Valid {
		p := pricePerHour.Float64
		s.PricePerHour = &p
	}
	s.Images = []string(images)
	if s.Images == nil {
		s.Images = []string{}
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
