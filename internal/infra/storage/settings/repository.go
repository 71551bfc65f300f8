package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/dbmetrics"
	"github.com/agroboost/AgroBoost-RentalService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"provider_id",
	"service_id",
	"capacity",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository stores provider settings
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetScoped returns the row stored exactly at (providerID, serviceID); a nil serviceID
// selects the provider-wide row
func (r *Repository) GetScoped(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("provider_settings").
		Where(squirrel.Eq{"provider_id": providerID})

	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScoped - build select query: %v", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScoped - scan settings: %v", ErrScanRow, err)
	}
	return settings, nil
}

// Resolve returns the settings in force for a service:
// 1. service-specific row
// 2. provider-wide row
// Returns ErrSettingsNotFound when neither exists, callers then use domain.DefaultSettings.
func (r *Repository) Resolve(ctx context.Context, providerID int64, serviceID *int64) (*domain.ProviderSettings, error) {
	if serviceID != nil {
		settings, err := r.GetScoped(ctx, providerID, serviceID)
		if err == nil {
			return settings, nil
		}
		if !errors.Is(err, ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: Resolve - service level: %v", ErrExecQuery, err)
		}
	}

	settings, err := r.GetScoped(ctx, providerID, nil)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, fmt.Errorf("%w: Resolve - provider level: %v", ErrExecQuery, err)
	}

	return nil, ErrSettingsNotFound
}

// ListByProvider returns the provider-wide row first, then service rows
func (r *Repository) ListByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("provider_settings").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("service_id NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ProviderSettings, 0)
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// Upsert creates or replaces the row at the settings' scope
func (r *Repository) Upsert(ctx context.Context, s *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_settings").
		Columns(
			"provider_id",
			"service_id",
			"capacity",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"open_time",
			"close_time",
		).
		Values(
			s.ProviderID,
			s.ServiceID,
			s.Capacity,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
			s.OpenTime,
			s.CloseTime,
		).
		Suffix(`ON CONFLICT (provider_id, COALESCE(service_id, 0)) DO UPDATE SET
			capacity = EXCLUDED.capacity,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// Delete removes the row at (providerID, serviceID)
func (r *Repository) Delete(ctx context.Context, providerID int64, serviceID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("provider_settings").
		Where(squirrel.Eq{"provider_id": providerID})
	if serviceID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.ProviderSettings, error) {
	var (
		s                    domain.ProviderSettings
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.ServiceID,
		&s.Capacity,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&s.OpenTime,
		&s.CloseTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
