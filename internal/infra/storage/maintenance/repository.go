package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/dbmetrics"
	"github.com/agroboost/AgroBoost-RentalService/pkg/psqlbuilder"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

var columns = []string{
	"id",
	"service_id",
	"provider_id",
	"title",
	"description",
	"start_date",
	"end_date",
	"status",
	"cost",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("maintenances").
		Columns("service_id", "provider_id", "title", "description", "start_date", "end_date", "status", "cost").
		Values(m.ServiceID, m.ProviderID, m.Title, m.Description, m.StartDate, m.EndDate, m.Status, m.Cost).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time
	return m, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("maintenances").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	m, err := scanMaintenance(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMaintenanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan maintenance: %v", ErrScanRow, err)
	}
	return m, nil
}

// List returns one page of records, latest start first, and the total match count
func (r *Repository) List(ctx context.Context, filter domain.MaintenanceFilter) ([]*domain.Maintenance, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("maintenances"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	page := filter.Page.Normalize()
	query, args, err := applyFilter(psqlbuilder.Select(columns...).From("maintenances"), filter).
		OrderBy("start_date DESC", "id DESC").
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

	result, err := scanMaintenances(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// FindBlocking returns scheduled or in-progress maintenances of a service intersecting [from, to]
func (r *Repository) FindBlocking(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.Maintenance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("maintenances").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": []string{
			string(domain.MaintenanceScheduled),
			string(domain.MaintenanceInProgress),
		}}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlocking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlocking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMaintenances(rows)
}

func (r *Repository) Update(ctx context.Context, m *domain.Maintenance) error {
	query, args, err := psqlbuilder.Update("maintenances").
		Set("title", m.Title).
		Set("description", m.Description).
		Set("start_date", m.StartDate).
		Set("end_date", m.EndDate).
		Set("status", m.Status).
		Set("cost", m.Cost).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "Update", query, args)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("maintenances").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "Delete", query, args)
}

// CountByStatus groups maintenances by status, optionally for one provider
func (r *Repository) CountByStatus(ctx context.Context, providerID *int64) (map[domain.MaintenanceStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("status", "COUNT(*)").From("maintenances").GroupBy("status")
	if providerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *providerID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.MaintenanceStatus]int)
	for rows.Next() {
		var (
			status domain.MaintenanceStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}
	return counts, nil
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
		return ErrMaintenanceNotFound
	}
	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.MaintenanceFilter) squirrel.SelectBuilder {
	if filter.ServiceID != nil {
		b = b.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.ProviderID != nil {
		b = b.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.To != nil {
		b = b.Where(squirrel.LtOrEq{"start_date": *filter.To})
	}
	if filter.From != nil {
		b = b.Where(squirrel.GtOrEq{"end_date": *filter.From})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMaintenance(row rowScanner) (*domain.Maintenance, error) {
	var (
		m                    domain.Maintenance
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&m.ID,
		&m.ServiceID,
		&m.ProviderID,
		&m.Title,
		&m.Description,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.Cost,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time
	return &m, nil
}

func scanMaintenances(rows *sql.Rows) ([]*domain.Maintenance, error) {
	result := make([]*domain.Maintenance, 0)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMaintenances - scan row: %v", ErrScanRow, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMaintenances - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}
