package availability

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

var columns = []string{"id", "service_id", "provider_id", "start_date", "end_date", "reason", "created_at"}

// Repository stores the date ranges providers withdraw from rental
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, b *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	query, args, err := psqlbuilder.Insert("availability_blocks").
		Columns("service_id", "provider_id", "start_date", "end_date", "reason").
		Values(b.ServiceID, b.ProviderID, b.StartDate, b.EndDate, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time
	return b, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("availability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBlock(dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}
	return b, nil
}

// Find returns the blocks of a service, restricted to those intersecting [from, to] when both are set
func (r *Repository) Find(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityBlock, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("availability_blocks").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("start_date ASC")
	if !from.IsZero() && !to.IsZero() {
		selectBuilder = selectBuilder.
			Where(squirrel.LtOrEq{"start_date": to}).
			Where(squirrel.GtOrEq{"end_date": from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Find - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.AvailabilityBlock, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Find - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Find - rows error: %v", ErrScanRow, err)
	}
	return blocks, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("availability_blocks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.AvailabilityBlock, error) {
	var (
		b         domain.AvailabilityBlock
		createdAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.ServiceID, &b.ProviderID, &b.StartDate, &b.EndDate, &b.Reason, &createdAt); err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time
	return &b, nil
}
