package booking

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
	"user_id",
	"service_id",
	"provider_id",
	"booking_type",
	"start_date",
	"end_date",
	"start_time",
	"duration_hours",
	"duration",
	"price_per_unit",
	"subtotal",
	"discount_percentage",
	"discount_amount",
	"total_price",
	"status",
	"payment_status",
	"service_name",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository stores bookings in postgres
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. Inside a transaction carried by ctx it joins that transaction,
// which is how the conflict check and the insert stay atomic.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"service_id",
			"provider_id",
			"booking_type",
			"start_date",
			"end_date",
			"start_time",
			"duration_hours",
			"duration",
			"price_per_unit",
			"subtotal",
			"discount_percentage",
			"discount_amount",
			"total_price",
			"status",
			"payment_status",
			"service_name",
			"notes",
		).
		Values(
			booking.UserID,
			booking.ServiceID,
			booking.ProviderID,
			booking.Type,
			booking.StartDate,
			booking.EndDate,
			booking.StartTime,
			booking.DurationHours,
			booking.Price.Duration,
			booking.Price.PricePerUnit,
			booking.Price.Subtotal,
			booking.Price.DiscountPercentage,
			booking.Price.DiscountAmount,
			booking.Price.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.ServiceName,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID returns a booking by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List returns one page of bookings matching filter and the total match count.
// Newest bookings come first.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	page := filter.Page.Normalize()
	query, args, err := applyFilter(psqlbuilder.Select(columns...).From("bookings"), filter).
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

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// Find returns every booking matching filter ordered by start date, without pagination.
// Inside a transaction rows of a single service are locked (FOR UPDATE) so that
// concurrent submissions for the same service serialize on the conflict check.
func (r *Repository) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(columns...).From("bookings"), filter).
		OrderBy("start_date ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.ServiceID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Find - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus sets the lifecycle status of a booking
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

// UpdatePayment sets the payment state and, when status is given, the lifecycle status
func (r *Repository) UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentState, status *domain.BookingStatus) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdatePayment", query, args)
}

// Cancel marks the booking cancelled with a reason
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Cancel", query, args)
}

// CountByStatus groups bookings by status, optionally for one provider
func (r *Repository) CountByStatus(ctx context.Context, providerID *int64) (map[domain.BookingStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		GroupBy("status")
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

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var (
			status domain.BookingStatus
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

// Revenue sums the total price of settled bookings, optionally for one provider
func (r *Repository) Revenue(ctx context.Context, providerID *int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(total_price), 0)").
		From("bookings").
		Where(squirrel.Eq{"payment_status": []string{
			string(domain.PaymentStatePaid),
			string(domain.PaymentStateSimulated),
		}})
	if providerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *providerID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Revenue - build select query: %v", ErrBuildQuery, err)
	}

	var revenue float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("%w: Revenue - execute query: %v", ErrExecQuery, err)
	}
	return revenue, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.UserID != nil {
		b = b.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ProviderID != nil {
		b = b.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.ServiceID != nil {
		b = b.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	// range intersection: start <= To AND end >= From
	if filter.To != nil {
		b = b.Where(squirrel.LtOrEq{"start_date": *filter.To})
	}
	if filter.From != nil {
		b = b.Where(squirrel.GtOrEq{"end_date": *filter.From})
	}

	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		b = b.Where(squirrel.NotEq{"status": inactive})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceID,
		&booking.ProviderID,
		&booking.Type,
		&booking.StartDate,
		&booking.EndDate,
		&booking.StartTime,
		&booking.DurationHours,
		&booking.Price.Duration,
		&booking.Price.PricePerUnit,
		&booking.Price.Subtotal,
		&booking.Price.DiscountPercentage,
		&booking.Price.DiscountAmount,
		&booking.Price.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.ServiceName,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
