package payment

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
	"booking_id",
	"user_id",
	"reference",
	"amount",
	"currency",
	"token",
	"payment_url",
	"status",
	"created_at",
	"updated_at",
}

// Repository stores PayTech payment attempts
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "user_id", "reference", "amount", "currency", "token", "payment_url", "status").
		Values(p.BookingID, p.UserID, p.Reference, p.Amount, p.Currency, p.Token, p.PaymentURL, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByReference finds the attempt PayTech reports on through the IPN
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByReference", psqlbuilder.Select(columns...).
		From("payments").
		Where(squirrel.Eq{"reference": reference}))
}

// GetLatestByBooking returns the most recent attempt for a booking
func (r *Repository) GetLatestByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetLatestByBooking", psqlbuilder.Select(columns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1))
}

// List returns one page of payments and the total match count
func (r *Repository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.UserID != nil {
		where = append(where, squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From("payments").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	page := filter.Page.Normalize()
	query, args, err := psqlbuilder.Select(columns...).
		From("payments").
		Where(where).
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

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return payments, total, nil
}

// SetCheckout stores the token and redirect URL returned by PayTech
func (r *Repository) SetCheckout(ctx context.Context, id int64, token, paymentURL string) error {
	query, args, err := psqlbuilder.Update("payments").
		Set("token", token).
		Set("payment_url", paymentURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCheckout - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "SetCheckout", query, args)
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

func (r *Repository) getOne(ctx context.Context, method string, b squirrel.SelectBuilder) (*domain.Payment, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	p, err := scanPayment(dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, method, err)
	}
	return p, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, method, query string, args []interface{}) error {
	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p                    domain.Payment
		token, paymentURL    sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.UserID,
		&p.Reference,
		&p.Amount,
		&p.Currency,
		&token,
		&paymentURL,
		&p.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if token.Valid {
		p.Token = &token.String
	}
	if paymentURL.Valid {
		p.PaymentURL = &paymentURL.String
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
