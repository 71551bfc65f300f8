package user

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

// postgres unique_violation
const uniqueViolation = "23505"

var columns = []string{
	"id",
	"email",
	"phone",
	"first_name",
	"last_name",
	"role",
	"password_hash",
	"is_verified",
	"is_active",
	"telegram_chat_id",
	"address",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a user; a duplicate email yields ErrEmailTaken
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "phone", "first_name", "last_name", "role", "password_hash",
			"is_verified", "is_active", "telegram_chat_id", "address").
		Values(u.Email, u.Phone, u.FirstName, u.LastName, u.Role, u.PasswordHash,
			u.IsVerified, u.IsActive, u.TelegramChatID, u.Address).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail looks a user up case-insensitively
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Expr("LOWER(email) = LOWER(?)", email))
}

// List returns one page of users and the total match count
func (r *Repository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("users"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	page := filter.Page.Normalize()
	query, args, err := applyFilter(psqlbuilder.Select(columns...).From("users"), filter).
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

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return users, total, nil
}

// Update saves profile fields, role and flags. The password hash is left untouched.
func (r *Repository) Update(ctx context.Context, u *domain.User) error {
	query, args, err := psqlbuilder.Update("users").
		Set("email", u.Email).
		Set("phone", u.Phone).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("role", u.Role).
		Set("is_active", u.IsActive).
		Set("telegram_chat_id", u.TelegramChatID).
		Set("address", u.Address).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "Update", query, args)
}

func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := psqlbuilder.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "UpdatePassword", query, args)
}

func (r *Repository) SetVerified(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("users").
		Set("is_verified", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetVerified - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "SetVerified", query, args)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffectingOne(ctx, "Delete", query, args)
}

// CountByRole groups users by role
func (r *Repository) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("role", "COUNT(*)").From("users").GroupBy("role").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByRole - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByRole - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.Role]int)
	for rows.Next() {
		var (
			role  domain.Role
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByRole - scan row: %v", ErrScanRow, err)
		}
		counts[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByRole - rows error: %v", ErrScanRow, err)
	}
	return counts, nil
}

func (r *Repository) getOne(ctx context.Context, method string, pred squirrel.Sqlizer) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, method, err)
	}
	return u, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.UserFilter) squirrel.SelectBuilder {
	if filter.Role != nil {
		b = b.Where(squirrel.Eq{"role": *filter.Role})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}
	return b
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                    domain.User
		telegramChatID       sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Phone,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.PasswordHash,
		&u.IsVerified,
		&u.IsActive,
		&telegramChatID,
		&u.Address,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if telegramChatID.Valid {
		id := telegramChatID.Int64
		u.TelegramChatID = &id
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}
