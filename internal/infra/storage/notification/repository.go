package notification

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

var columns = []string{"id", "user_id", "type", "title", "message", "is_read", "created_at"}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("user_id", "type", "title", "message").
		Values(n.UserID, n.Type, n.Title, n.Message).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.IsRead, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	n.CreatedAt = createdAt.Time
	return n, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	n, err := scanNotification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notification: %v", ErrScanRow, err)
	}
	return n, nil
}

// List returns one page of a user's notifications, newest first, with the total count
func (r *Repository) List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"user_id": filter.UserID}}
	if filter.UnreadOnly {
		where = append(where, squirrel.Eq{"is_read": false})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	page := filter.Page.Normalize()
	query, args, err := psqlbuilder.Select(columns...).
		From("notifications").
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

	result := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return result, total, nil
}

func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}
	return requireOneRow(result, "MarkRead")
}

// MarkAllRead marks every unread notification of a user and returns how many changed
func (r *Repository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - execute update: %v", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - get rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("notifications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return requireOneRow(result, "Delete")
}

// CountUnread counts unread notifications; a nil userID counts platform-wide
func (r *Repository) CountUnread(ctx context.Context, userID *int64) (int, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"is_read": false})
	if userID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *userID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountUnread - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUnread - execute query: %v", ErrExecQuery, err)
	}
	return count, nil
}

func requireOneRow(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n         domain.Notification
		createdAt sql.NullTime
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &createdAt); err != nil {
		return nil, err
	}
	n.CreatedAt = createdAt.Time
	return &n, nil
}
