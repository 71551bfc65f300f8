package users

import (
	"context"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/infra/session"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore keeps bearer-token sessions and one-time codes
type SessionStore interface {
	SetSession(ctx context.Context, sess session.Session) error
	GetSession(ctx context.Context, tokenID string) (*session.Session, error)
	ClearSession(ctx context.Context, tokenID string) error
	ClearUserSessions(ctx context.Context, userID int64) error
	SaveOTP(ctx context.Context, purpose session.OTPPurpose, email, code string, ttl, cooldown time.Duration) error
	VerifyOTP(ctx context.Context, purpose session.OTPPurpose, email, code string, maxAttempts int) error
}

// CodeSender delivers one-time codes to a Telegram chat
type CodeSender interface {
	Notify(ctx context.Context, chatID int64, title, message string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
