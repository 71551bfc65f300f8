package middleware

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type ctxKey int

const (
	actorKey ctxKey = iota
	tokenIDKey
)

// WithActor stores the authenticated caller and its token id
func WithActor(ctx context.Context, actor domain.Actor, tokenID string) context.Context {
	ctx = context.WithValue(ctx, actorKey, actor)
	return context.WithValue(ctx, tokenIDKey, tokenID)
}

// GetActor returns the caller set by Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID returns the caller id set by Auth
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	return actor.UserID, ok
}

func GetTokenID(ctx context.Context) string {
	id, _ := ctx.Value(tokenIDKey).(string)
	return id
}
