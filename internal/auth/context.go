package auth

import (
	"context"

	"github.com/fekuna/bao-console/internal/model"
)

type ctxKey struct{}

// WithUser stores the session identity on ctx for the command handlers below it.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the identity put there by WithUser, or nil.
func UserFromContext(ctx context.Context) *model.User {
	if u, ok := ctx.Value(ctxKey{}).(*model.User); ok {
		return u
	}
	return nil
}

// GetEntityID is the student/admin id of the caller, 0 when unknown.
func GetEntityID(ctx context.Context) int64 {
	u := UserFromContext(ctx)
	if u == nil || u.EntityID == nil {
		return 0
	}
	return *u.EntityID
}
