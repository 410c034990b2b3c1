package middleware

import (
	"context"

	"github.com/seva/internal/model"
)

type contextKey string

const (
	PhoneKey contextKey = "phone"
	RoleKey  contextKey = "role"
)

// WithIdentity stores the authenticated phone number and role on ctx.
func WithIdentity(ctx context.Context, phone string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, PhoneKey, phone)
	return context.WithValue(ctx, RoleKey, role)
}

// GetPhone returns the phone number set by JWTAuth, or "".
func GetPhone(ctx context.Context) string {
	v, _ := ctx.Value(PhoneKey).(string)
	return v
}

func GetRole(ctx context.Context) model.Role {
	v, _ := ctx.Value(RoleKey).(model.Role)
	return v
}
