package service

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const ctxIdentityKey ctxKey = "identity"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity: аутентифицированный пользователь из access-токена.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   Role
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(ctxIdentityKey).(Identity)
	if !ok || v.UserID == uuid.Nil {
		return Identity{}, false
	}
	return v, true
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.UserID, ok
}

func RoleFromContext(ctx context.Context) (Role, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.Role == "" {
		return "", false
	}
	return id.Role, true
}

func requireAuth(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	if id.Role == "" {
		id.Role = RoleCustomer
	}
	return id, nil
}

func requireAdmin(ctx context.Context) (Identity, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return Identity{}, err
	}
	if id.Role != RoleAdmin {
		return Identity{}, ErrForbidden
	}
	return id, nil
}
