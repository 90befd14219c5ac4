package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxStaffID ctxKey = iota
	ctxRole
)

func WithIdentity(ctx context.Context, staffID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxStaffID, staffID)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

func StaffID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxStaffID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("staff_id not in context")
}

func Role(ctx context.Context) (string, error) {
	v := ctx.Value(ctxRole)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role not in context")
}
