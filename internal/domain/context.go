package domain

import "context"

// Ключ для хранения клеймов администратора в контексте HTTP-запроса
type ctxKey int

const adminCtxKey ctxKey = 1

func WithAdmin(ctx context.Context, c TokenClaims) context.Context {
	return context.WithValue(ctx, adminCtxKey, c)
}

func AdminFromCtx(ctx context.Context) (TokenClaims, bool) {
	c, ok := ctx.Value(adminCtxKey).(TokenClaims)
	return c, ok
}
