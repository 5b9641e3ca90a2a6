package domain

import (
	"context"
	"time"
)

type Token string

type TokenClaims struct {
	JTI       string // уникальный id токена
	Subject   string // кто выпустил (имя администратора)
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Токены администратора для загрузки/удаления вложений
type TokenManager interface {
	Issue(ctx context.Context, subject string) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}
