package domain

import "context"

// Ключ кеша объединённого списка SVG-источников
const CacheKeyIconFiles = "acf_svg_icon_files"

// Простой k/v интерфейс. Реализации — Redis и in-memory.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}
