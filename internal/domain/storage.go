package domain

import (
	"context"
	"io"
)

type BlobPutResult struct {
	StorageKey string
	Size       int64
	SHA256     []byte
}

// Чтение файлов-источников. Отсутствующий файл — не ошибка, а Exists == false.
type FileReader interface {
	Exists(ctx context.Context, path string) bool
	Read(ctx context.Context, path string) ([]byte, error)
}

// Хранилище файлов медиатеки (локальный диск или S3/MinIO)
type MediaStore interface {
	FileReader
	Put(ctx context.Context, r io.Reader, hintName string, mime string) (BlobPutResult, error)
	Delete(ctx context.Context, storageKey string) error
	// Публичный URL файла по ключу
	URL(storageKey string) string
	Ping(ctx context.Context) error
}
