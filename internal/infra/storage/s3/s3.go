package s3

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
	// Публичный адрес бакета; пусто — собирается из Endpoint/Bucket
	PublicURL string
}

type Storage struct {
	cl        *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

var _ domain.MediaStore = (*Storage)(nil)

func New(_ context.Context, cfg Config, logger *zap.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	public := cfg.PublicURL
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, publicURL: public, logger: logger}, nil
}

// Put загружает поток и возвращает ключ вида "sha256/<hex>/<имя файла>".
// Имя сохраняется в ключе: из него строится подпись иконки.
// sha считается по ходу чтения, поэтому объект сначала пишется под временным ключом.
func (s *Storage) Put(ctx context.Context, r io.Reader, hintName string, mime string) (domain.BlobPutResult, error) {
	h := sha256.New()
	name := sanitize(hintName)
	tmp := tempKey(name)

	info, err := s.cl.PutObject(ctx, s.bucket, tmp, io.TeeReader(r, h), -1, minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		return domain.BlobPutResult{}, err
	}
	defer func() {
		if err := s.cl.RemoveObject(context.WithoutCancel(ctx), s.bucket, tmp, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("tmp object not removed", zap.String("key", tmp), zap.Error(err))
		}
	}()

	sha := h.Sum(nil)
	finalKey := fmt.Sprintf("sha256/%x/%s", sha, name)
	src := minio.CopySrcOptions{Bucket: s.bucket, Object: tmp}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: finalKey}
	if _, err := s.cl.CopyObject(ctx, dst, src); err != nil {
		return domain.BlobPutResult{}, err
	}

	s.logger.Info("stored", zap.String("key", finalKey), zap.Int64("size", info.Size))
	return domain.BlobPutResult{StorageKey: finalKey, Size: info.Size, SHA256: sha}, nil
}

// у каждой загрузки свой временный ключ: одинаковые имена не перетирают друг друга
func tempKey(name string) string {
	return "tmp/" + uuid.NewString() + "/" + name
}

// Exists делает HEAD объекта; любая ошибка трактуется как отсутствие.
func (s *Storage) Exists(ctx context.Context, key string) bool {
	_, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			s.logger.Debug("stat failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *Storage) URL(key string) string {
	return strings.TrimRight(s.publicURL, "/") + "/" + key
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

func sanitize(name string) string {
	u := url.PathEscape(strings.ReplaceAll(path.Base(name), " ", "-"))
	return strings.ReplaceAll(u, "%2F", "_")
}
