package local

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
)

// Storage — файлы на локальном диске. Ключи — пути относительно root через "/".
// С пустым root ключи трактуются как обычные пути (пользовательские спрайты).
type Storage struct {
	root    string
	baseURL string
	logger  *zap.Logger
	now     func() time.Time
}

func New(root, baseURL string, logger *zap.Logger) *Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{root: root, baseURL: baseURL, logger: logger, now: time.Now}
}

var _ domain.MediaStore = (*Storage)(nil)

func (s *Storage) resolve(key string) string {
	if s.root == "" {
		return key
	}
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+key)))
}

// Exists — только обычные файлы, каталоги и битые ссылки не считаются.
func (s *Storage) Exists(_ context.Context, key string) bool {
	fi, err := os.Stat(s.resolve(key))
	return err == nil && fi.Mode().IsRegular()
}

func (s *Storage) Read(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(s.resolve(key))
}

// Put раскладывает загрузки по каталогам ГГГГ/ММ, при совпадении имени добавляет -1, -2, ...
func (s *Storage) Put(_ context.Context, r io.Reader, hintName string, _ string) (domain.BlobPutResult, error) {
	if s.root == "" {
		return domain.BlobPutResult{}, errors.New("local storage: root is not set")
	}
	dir := s.now().UTC().Format("2006/01")
	if err := os.MkdirAll(s.resolve(dir), 0o755); err != nil {
		return domain.BlobPutResult{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	name := sanitize(hintName)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	var (
		f   *os.File
		key string
	)
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		key = path.Join(dir, candidate)
		var err error
		f, err = os.OpenFile(s.resolve(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return domain.BlobPutResult{}, fmt.Errorf("create %s: %w", key, err)
		}
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), r)
	if err != nil {
		_ = os.Remove(s.resolve(key))
		return domain.BlobPutResult{}, fmt.Errorf("write %s: %w", key, err)
	}
	s.logger.Info("stored", zap.String("key", key), zap.Int64("size", n))
	return domain.BlobPutResult{StorageKey: key, Size: n, SHA256: h.Sum(nil)}, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	err := os.Remove(s.resolve(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.logger.Info("deleted", zap.String("key", key))
	return nil
}

func (s *Storage) URL(key string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + key
}

func (s *Storage) Ping(context.Context) error {
	if s.root == "" {
		return nil
	}
	fi, err := os.Stat(s.root)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", s.root)
	}
	return nil
}

// имя файла без каталогов, пробелы -> "-", только буквы, цифры и ._-
func sanitize(name string) string {
	name = path.Base(filepath.ToSlash(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
