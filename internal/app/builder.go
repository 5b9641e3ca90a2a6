package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/EgorLis/svgicon/internal/auth/token"
	"github.com/EgorLis/svgicon/internal/config"
	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/field"
	"github.com/EgorLis/svgicon/internal/icons"
	"github.com/EgorLis/svgicon/internal/infra/cache/memory"
	redisx "github.com/EgorLis/svgicon/internal/infra/cache/redis"
	"github.com/EgorLis/svgicon/internal/infra/database/postgres"
	"github.com/EgorLis/svgicon/internal/infra/metrics"
	"github.com/EgorLis/svgicon/internal/infra/storage/local"
	s3storage "github.com/EgorLis/svgicon/internal/infra/storage/s3"
	"github.com/EgorLis/svgicon/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *zap.Logger
	media  domain.MediaStore
	cache  domain.Cache
	repo   *postgres.PGRepo
}

// NewLogger — корневой логгер процесса, уровень из LOG_LEVEL
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

func Build(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	base, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	base = base.Named("app")
	base.Info("configuration loaded", zap.Stringer("config", cfg))

	base.Info("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, base.Named("postgres"), cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Info("PostgreSQL is initialized")

	cache, err := NewCache(ctx, cfg, base)
	if err != nil {
		pgRepo.Close()
		return nil, err
	}

	media, err := NewMediaStore(ctx, cfg, base)
	if err != nil {
		pgRepo.Close()
		cache.Close()
		return nil, err
	}

	lib := icons.NewLibrary(base.Named("icons"), icons.Deps{
		Cache: cache,
		Discovery: &icons.Discoverer{
			Index:       pgRepo,
			MediaURL:    media.URL,
			CustomPaths: icons.StaticPaths(cfg.IconPaths...),
		},
		Index:     pgRepo,
		Media:     media,
		Custom:    local.New("", "", base.Named("custom")),
		Metrics:   metrics.NewIconCache(nil),
		ParseTags: cfg.IconParseTags,
	})

	fields, err := field.NewRegistry(field.SvgIcon{})
	if err != nil {
		return nil, fmt.Errorf("register fields: %w", err)
	}

	deps := web.Deps{
		DB:      pgRepo,
		Cache:   cache,
		Media:   media,
		Index:   pgRepo,
		Icons:   lib,
		Fields:  fields,
		Tokens:  token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL),
		Metrics: promhttp.Handler(),
	}
	if cfg.MediaBackend == config.MediaBackendLocal {
		deps.Uploads = web.Uploads(cfg.UploadsDir)
	}

	base.Info("init Server")
	server := web.New(base.Named("server"), cfg, deps)
	base.Info("build ended")

	return &App{
		config: cfg,
		server: server,
		log:    base,
		media:  media,
		cache:  cache,
		repo:   pgRepo,
	}, nil
}

// NewCache — Redis, если задан REDIS_ADDR, иначе кеш в памяти процесса
func NewCache(ctx context.Context, cfg *config.Config, base *zap.Logger) (domain.Cache, error) {
	if cfg.RedisAddr == "" {
		base.Info("REDIS_ADDR is empty, using in-memory cache")
		return memory.New(), nil
	}
	base.Info("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, base.Named("redis"))
	if err := rc.Ping(ctx); err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Info("Redis is initialized")
	return rc, nil
}

// NewMediaStore — хранилище файлов медиатеки по MEDIA_BACKEND
func NewMediaStore(ctx context.Context, cfg *config.Config, base *zap.Logger) (domain.MediaStore, error) {
	switch cfg.MediaBackend {
	case config.MediaBackendS3:
		base.Info("init S3 storage")
		s3, err := s3storage.New(ctx, s3storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
			PublicURL: cfg.MediaBaseURL,
		}, base.Named("s3"))
		if err != nil {
			return nil, fmt.Errorf("failed init s3: %w", err)
		}
		return s3, nil
	default:
		base.Info("using local uploads dir", zap.String("dir", cfg.UploadsDir))
		if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed create uploads dir: %w", err)
		}
		st := local.New(cfg.UploadsDir, cfg.MediaBaseURL, base.Named("local"))
		if err := st.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed init uploads dir: %w", err)
		}
		return st, nil
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Info("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()
	_ = a.log.Sync()

	return nil
}
