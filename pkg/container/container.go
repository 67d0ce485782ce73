// Package container wires the dependency graph: config, store, cache,
// repositories, services, handlers. The cache is an explicit injected
// dependency whose lifecycle the container owns; nothing reaches for a
// process-wide singleton.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/config"
	infraCache "bookshelf-api/internal/infrastructure/cache"
	"bookshelf-api/internal/infrastructure/database"
	"bookshelf-api/pkg/cache"

	"bookshelf-api/internal/domains/author"
	authorHandler "bookshelf-api/internal/domains/author/handler"
	authorRepo "bookshelf-api/internal/domains/author/repository"
	authorService "bookshelf-api/internal/domains/author/service"
	"bookshelf-api/internal/domains/book"
	bookHandler "bookshelf-api/internal/domains/book/handler"
	bookRepo "bookshelf-api/internal/domains/book/repository"
	bookService "bookshelf-api/internal/domains/book/service"
)

type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	AuthorRepo author.Repository
	BookRepo   book.Repository

	AuthorService author.Service
	BookService   book.Service

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer initializes the graph in dependency order:
// config -> database -> cache -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	backend, err := buildCache(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.Cache = backend

	c.initDomains()

	log.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Dur("author_ttl", cfg.Cache.AuthorTTL).
		Dur("book_ttl", cfg.Cache.BookTTL).
		Msg("container initialized")
	return c, nil
}

func buildCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Connect(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, nil
	case "memory":
		return cache.NewMemory(), nil
	case "none":
		return cache.NewNoop(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func (c *Container) initDomains() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Cache, c.Config.Cache.AuthorTTL)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Cache, c.Config.Cache.BookTTL)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.BookService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// Cleanup releases store and cache connections during shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		} else {
			log.Info().Msg("redis connections closed")
		}
	}
}
