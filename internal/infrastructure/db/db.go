package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	errDBPathIsEmpty = errors.New("database url is empty")
	errDBInit        = errors.New("database init error")
	errMigrations    = errors.New("database migration error")
)

type Options struct {
	URL           string
	MigrationsDir string
	MaxConns      int32
	MinConns      int32
}

// NewDatabase поднимает пул соединений и накатывает миграции.
func NewDatabase(ctx context.Context, opts Options, logger *zap.Logger) (*pgxpool.Pool, error) {
	if opts.URL == "" {
		return nil, errDBPathIsEmpty
	}

	poolCfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDBInit, err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolCfg.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDBInit, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", errDBInit, err)
	}

	if err := RunMigrations(opts.URL, opts.MigrationsDir, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("database ready",
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Int32("min_conns", poolCfg.MinConns),
	)
	return pool, nil
}

// RunMigrations применяет все up-миграции из dir. Грязное состояние сбрасывается на текущую версию.
func RunMigrations(dbUrl, dir string, logger *zap.Logger) error {
	if dir == "" {
		dir = "migrations"
	}

	mg, err := migrate.New("file://"+dir, dbUrl)
	if err != nil {
		return fmt.Errorf("%w: init: %w", errMigrations, err)
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%w: version check: %w", errMigrations, err)
	}

	if dirty {
		logger.Warn("database is in dirty state, forcing version", zap.Uint("version", version))
		if err := mg.Force(int(version)); err != nil {
			return fmt.Errorf("%w: force version: %w", errMigrations, err)
		}
	}

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: up: %w", errMigrations, err)
	}

	logger.Debug("migration run ok", zap.String("dir", dir))
	return nil
}
