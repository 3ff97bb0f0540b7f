package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/config"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/db"
	"github.com/niklvrr/EmToolBackend/internal/transport"
	"github.com/niklvrr/EmToolBackend/internal/transport/handler"
	"github.com/niklvrr/EmToolBackend/internal/usecase/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg    *config.Config
	log    *zap.Logger
	pool   *pgxpool.Pool
	router http.Handler
	server *transport.Server
}

// New поднимает хранилище выбранного драйвера, заводит роли по умолчанию и собирает роутер.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var repos repositories
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := db.NewDatabase(ctx, db.Options{
			URL:           cfg.Postgres.URL(),
			MigrationsDir: cfg.Postgres.MigrationsDir,
			MaxConns:      cfg.Postgres.MaxConns,
			MinConns:      cfg.Postgres.MinConns,
		}, log)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		repos = newPostgresRepositories(pool, log)
	default:
		repos = newMemoryRepositories(log)
	}

	log.Info("storage initialized", zap.String("driver", cfg.Storage.Driver))

	router, err := a.buildRouter(ctx, repos)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.router = router
	a.server = transport.NewServer(cfg.ServerAddr(), router, log)

	return a, nil
}

func (a *App) buildRouter(ctx context.Context, repos repositories) (http.Handler, error) {
	log := a.log

	// Сервисы
	roles := service.NewRoleService(repos.roles, log)
	users := service.NewUserService(repos.users, repos.roles, log)
	teams := service.NewTeamService(repos.teams, repos.users, log)
	notifications := service.NewNotificationService(repos.notifications, repos.users, log)
	works := service.NewWorkService(repos.works, repos.teams, repos.users, notifications, log)
	comments := service.NewCommentService(repos.comments, repos.works, repos.teams, repos.users, log)
	attachments := service.NewAttachmentService(repos.attachments, repos.works, repos.users, log)
	prs := service.NewPrService(repos.prs, repos.reviews, repos.works, repos.teams, repos.users, notifications, log)
	reviews := service.NewReviewService(repos.reviews, repos.prs, repos.works, repos.teams, repos.users, log)
	scrum := service.NewScrumService(repos.scrum, repos.teams, repos.users, notifications, log)
	reports := service.NewReportService(repos.reports, log)

	if err := roles.EnsureDefaultRoles(ctx); err != nil {
		return nil, fmt.Errorf("seed roles: %w", err)
	}

	// Хэндлеры
	h := transport.Handlers{
		Health:       handler.NewHealthHandler(repos.pinger, log),
		Role:         handler.NewRoleHandler(roles, log),
		User:         handler.NewUserHandler(users, log),
		Team:         handler.NewTeamHandler(teams, log),
		Work:         handler.NewWorkHandler(works, log),
		Comment:      handler.NewCommentHandler(comments, log),
		Attachment:   handler.NewAttachmentHandler(attachments, log),
		Pr:           handler.NewPrHandler(prs, log),
		Review:       handler.NewReviewHandler(reviews, log),
		Notification: handler.NewNotificationHandler(notifications, log),
		Scrum:        handler.NewScrumHandler(scrum, log),
		Report:       handler.NewReportHandler(reports, log),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return transport.NewRouter(h, transport.RouterOptions{
		RequestTimeout: a.cfg.HTTP.RequestTimeout,
		Registry:       registry,
	}, log), nil
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер с таймаутом из конфига.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.server.Start)
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.log.Info("database pool closed")
	}
}
