package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/memory"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/niklvrr/EmToolBackend/internal/transport/handler"
	"github.com/niklvrr/EmToolBackend/internal/usecase/service"
	"go.uber.org/zap"
)

// repositories собирает хранилища для сервисов. pinger nil для in-memory драйвера.
type repositories struct {
	roles         service.RoleRepository
	users         service.UserRepository
	teams         service.TeamRepository
	works         service.WorkRepository
	comments      service.CommentRepository
	attachments   service.AttachmentRepository
	prs           service.PrRepository
	reviews       service.ReviewRepository
	notifications service.NotificationRepository
	scrum         service.ScrumRepository
	reports       service.ReportRepository
	pinger        handler.Pinger
}

func newMemoryRepositories(log *zap.Logger) repositories {
	store := memory.NewStore(log.Named("memory"))
	return repositories{
		roles:         store,
		users:         store,
		teams:         store,
		works:         store,
		comments:      store,
		attachments:   store,
		prs:           store,
		reviews:       store,
		notifications: store,
		scrum:         store,
		reports:       store,
	}
}

// pgReportRepository склеивает чтение отчетов из нескольких репозиториев
type pgReportRepository struct {
	*repository.TeamRepository
	*repository.UserRepository
	*repository.WorkRepository
	*repository.PrRepository
	*repository.ScrumRepository
}

func newPostgresRepositories(pool *pgxpool.Pool, log *zap.Logger) repositories {
	log = log.Named("postgres")

	teams := repository.NewTeamRepository(pool, log)
	users := repository.NewUserRepository(pool, log)
	works := repository.NewWorkRepository(pool, log)
	prs := repository.NewPrRepository(pool, log)
	scrum := repository.NewScrumRepository(pool, log)

	return repositories{
		roles:         repository.NewRoleRepository(pool, log),
		users:         users,
		teams:         teams,
		works:         works,
		comments:      repository.NewCommentRepository(pool, log),
		attachments:   repository.NewAttachmentRepository(pool, log),
		prs:           prs,
		reviews:       repository.NewReviewRepository(pool, log),
		notifications: repository.NewNotificationRepository(pool, log),
		scrum:         scrum,
		reports: pgReportRepository{
			TeamRepository:  teams,
			UserRepository:  users,
			WorkRepository:  works,
			PrRepository:    prs,
			ScrumRepository: scrum,
		},
		pinger: pool,
	}
}
