package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niklvrr/EmToolBackend/internal/transport/handler"
	transportMiddleware "github.com/niklvrr/EmToolBackend/internal/transport/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Role         *handler.RoleHandler
	User         *handler.UserHandler
	Team         *handler.TeamHandler
	Work         *handler.WorkHandler
	Comment      *handler.CommentHandler
	Attachment   *handler.AttachmentHandler
	Pr           *handler.PrHandler
	Review       *handler.ReviewHandler
	Notification *handler.NotificationHandler
	Scrum        *handler.ScrumHandler
	Report       *handler.ReportHandler
}

type RouterOptions struct {
	RequestTimeout time.Duration
	// Registry для /metrics. nil означает prometheus.DefaultRegisterer и DefaultGatherer.
	Registry *prometheus.Registry
}

func NewRouter(h Handlers, opts RouterOptions, log *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	metrics := transportMiddleware.NewMetrics(registerer)

	// Recovery должен быть первым для обработки паник во всех middleware
	router.Use(transportMiddleware.Recovery(log))

	// RequestID для трейсинга запросов
	router.Use(middleware.RequestID)

	router.Use(transportMiddleware.Logging(log))
	router.Use(metrics.Middleware)

	if opts.RequestTimeout > 0 {
		router.Use(transportMiddleware.Timeout(opts.RequestTimeout, log))
	}

	// Эндпоинт для Prometheus метрик
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	router.Get("/health", h.Health.HealthCheck)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, handler.ErrorResponse{
			Error: handler.ErrorDetail{Code: "NOT_FOUND", Message: "route not found"},
		})
	})

	router.Route("/roles", func(r chi.Router) {
		r.Post("/", h.Role.CreateRole)
		r.Get("/", h.Role.ListRoles)
		r.Get("/{id}", h.Role.GetRole)
	})

	router.Route("/users", func(r chi.Router) {
		r.Post("/managers", h.User.RegisterManager)
		r.Post("/employees", h.User.RegisterEmployee)
		r.Post("/login", h.User.Login)
		r.Get("/", h.User.ListUsers)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.User.GetUser)
			r.Put("/", h.User.UpdateUser)
			r.Delete("/", h.User.DeleteUser)

			r.Get("/tasks", h.Work.ListOfUser)
			r.Get("/pull-requests", h.Pr.ListOfUser)
			r.Get("/reviews", h.Review.ListOfUser)
			r.Get("/attachments", h.Attachment.ListOfUser)
			r.Get("/notifications", h.Notification.ListOfUser)
			r.Delete("/notifications", h.Notification.DeleteAllOfUser)
			r.Get("/notifications/unread-count", h.Notification.UnreadCount)
			r.Get("/scrum-meetings", h.Scrum.ListOfUser)
			r.Get("/attendance", h.Scrum.ListAttendanceOfUser)
			r.Get("/report", h.Report.EmployeeReport)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", h.Team.CreateTeam)
		r.Get("/", h.Team.ListTeams)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Team.GetTeam)
			r.Put("/", h.Team.UpdateTeam)
			r.Delete("/", h.Team.DeleteTeam)

			r.Post("/members", h.Team.AddMember)
			r.Get("/members", h.Team.ListMembers)
			r.Get("/tasks", h.Work.ListOfTeam)
			r.Get("/pull-requests", h.Pr.ListOfTeam)
			r.Get("/scrum-meetings", h.Scrum.ListOfTeam)
			r.Get("/report", h.Report.TeamReport)
		})
	})
	router.Delete("/team-members/{id}", h.Team.DeleteMember)

	router.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.Work.CreateWork)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Work.GetWork)
			r.Put("/", h.Work.UpdateWork)
			r.Delete("/", h.Work.DeleteWork)

			r.Post("/comments", h.Comment.AddComment)
			r.Get("/comments", h.Comment.ListComments)
			r.Post("/attachments", h.Attachment.Upload)
			r.Get("/attachments", h.Attachment.ListOfWork)
			r.Get("/pull-requests", h.Pr.ListOfWork)
		})
	})

	router.Route("/comments/{id}", func(r chi.Router) {
		r.Put("/", h.Comment.EditComment)
		r.Delete("/", h.Comment.DeleteComment)
	})

	router.Route("/attachments", func(r chi.Router) {
		r.Get("/", h.Attachment.Search)
		r.Put("/{id}", h.Attachment.Edit)
		r.Delete("/{id}", h.Attachment.Delete)
	})

	router.Route("/pull-requests", func(r chi.Router) {
		r.Post("/", h.Pr.CreatePr)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Pr.GetPr)
			r.Delete("/", h.Pr.DeletePr)
			r.Get("/approval", h.Pr.GetApproval)
			r.Post("/status", h.Pr.UpdateStatus)

			r.Post("/reviews", h.Review.AddReview)
			r.Get("/reviews", h.Review.ListOfPr)
			r.Put("/reviews", h.Review.EditReview)
		})
	})
	router.Delete("/reviews/{id}", h.Review.DeleteReview)

	router.Route("/notifications", func(r chi.Router) {
		r.Post("/", h.Notification.Create)
		r.Post("/bulk", h.Notification.SendBulk)
		r.Post("/{id}/read", h.Notification.MarkAsRead)
		r.Delete("/{id}", h.Notification.Delete)
	})

	router.Route("/scrum-meetings", func(r chi.Router) {
		r.Post("/", h.Scrum.CreateMeeting)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Scrum.GetMeeting)
			r.Put("/", h.Scrum.UpdateMeeting)
			r.Delete("/", h.Scrum.DeleteMeeting)
			r.Post("/attendance", h.Scrum.MarkAttendance)
			r.Get("/attendance", h.Scrum.ListAttendanceOfMeeting)
		})
	})

	router.Route("/attendance/{id}", func(r chi.Router) {
		r.Get("/", h.Scrum.GetAttendance)
		r.Put("/", h.Scrum.UpdateAttendance)
	})

	return router
}
