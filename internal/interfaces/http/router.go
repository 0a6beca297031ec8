package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skynet/internal/application/request/usecases"
	domain "skynet/internal/domain/request"
	"skynet/internal/infrastructure/config"
	"skynet/internal/infrastructure/email"
	"skynet/internal/infrastructure/repository"
	"skynet/internal/infrastructure/storage"
	requesthandlers "skynet/internal/interfaces/http/handlers/request"
	"skynet/internal/interfaces/http/middleware"
	"skynet/internal/interfaces/http/routes"
	sharedDB "skynet/internal/shared/db"
	"skynet/internal/shared/logger"
)

// Router wires repositories, use cases and handlers onto a gin engine.
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	log            logger.Interface
	requestHandler *requesthandlers.RequestHandler
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	requestRepo := repository.NewRequestRepository(db)
	txManager := sharedDB.NewTransactionManager(db)

	ticketGen := domain.NewRandomTicketGenerator(cfg.Ticket.Prefix)
	validator := domain.NewValidator()
	uploader := storage.NewContentStore(&cfg.Storage, log)

	var notifier usecases.Notifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(&cfg.Email)
	}

	createUC := usecases.NewCreateRequestUseCase(
		requestRepo, ticketGen, validator, uploader, notifier, log,
		cfg.Ticket.MaxAttempts, cfg.Storage.MaxConcurrentUploads,
	)
	getUC := usecases.NewGetRequestUseCase(requestRepo, log)
	getByTicketUC := usecases.NewGetRequestByTicketUseCase(requestRepo, log)
	listUC := usecases.NewListRequestsUseCase(requestRepo, log)
	deleteUC := usecases.NewDeleteRequestUseCase(requestRepo, txManager, log)

	requestHandler := requesthandlers.NewRequestHandler(createUC, getUC, getByTicketUC, listUC, deleteUC)

	return &Router{
		engine:         engine,
		cfg:            cfg,
		log:            log,
		requestHandler: requestHandler,
	}
}

// SetupRoutes registers middleware and all route groups
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupRequestRoutes(r.engine, &routes.RequestRouteConfig{
		RequestHandler: r.requestHandler,
	})
}

// GetEngine returns the underlying gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
