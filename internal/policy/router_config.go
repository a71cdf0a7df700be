package policy

import (
	"time"

	"github.com/diewo77/go-tms/gate"
	"github.com/diewo77/go-tms/internal/config"
	"github.com/diewo77/go-tms/internal/handlers"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/services"
	"gorm.io/gorm"
)

// RouterConfig holds the configured gate, services and handlers for the
// application. cmd/server consumes it to set up routes.
type RouterConfig struct {
	// ReviewGate is the central authorization point for approval actions.
	ReviewGate *gate.Gate[*models.User]
	// Actors resolves session ids to acting users, with a short TTL cache.
	Actors *gate.CachedResolver[uint, *models.User]

	AuthHandler         *handlers.AuthHandler
	FormationHandler    *handlers.FormationHandler
	ReviewHandler       *handlers.ReviewHandler
	NotificationHandler *handlers.NotificationHandler
	DirectoryHandler    *handlers.DirectoryHandler

	StructureAdminHandler *handlers.StructureAdminHandler
	FormationAdminHandler *handlers.FormationAdminHandler

	AccountService      *services.AccountService
	EnrollmentService   *services.EnrollmentService
	NotificationService *services.NotificationService
}

// NewRouterConfig wires the authorization gate, the approval services and
// all handlers together.
func NewRouterConfig(db *gorm.DB, app config.AppConfig) *RouterConfig {
	reviewGate := NewReviewGate()
	actors := NewActorResolver(db, 5*time.Minute)

	accountService := services.NewAccountService(db, reviewGate, app, actors)
	enrollmentService := services.NewEnrollmentService(db, reviewGate, app)
	notificationService := services.NewNotificationService(db)

	return &RouterConfig{
		ReviewGate: reviewGate,
		Actors:     actors,

		AuthHandler:         handlers.NewAuthHandler(db),
		FormationHandler:    handlers.NewFormationHandler(db, enrollmentService, actors),
		ReviewHandler:       handlers.NewReviewHandler(db, accountService, enrollmentService, actors),
		NotificationHandler: handlers.NewNotificationHandler(notificationService, actors),
		DirectoryHandler:    handlers.NewDirectoryHandler(db, actors),

		StructureAdminHandler: handlers.NewStructureAdminHandler(db, actors),
		FormationAdminHandler: handlers.NewFormationAdminHandler(db, actors),

		AccountService:      accountService,
		EnrollmentService:   enrollmentService,
		NotificationService: notificationService,
	}
}
