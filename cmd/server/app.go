package main

import (
	"net/http"

	"github.com/diewo77/go-tms/auth"
	"github.com/diewo77/go-tms/httpx"
	"github.com/diewo77/go-tms/i18n"
	"github.com/diewo77/go-tms/internal/models"
	"github.com/diewo77/go-tms/internal/policy"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	db        *gorm.DB
	routerCfg *policy.RouterConfig
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, routerCfg *policy.RouterConfig) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		routerCfg: routerCfg,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Global middleware: session context + language preference.
	handler := auth.Middleware(withLanguage(a.mux))
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	cfg := a.routerCfg

	// Public routes
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	a.mux.HandleFunc("POST /signup", cfg.AuthHandler.Signup)
	a.mux.HandleFunc("POST /login", cfg.AuthHandler.Login)
	a.mux.HandleFunc("POST /logout", cfg.AuthHandler.Logout)

	// Authenticated end-user routes
	fh := cfg.FormationHandler
	a.mux.Handle("GET /formations", a.requireAuth(http.HandlerFunc(fh.List)))
	a.mux.Handle("GET /formations/{id}", a.requireAuth(http.HandlerFunc(fh.View)))
	a.mux.Handle("POST /formations/{id}/participate", a.requireAuth(http.HandlerFunc(fh.Participate)))
	a.mux.Handle("GET /enrollments", a.requireAuth(http.HandlerFunc(fh.MyEnrollments)))
	a.mux.Handle("POST /enrollments/{id}/cancel", a.requireAuth(http.HandlerFunc(fh.CancelEnrollment)))

	nh := cfg.NotificationHandler
	a.mux.Handle("GET /notifications", a.requireAuth(http.HandlerFunc(nh.Unread)))
	a.mux.Handle("POST /notifications/{id}/read", a.requireAuth(http.HandlerFunc(nh.MarkRead)))
	a.mux.Handle("POST /notifications/read-all", a.requireAuth(http.HandlerFunc(nh.MarkAllRead)))

	a.mux.Handle("GET /users", a.requireAuth(http.HandlerFunc(cfg.DirectoryHandler.List)))

	// Reviewer routes: pending queues + validate/refuse. The queues are
	// role-scoped by policy; the transitions are authorized by the gate.
	rh := cfg.ReviewHandler
	a.mux.Handle("GET /admin/accounts/pending", a.requireReviewer(http.HandlerFunc(rh.PendingAccounts)))
	a.mux.Handle("POST /admin/accounts/{id}/validate", a.requireReviewer(http.HandlerFunc(rh.ApproveAccount)))
	a.mux.Handle("POST /admin/accounts/{id}/refuse", a.requireReviewer(http.HandlerFunc(rh.RejectAccount)))
	a.mux.Handle("GET /admin/enrollments/pending", a.requireReviewer(http.HandlerFunc(rh.PendingEnrollments)))
	a.mux.Handle("POST /admin/enrollments/{id}/validate", a.requireReviewer(http.HandlerFunc(rh.ValidateEnrollment)))
	a.mux.Handle("POST /admin/enrollments/{id}/refuse", a.requireReviewer(http.HandlerFunc(rh.RejectEnrollment)))

	// Staff-only directory and catalog administration
	sh := cfg.StructureAdminHandler
	a.mux.Handle("GET /admin/structures", a.requireStaff(http.HandlerFunc(sh.List)))
	a.mux.Handle("POST /admin/structures", a.requireStaff(http.HandlerFunc(sh.Create)))
	a.mux.Handle("GET /admin/structures/{id}", a.requireStaff(http.HandlerFunc(sh.View)))
	a.mux.Handle("POST /admin/structures/{id}", a.requireStaff(http.HandlerFunc(sh.Update)))
	a.mux.Handle("POST /admin/structures/{id}/delete", a.requireStaff(http.HandlerFunc(sh.Delete)))
	a.mux.Handle("GET /admin/departments", a.requireStaff(http.HandlerFunc(sh.ListDepartments)))
	a.mux.Handle("POST /admin/departments", a.requireStaff(http.HandlerFunc(sh.CreateDepartment)))
	a.mux.Handle("POST /admin/departments/{id}/delete", a.requireStaff(http.HandlerFunc(sh.DeleteDepartment)))

	fa := cfg.FormationAdminHandler
	a.mux.Handle("GET /admin/formations", a.requireStaff(http.HandlerFunc(fa.List)))
	a.mux.Handle("POST /admin/formations", a.requireStaff(http.HandlerFunc(fa.Create)))
	a.mux.Handle("POST /admin/formations/{id}", a.requireStaff(http.HandlerFunc(fa.Update)))
	a.mux.Handle("POST /admin/formations/{id}/delete", a.requireStaff(http.HandlerFunc(fa.Delete)))
}

// requireAuth wraps a handler to require a verified session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}

// requireReviewer additionally requires a reviewer (staff or DRH).
func (a *App) requireReviewer(next http.Handler) http.Handler {
	return a.requireAuth(a.requireActor(next, (*models.User).IsReviewer))
}

// requireStaff additionally requires back-office (staff) access.
func (a *App) requireStaff(next http.Handler) http.Handler {
	return a.requireAuth(a.requireActor(next, func(u *models.User) bool {
		return u.IsStaff
	}))
}

func (a *App) requireActor(next http.Handler, allow func(*models.User) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			httpx.JSONError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, nil)
			return
		}
		actor, err := a.routerCfg.Actors.Resolve(r.Context(), uid)
		if err != nil || actor == nil {
			httpx.JSONError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, nil)
			return
		}
		if !allow(actor) {
			httpx.JSONError(w, http.StatusForbidden, httpx.CodeForbidden, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLanguage injects the language preference from the Accept-Language
// header so error messages come back in the caller's language.
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
