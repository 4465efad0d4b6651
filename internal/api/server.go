// Package api is the REST binding over the scoped resource services. It
// owns request decoding, the bearer-auth middleware and the mapping of
// service error kinds onto HTTP statuses; all authorization decisions live
// in the service layer.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/logger"
	"github.com/tenantkit/tenantkit/internal/service"
)

// Config carries the transport-level knobs of the REST server.
type Config struct {
	CORSOrigins []string
}

// Services bundles everything the REST layer dispatches to.
type Services struct {
	Auth          *service.AuthService
	Organizations *service.OrganizationService
	Receivers     *service.ReceiverService
	Users         *service.UserService
	Profiles      *service.UserProfileService
	Settings      *service.UserSettingService
	Bookmarks     *service.UserBookmarkService
}

// Server is the REST API server.
type Server struct {
	cfg    Config
	svc    Services
	tokens *auth.TokenManager
	router chi.Router
}

// NewServer builds the router with all routes registered.
func NewServer(cfg Config, svc Services, tokens *auth.TokenManager, log zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		tokens: tokens,
		router: chi.NewRouter(),
	}
	s.setupRoutes(log)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes(log zerolog.Logger) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.Requests(log))
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticated)

			r.Get("/auth/whoami", s.handleWhoAmI)

			r.Route("/organizations", func(r chi.Router) {
				r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin)).Get("/", s.handleListOrganizations)
				r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin)).Post("/", s.handleCreateOrganization)
				r.Route("/{id}", func(r chi.Router) {
					r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin, auth.RoleSalesUser)).Get("/", s.handleGetOrganization)
					r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin, auth.RoleSalesUser)).Get("/tree", s.handleOrganizationTree)
					r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin, auth.RoleSalesUser)).Get("/treeids", s.handleOrganizationTreeIDs)
					r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin)).Put("/", s.handleUpdateOrganization)
					r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin)).Delete("/", s.handleDeleteOrganization)
				})
			})

			r.Route("/receivers", func(r chi.Router) {
				r.With(s.requireRoles(auth.RoleSalesUser, auth.RoleAuditor)).Get("/", s.handleListReceivers)
				r.With(s.requireRoles(auth.RoleSalesUser)).Post("/", s.handleCreateReceiver)
				r.Route("/{id}", func(r chi.Router) {
					r.With(s.requireRoles(auth.RoleSalesUser, auth.RoleAuditor)).Get("/", s.handleGetReceiver)
					r.With(s.requireRoles(auth.RoleSalesUser)).Put("/", s.handleUpdateReceiver)
					r.With(s.requireRoles(auth.RoleSalesUser)).Delete("/", s.handleDeleteReceiver)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(s.requireRoles(auth.RoleSuper, auth.RoleAdmin)).Get("/", s.handleListUsers)
				r.With(s.requireRoles(auth.RoleSuper)).Post("/", s.handleCreateUser)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetUser)
					r.With(s.requireRoles(auth.RoleSuper)).Put("/", s.handleUpdateUser)
					r.With(s.requireRoles(auth.RoleSuper)).Delete("/", s.handleDeleteUser)

					r.Route("/profile", func(r chi.Router) {
						r.Get("/", s.handleGetProfile)
						r.Put("/", s.handleUpdateProfile)
						r.With(s.requireRoles(auth.RoleSuper)).Delete("/", s.handleDeleteProfile)
					})

					r.Route("/settings", func(r chi.Router) {
						r.Get("/", s.handleListSettings)
						r.Post("/", s.handleCreateSetting)
						r.Delete("/", s.handleDeleteSettings)
						r.Route("/{type}", func(r chi.Router) {
							r.Get("/", s.handleGetSetting)
							r.Put("/", s.handleUpdateSetting)
							r.Delete("/", s.handleDeleteSetting)
						})
					})

					r.Route("/bookmarks", func(r chi.Router) {
						r.Get("/", s.handleListBookmarks)
						r.Post("/", s.handleCreateBookmark)
						r.Delete("/", s.handleDeleteBookmarks)
						r.Route("/{type}", func(r chi.Router) {
							r.Get("/", s.handleListBookmarksByType)
							r.Delete("/", s.handleDeleteBookmarksByType)
							r.Route("/{objectId}", func(r chi.Router) {
								r.Get("/", s.handleGetBookmark)
								r.Delete("/", s.handleDeleteBookmark)
							})
						})
					})
				})
			})
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
