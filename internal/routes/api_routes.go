package routes

import (
	"streamhouse/api/internal/api"
	"streamhouse/api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	authSvc := deps.Services.Auth
	userSvc := deps.Services.User
	liveSvc := deps.Services.Live

	r.Route("/v1", func(v1 chi.Router) {

		// Public auth routes, throttled per client IP
		v1.Group(func(public chi.Router) {
			public.Use(limiter.Middleware)

			public.Post("/auth/sign-up", api.SignUpHandler(authSvc))
			public.Post("/auth/sign-in", api.SignInHandler(authSvc))
			public.Post("/auth/verify-otp", api.VerifyOTPHandler(authSvc))
			public.Post("/auth/resend-otp", api.ResendOTPHandler(authSvc))
		})

		// Everything below requires a bearer token
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(authSvc))

			authed.Get("/auth/verify-session", api.VerifySessionHandler(authSvc))
			authed.Post("/auth/logout", api.LogoutHandler(authSvc))

			authed.Get("/role", api.ListRolesHandler(deps.Services.Role))
			authed.Get("/user/me", api.MeHandler(userSvc))

			authed.Post("/live/join/{id}", api.JoinLiveHandler(liveSvc))
			authed.Post("/live/leave/{id}", api.LeaveLiveHandler(liveSvc))

			// Host group (hosts and admins; ownership is checked by the service)
			authed.Group(func(host chi.Router) {
				host.Use(middleware.IsHostMiddleware())

				host.Get("/live", api.ListLivesHandler(liveSvc))
				host.Get("/live/{id}", api.GetLiveHandler(liveSvc))
				host.Get("/live/{id}/stats", api.LiveStatsHandler(liveSvc))
				host.Get("/live/{id}/viewers", api.LiveViewersHandler(liveSvc))
				host.Post("/live/create-room", api.CreateLiveHandler(liveSvc))
				host.Put("/live/{id}", api.UpdateLiveHandler(liveSvc))
				host.Post("/live/stop-live/{id}", api.StopLiveHandler(liveSvc))
			})

			// Admin-only group
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Get("/user", api.ListUsersHandler(userSvc))
				admin.Post("/user", api.CreateUserHandler(userSvc))
				admin.Get("/user/{id}", api.GetUserHandler(userSvc))
				admin.Put("/user/{id}", api.UpdateUserHandler(userSvc))
				admin.Put("/user/restore/{id}", api.RestoreUserHandler(userSvc))
				admin.Delete("/user/soft-delete/{id}", api.SoftDeleteUserHandler(userSvc))
				admin.Delete("/user/force-delete/{id}", api.ForceDeleteUserHandler(userSvc))

				admin.Put("/live/restore/{id}", api.RestoreLiveHandler(liveSvc))
				admin.Delete("/live/soft-delete/{id}", api.SoftDeleteLiveHandler(liveSvc))
				admin.Delete("/live/force-delete/{id}", api.ForceDeleteLiveHandler(liveSvc))
				admin.Post("/live/multiple/restore", api.MultipleRestoreLivesHandler(liveSvc))
				admin.Post("/live/multiple/soft-delete", api.MultipleSoftDeleteLivesHandler(liveSvc))
				admin.Post("/live/multiple/force-delete", api.MultipleForceDeleteLivesHandler(liveSvc))
			})
		})
	})
}
