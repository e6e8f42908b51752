package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"medslot/internal/domain/user"
	"medslot/internal/handler/api"
	"medslot/internal/handler/middleware"
	"medslot/internal/pkg/config"
	"medslot/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth       *api.AuthHandler
	Booking    *api.BookingHandler
	Center     *api.CenterHandler
	Assignment *api.AssignmentHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, h, authMiddleware, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListOwn},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Booking.Update},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Booking.Confirm},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			})
		}

		centers := apiGroup.Group("/centers")
		{
			// Availability is public; everything else needs auth.
			addRoutes(centers, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Center.Availability},
			})

			authed := centers.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Center.Create,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleSuperadmin)}},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: h.Center.ListBookings},
				{Method: http.MethodPut, Path: "/:id/tests/:testId/slots", Handler: h.Center.SetCapacity},
			})
		}

		tests := apiGroup.Group("/tests")
		tests.Use(authMiddleware.RequireAuth())
		{
			superadminOnly := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleSuperadmin)}
			addRoutes(tests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Center.CreateTest, Mw: superadminOnly},
				{Method: http.MethodPost, Path: "/:id/assignments/:centerId", Handler: h.Assignment.Assign, Mw: superadminOnly},
				{Method: http.MethodDelete, Path: "/:id/assignments/:centerId", Handler: h.Assignment.Remove, Mw: superadminOnly},
			})
		}

		requests := apiGroup.Group("/assignment-requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Assignment.Request},
				{Method: http.MethodGet, Path: "", Handler: h.Assignment.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Assignment.Get},
				{Method: http.MethodPost, Path: "/:id/review", Handler: h.Assignment.Review,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleSuperadmin)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
