package components

import (
	"medslot/internal/handler"
	"medslot/internal/handler/api"
	"medslot/internal/handler/middleware"
	"medslot/internal/pkg/jwt"
	"medslot/internal/pkg/metrics"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewCenterHandler,
		api.NewAssignmentHandler,
		func(s *jwt.Service) middleware.TokenValidator { return s },
		middleware.NewAuthMiddleware,
		func() *metrics.Metrics { return metrics.New("api") },
		func(auth *api.AuthHandler, booking *api.BookingHandler, center *api.CenterHandler, assignment *api.AssignmentHandler) handler.Handlers {
			return handler.Handlers{
				Auth:       auth,
				Booking:    booking,
				Center:     center,
				Assignment: assignment,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
