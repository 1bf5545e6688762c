package api

import (
	"log"
	stdhttp "net/http"

	intconfig "movi/internal/config"
	"movi/internal/domain"
	h "movi/internal/http/handlers"
	"movi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. With env.AuthRequired the agent
// needs any valid bearer token and mutating endpoints need an admin or
// dispatcher token; otherwise tokens are optional.
func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authn := middleware.Auth(hd.AuthService.Parse, env.AuthRequired)
	writer := []gin.HandlerFunc{authn}
	if env.AuthRequired {
		writer = append(writer, middleware.RequireRoles(domain.RoleAdmin, domain.RoleDispatcher))
	}
	guard := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writer...), handler)
	}

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/endpoints", hd.Endpoints)

		api.POST("/auth/login", hd.Login)

		api.POST("/agent", authn, hd.PostAgent)
		api.POST("/image/parse", authn, hd.ParseImage)

		trips := api.Group("/daily_trips")
		trips.GET("", hd.ListDailyTrips)
		trips.GET("/:id", hd.GetDailyTrip)
		trips.GET("/:id/manifest", hd.GetTripManifest)

		deployments := api.Group("/deployments")
		deployments.GET("", hd.ListDeployments)
		deployments.POST("", guard(hd.CreateDeployment)...)
		deployments.DELETE("/:id", guard(hd.DeleteDeployment)...)

		bookings := api.Group("/bookings")
		bookings.GET("/trip/:tripId", hd.ListTripBookings)
		bookings.POST("", guard(hd.CreateBooking)...)

		vehicles := api.Group("/vehicles")
		vehicles.GET("", hd.ListVehicles)
		vehicles.GET("/unassigned", hd.ListUnassignedVehicles)

		stops := api.Group("/stops")
		stops.GET("", hd.ListStops)
		stops.POST("", guard(hd.CreateStop)...)

		paths := api.Group("/paths")
		paths.GET("", hd.ListPaths)
		paths.POST("", guard(hd.CreatePath)...)

		routes := api.Group("/routes")
		routes.GET("", hd.ListTransportRoutes)
		routes.POST("", guard(hd.CreateTransportRoute)...)
		routes.PATCH("/:id/deactivate", guard(hd.DeactivateTransportRoute)...)

		api.GET("/helpers/deployment_for_trip/:tripId", hd.DeploymentForTrip)
	}

	h.SetRouter(r)
	return r
}
