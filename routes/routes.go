package routes

import (
	"net/http"
	"time"

	userRepo "schedly/database/repository/user"
	"schedly/handlers"
	"schedly/middleware"
	"schedly/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and the repository the auth middleware
// resolves tokens against.
type HandlerBundle struct {
	Auth         *handlers.AuthHandler
	Users        *handlers.UserHandler
	Availability *handlers.AvailabilityHandler
	Bookings     *handlers.BookingHandler

	UserRepo userRepo.UserRepository
}

// RegisterAuthRoutes registers sign-up/sign-in plus the session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/sign-up", hb.Auth.SignUp)
		api.POST("/sign-in", hb.Auth.SignIn)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Auth.Me)
		api.POST("/sign-out", hb.Auth.SignOut)
	}
}

// RegisterAvailabilityRoutes registers weekly schedule management and
// free-slot queries. Schedule writes are restricted to BUSINESS accounts;
// reads are open to any authenticated user.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		mine := api.Group("/me")
		mine.Use(middleware.RequireRole(models.RoleBusiness))
		mine.GET("", hb.Availability.GetMySchedule)
		mine.PUT("", hb.Availability.ReplaceMySchedule)

		api.GET("/:businessID", hb.Availability.GetSchedule)
	}

	slots := r.Group("/api/businesses")
	{
		slots.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		slots.GET("/:businessID/slots", hb.Availability.GetFreeSlots)
	}
}

// RegisterAppointmentRoutes registers booking, rescheduling, cancellation and
// per-user listing. Booking and rescheduling are client actions; cancel is
// open to both sides of an appointment.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Bookings.ListMine)
		api.POST("/:id/cancel", hb.Bookings.Cancel)

		clientOnly := api.Group("")
		clientOnly.Use(middleware.RequireRole(models.RoleClient))
		clientOnly.POST("", hb.Bookings.Create)
		clientOnly.PATCH("/:id", hb.Bookings.Reschedule)
	}
}

// RegisterUserRoutes registers the account directory. Admin-only except for
// single-account reads.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/:id", hb.Users.Get)

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("", hb.Users.List)
		admin.PUT("/:id", hb.Users.Update)
		admin.DELETE("/:id", hb.Users.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Schedly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r)
}
