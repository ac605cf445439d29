package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propertyhub-backend/controllers"
	"propertyhub-backend/middleware"
)

type Options struct {
	CORSOrigins       []string
	AdminAPIKey       string
	BookingRatePerMin int
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(
	pc *controllers.PropertyController,
	bc *controllers.BookingController,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewClientRateLimiter(opts.BookingRatePerMin, 5)

	api := r.Group("/api")
	{
		api.GET("/amenities", pc.ListAmenities)

		properties := api.Group("/properties")
		{
			properties.GET("", pc.ListProperties)
			// must be registered before /:id
			properties.GET("/featured", pc.FeaturedProperties)
			properties.GET("/:id", pc.GetProperty)
			properties.GET("/:id/quote", pc.QuoteStay)
			properties.POST("/:id/bookings", middleware.RateLimit(limiter), bc.SubmitBooking)
		}

		admin := api.Group("/admin", middleware.AdminKey(opts.AdminAPIKey))
		{
			adminProps := admin.Group("/properties")
			{
				adminProps.GET("", pc.ListProperties)
				adminProps.GET("/stats", pc.PropertyStats)
				adminProps.POST("", pc.CreateProperty)
				adminProps.PUT("/:id", pc.UpdateProperty)
				adminProps.DELETE("/:id", pc.DeleteProperty)
				adminProps.GET("/:id/bookings", bc.PropertyBookings)
			}

			bookings := admin.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.GET("/stats", bc.BookingStats)
				bookings.GET("/export", bc.ExportBookings)
				bookings.GET("/:id", bc.GetBooking)
				bookings.POST("/:id/confirm", bc.ConfirmBooking)
				bookings.POST("/:id/reject", bc.RejectBooking)
				bookings.POST("/:id/complete", bc.CompleteBooking)
				bookings.DELETE("/:id", bc.DeleteBooking)
			}
		}
	}

	return r
}
