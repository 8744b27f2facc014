package employee

import (
	"go-emdir/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByIP(3, 10),
			handler.GetAll,
		)

		employees.GET("/search/:name",
			middleware.RateLimitByIP(3, 10),
			handler.Search,
		)

		employees.GET("/highest-salary",
			middleware.RateLimitByIP(3, 10),
			handler.HighestSalary,
		)

		employees.GET("/top-earners",
			middleware.RateLimitByIP(3, 10),
			handler.TopEarners,
		)

		employees.GET("/:id",
			middleware.RateLimitByIP(3, 10),
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByIP(0.5, 2),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)

		// Endpoint operasional, bukan bagian kontrak publik
		employees.POST("/cache/invalidate",
			middleware.RateLimitByIP(0.5, 2),
			handler.InvalidateCache,
		)
	}
}
