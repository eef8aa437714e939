// Package routes wires middleware, handlers and the route table together.
package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Aradhik11/task-management-api/internal/config"
	"github.com/Aradhik11/task-management-api/internal/handlers"
	"github.com/Aradhik11/task-management-api/internal/repositories"
	"github.com/Aradhik11/task-management-api/internal/services"
)

// SetupRouter builds the gin engine with all middleware and endpoints
// registered.
func SetupRouter(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(ErrorHandler(log, cfg.IsProduction()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	jwtService := services.NewJWTService(cfg)
	authService := services.NewAuthService(userRepo, jwtService, cfg)
	taskService := services.NewTaskService(taskRepo)
	reportService := services.NewReportService(taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(cfg.Environment)

	r.GET("/", healthHandler.Index)
	r.GET("/health", healthHandler.Health)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(jwtService, userRepo))
	{
		authorized.GET("/tasks", taskHandler.List)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.PUT("/tasks/:id/time", taskHandler.AddTime)

		authorized.GET("/report", reportHandler.Completion)
		authorized.GET("/report/report-time", reportHandler.Time)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		})
	})

	return r
}
