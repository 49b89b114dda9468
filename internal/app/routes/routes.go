package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerlist/peerlist-backend/internal/app/controllers"
	"github.com/peerlist/peerlist-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	meController *controllers.MeController,
	peerController *controllers.PeerController,
	rankboardController *controllers.RankboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Liveness probe, no auth.
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every data route requires an authenticated student.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		me := authenticated.Group("/me")
		{
			me.GET("/dashboard", meController.GetDashboard)
			me.POST("/results", meController.ImportSemester)
			me.GET("/settings", meController.GetSettings)
			me.PUT("/consent", meController.UpdateConsent)
			me.GET("/export", meController.ExportData)
			me.DELETE("", meController.DeleteAccount)
		}

		peers := authenticated.Group("/peers")
		{
			peers.GET("", peerController.GetDirectory)
			peers.GET("/:id", peerController.GetPeerDashboard)
		}

		authenticated.GET("/rankboard", rankboardController.GetRankboard)
	}
}
