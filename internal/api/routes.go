package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trovacasa/server/internal/database"
	"trovacasa/server/internal/queue"
)

func SetupRoutes(router *gin.Engine, db *database.Database, eventQueue *queue.PropertyEventQueue, logger *logrus.Logger) {
	handler := NewHandler(db, eventQueue, logger)

	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/:id", handler.GetProperty)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/saved-searches", handler.GetSavedSearches)
		api.POST("/saved-searches", handler.CreateSavedSearch)
	}
}
