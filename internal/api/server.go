package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safety-watch/internal/container"
)

// NewRouter builds the HTTP API over the application container.
func NewRouter(c *container.Container, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if logger != nil {
		r.Use(requestLogger(logger))
	}

	ctrl := NewController(c)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/detections", ctrl.IngestDetections)
		apiGroup.POST("/images", ctrl.IngestImage)
		apiGroup.GET("/equipment/status", ctrl.EquipmentStatus)
		apiGroup.GET("/equipment/trends/:kind", ctrl.EquipmentTrends)
		apiGroup.POST("/assess/criticality", ctrl.AssessCriticality)
		apiGroup.POST("/assess/condition", ctrl.AssessCondition)
		apiGroup.GET("/protocols", ctrl.ResponseProtocols)
		apiGroup.GET("/checklists/:emergency", ctrl.EmergencyChecklist)
		apiGroup.GET("/reports/safety", ctrl.SafetyReport)
		apiGroup.POST("/labeling/suggestions", ctrl.LabelingSuggestions)
		apiGroup.POST("/labeling/bbox-review", ctrl.ReviewBBox)
		apiGroup.POST("/context", ctrl.AnalyzeContext)
		apiGroup.POST("/mission/log", ctrl.MissionLogEntry)
		apiGroup.POST("/mission/alert", ctrl.StationAlert)
		apiGroup.GET("/alerts", ctrl.ListAlerts)
		apiGroup.POST("/alerts", ctrl.CreateAlert)
		apiGroup.DELETE("/alerts/:id", ctrl.DeleteAlert)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Debug("http request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
