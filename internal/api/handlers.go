package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "safety-watch/internal/application"
	"safety-watch/internal/container"
	"safety-watch/internal/domain/entity"
)

// Controller exposes the core operations over HTTP.
type Controller struct {
	c *container.Container
}

func NewController(c *container.Container) *Controller {
	return &Controller{c: c}
}

// ingestRequest is a detection batch for one image: the caller supplies
// the detection list and image dimensions, image handling stays outside.
type ingestRequest struct {
	Detections  []entity.Detection `json:"detections" binding:"required"`
	ImageWidth  int                `json:"image_width" binding:"required"`
	ImageHeight int                `json:"image_height" binding:"required"`
	ImagePath   string             `json:"image_path"`
}

// IngestDetections processes one batch through the whole pipeline.
func (ctl *Controller) IngestDetections(ctx *gin.Context) {
	var req ingestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := ctl.c.Ingest.Process(ctx.Request.Context(), req.Detections, req.ImageWidth, req.ImageHeight, req.ImagePath)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":          true,
		"total_detections": len(req.Detections),
		"result":           result,
	})
}

// IngestImage accepts an uploaded image, runs the configured detection
// model over it and processes the resulting batch.
func (ctl *Controller) IngestImage(ctx *gin.Context) {
	if ctl.c.Detector == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "no detection model configured"})
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	detections, width, height, err := ctl.c.Detector.Detect(ctx.Request.Context(), data)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := ctl.c.Ingest.Process(ctx.Request.Context(), detections, width, height, file.Filename)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":          true,
		"filename":         file.Filename,
		"total_detections": len(detections),
		"result":           result,
	})
}

// EquipmentStatus returns the full status summary.
func (ctl *Controller) EquipmentStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success":        true,
		"status_summary": ctl.c.States.Summary(),
	})
}

// EquipmentTrends returns windowed trends for one kind.
func (ctl *Controller) EquipmentTrends(ctx *gin.Context) {
	kind := entity.NormalizeLabel(ctx.Param("kind"))
	days := 7
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "days must be between 1 and 365"})
			return
		}
		days = parsed
	}

	trends, err := ctl.c.Trends.Trends(kind, days)
	if err != nil {
		if errors.Is(err, app.ErrNoHistory) || errors.Is(err, app.ErrNoRecentHistory) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "trends": trends})
}

type assessRequest struct {
	Detections []entity.Detection `json:"detections"`
}

// AssessCriticality assesses a posted batch against the catalog.
func (ctl *Controller) AssessCriticality(ctx *gin.Context) {
	var req assessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": ctl.c.Criticality.Assess(req.Detections),
		"protocols":  ctl.c.Criticality.ResponseProtocol(req.Detections),
	})
}

type conditionRequest struct {
	Detection   entity.Detection `json:"detection" binding:"required"`
	ImageWidth  int              `json:"image_width" binding:"required"`
	ImageHeight int              `json:"image_height" binding:"required"`
}

// AssessCondition runs condition assessment for one detection, using the
// kind's stored history when available.
func (ctl *Controller) AssessCondition(ctx *gin.Context) {
	var req conditionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	analysis, err := ctl.c.Placement.AnalyzePosition(req.Detection, req.ImageWidth, req.ImageHeight)
	if err != nil {
		if errors.Is(err, app.ErrInvalidGeometry) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	history := ctl.c.States.HistoryFor(req.Detection.Kind())
	assessment := ctl.c.Condition.Assess(req.Detection, analysis, history)

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": assessment,
		"analysis":   analysis,
	})
}

// ResponseProtocols generates a protocol from the recent detection window.
func (ctl *Controller) ResponseProtocols(ctx *gin.Context) {
	recent := ctl.c.BatchLog.Recent(app.RecentWindow)
	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"protocols": ctl.c.Criticality.ResponseProtocol(recent),
	})
}

var knownEmergencies = []entity.EmergencyType{
	entity.EmergencyFire,
	entity.EmergencyOxygenCritical,
	entity.EmergencyNitrogenLeak,
	entity.EmergencyMedical,
	entity.EmergencySafetySystemFailure,
	entity.EmergencyCommunicationFailure,
	entity.EmergencyEvacuation,
}

// EmergencyChecklist returns the static checklist for an emergency type.
func (ctl *Controller) EmergencyChecklist(ctx *gin.Context) {
	requested := entity.EmergencyType(entity.NormalizeLabel(ctx.Param("emergency")))
	for _, known := range knownEmergencies {
		if requested == known {
			ctx.JSON(http.StatusOK, gin.H{
				"success":        true,
				"emergency_type": requested,
				"checklist":      entity.Checklist(requested),
			})
			return
		}
	}
	ctx.JSON(http.StatusBadRequest, gin.H{
		"success":         false,
		"error":           "unknown emergency type",
		"available_types": knownEmergencies,
	})
}

type labelingRequest struct {
	Detections          []entity.Detection `json:"detections" binding:"required"`
	ImagePath           string             `json:"image_path"`
	ConfidenceThreshold float64            `json:"confidence_threshold"`
}

// LabelingSuggestions sorts a batch into auto-acceptable labels and ones
// needing a human.
func (ctl *Controller) LabelingSuggestions(ctx *gin.Context) {
	var req labelingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": ctl.c.Labeling.Suggestions(req.Detections, req.ImagePath, req.ConfidenceThreshold),
	})
}

// ReviewBBox scores one bounding box and suggests improvements.
func (ctl *Controller) ReviewBBox(ctx *gin.Context) {
	var req conditionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	review, err := ctl.c.Labeling.ReviewBBox(req.Detection, req.ImageWidth, req.ImageHeight)
	if err != nil {
		if errors.Is(err, app.ErrInvalidGeometry) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

type contextRequest struct {
	Detections []entity.Detection `json:"detections"`
	ImagePath  string             `json:"image_path"`
}

// AnalyzeContext infers station context from one batch.
func (ctl *Controller) AnalyzeContext(ctx *gin.Context) {
	var req contextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":          true,
		"context_analysis": ctl.c.Context.Analyze(req.Detections, req.ImagePath),
	})
}

type missionRequest struct {
	Detections    []entity.Detection `json:"detections"`
	StationModule string             `json:"station_module"`
	CrewMember    string             `json:"crew_member"`
}

// MissionLogEntry formats a batch as a standardized mission log entry.
func (ctl *Controller) MissionLogEntry(ctx *gin.Context) {
	var req missionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"log_entry": ctl.c.Journal.LogEntry(req.Detections, req.StationModule, req.CrewMember),
	})
}

// StationAlert raises a mission-grade alert from one batch.
func (ctl *Controller) StationAlert(ctx *gin.Context) {
	var req missionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"alert":   ctl.c.Journal.Alert(req.Detections, req.StationModule, req.CrewMember),
	})
}

// SafetyReport builds a fresh crew safety report.
func (ctl *Controller) SafetyReport(ctx *gin.Context) {
	report := ctl.c.Reports.Generate(ctl.c.BatchLog.Batches())
	ctx.JSON(http.StatusOK, gin.H{"success": true, "safety_report": report})
}

// ListAlerts returns all alert rules.
func (ctl *Controller) ListAlerts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "alerts": ctl.c.Alerts.List()})
}

type createAlertRequest struct {
	Name          string  `json:"name" binding:"required"`
	Label         string  `json:"label" binding:"required"`
	MinConfidence float64 `json:"min_confidence"`
}

// CreateAlert adds a new alert rule.
func (ctl *Controller) CreateAlert(ctx *gin.Context) {
	var req createAlertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	rule, err := ctl.c.Alerts.Create(ctx.Request.Context(), req.Name, req.Label, req.MinConfidence)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "alert": rule})
}

// DeleteAlert removes an alert rule by id.
func (ctl *Controller) DeleteAlert(ctx *gin.Context) {
	err := ctl.c.Alerts.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrRuleNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
