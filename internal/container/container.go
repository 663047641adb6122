package container

import (
	"context"

	"go.uber.org/zap"

	app "safety-watch/internal/application"
	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// Container wires the application services together.
type Container struct {
	Catalog     *entity.Catalog
	Placement   *app.PlacementScorer
	States      *app.EquipmentStateStore
	Trends      *app.TrendAnalyzer
	Criticality *app.CriticalityAssessor
	Condition   *app.ConditionAssessor
	Alerts      *app.AlertService
	Reports     *app.SafetyReportGenerator
	BatchLog    *app.DetectionLog
	Ingest      *app.IngestService
	Labeling    *app.LabelingAdvisor
	Context     *app.ContextAnalyzer
	Journal     *app.MissionJournal

	// Detector is optional; when nil the image-ingest endpoint is
	// disabled and callers must post detection batches directly.
	Detector port.DetectionSource
}

// New builds all services over one repository and notifier set.
func New(ctx context.Context, catalog *entity.Catalog, repo port.StateRepository, notifiers []port.AlertNotifier, logger *zap.Logger) *Container {
	placement := app.NewPlacementScorer(catalog)
	states := app.NewEquipmentStateStore(ctx, catalog, repo, logger)
	alerts := app.NewAlertService(ctx, repo, logger)
	criticality := app.NewCriticalityAssessor(catalog)
	batchLog := app.NewDetectionLog(ctx, repo, logger)

	return &Container{
		Catalog:     catalog,
		Placement:   placement,
		States:      states,
		Trends:      app.NewTrendAnalyzer(states),
		Criticality: criticality,
		Condition:   app.NewConditionAssessor(),
		Alerts:      alerts,
		Reports:     app.NewSafetyReportGenerator(catalog),
		BatchLog:    batchLog,
		Ingest:      app.NewIngestService(placement, states, alerts, criticality, batchLog, notifiers, logger),
		Labeling:    app.NewLabelingAdvisor(),
		Context:     app.NewContextAnalyzer(),
		Journal:     app.NewMissionJournal(criticality),
	}
}
