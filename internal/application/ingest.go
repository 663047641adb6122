package app

import (
	"context"

	"go.uber.org/zap"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// DetectionAnalysis pairs one ingested detection with its placement
// result.
type DetectionAnalysis struct {
	Detection entity.Detection          `json:"detection"`
	Analysis  *entity.PlacementAnalysis `json:"analysis"`
}

// IngestResult is the outcome of processing one detection batch.
type IngestResult struct {
	Analyses        []DetectionAnalysis     `json:"positioning_analysis"`
	Dropped         int                     `json:"dropped"`
	TriggeredAlerts []entity.TriggeredAlert `json:"triggered_alerts"`
	Assessment      entity.Assessment       `json:"assessment"`
}

// IngestService runs the whole per-batch pipeline: placement scoring,
// state updates, batch logging, alert evaluation and notifier fan-out.
type IngestService struct {
	scorer    *PlacementScorer
	states    *EquipmentStateStore
	alerts    *AlertService
	assessor  *CriticalityAssessor
	batchLog  *DetectionLog
	notifiers []port.AlertNotifier
	log       *zap.Logger
}

func NewIngestService(
	scorer *PlacementScorer,
	states *EquipmentStateStore,
	alerts *AlertService,
	assessor *CriticalityAssessor,
	batchLog *DetectionLog,
	notifiers []port.AlertNotifier,
	log *zap.Logger,
) *IngestService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IngestService{
		scorer:    scorer,
		states:    states,
		alerts:    alerts,
		assessor:  assessor,
		batchLog:  batchLog,
		notifiers: notifiers,
		log:       log,
	}
}

// Process ingests one batch. Detections with invalid geometry are dropped
// from scoring without failing the batch. The returned assessment covers
// the recent window after this batch was logged.
func (s *IngestService) Process(ctx context.Context, detections []entity.Detection, imageWidth, imageHeight int, imagePath string) (*IngestResult, error) {
	result := &IngestResult{
		Analyses:        []DetectionAnalysis{},
		TriggeredAlerts: []entity.TriggeredAlert{},
	}

	var scored []entity.Detection
	for _, d := range detections {
		analysis, err := s.scorer.AnalyzePosition(d, imageWidth, imageHeight)
		if err != nil {
			result.Dropped++
			s.log.Warn("detection dropped from scoring",
				zap.String("label", d.Label), zap.Error(err))
			continue
		}
		if err := s.states.Update(ctx, d.Kind(), d, imagePath, analysis); err != nil {
			return nil, err
		}
		scored = append(scored, d)
		result.Analyses = append(result.Analyses, DetectionAnalysis{Detection: d, Analysis: analysis})
	}

	s.batchLog.Append(ctx, scored, imagePath)

	result.TriggeredAlerts = s.alerts.Evaluate(scored)
	if result.TriggeredAlerts == nil {
		result.TriggeredAlerts = []entity.TriggeredAlert{}
	}
	result.Assessment = s.assessor.Assess(s.batchLog.Recent(RecentWindow))

	s.notify(ctx, result)
	return result, nil
}

// notify fans out to external channels. Delivery failures are logged and
// never propagated to the caller.
func (s *IngestService) notify(ctx context.Context, result *IngestResult) {
	for _, n := range s.notifiers {
		for _, alert := range result.TriggeredAlerts {
			if err := n.NotifyTriggered(ctx, alert); err != nil {
				s.log.Warn("alert notification failed", zap.Error(err))
			}
		}
		if result.Assessment.OverallStatus == entity.OverallCritical {
			if err := n.NotifyCritical(ctx, result.Assessment); err != nil {
				s.log.Warn("assessment notification failed", zap.Error(err))
			}
		}
	}
}
