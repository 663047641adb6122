package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// AlertService manages user-defined trigger rules and evaluates detection
// batches against them. Rules have a lifecycle independent from equipment
// state: operators create and delete them, detections only fire them.
type AlertService struct {
	repo port.StateRepository
	log  *zap.Logger

	mu    sync.RWMutex
	rules []entity.AlertRule
}

// NewAlertService builds the service and restores persisted rules.
// Corrupt rule data is logged and treated as no rules.
func NewAlertService(ctx context.Context, repo port.StateRepository, log *zap.Logger) *AlertService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &AlertService{repo: repo, log: log}

	data, err := repo.Load(ctx, port.KeyAlertRules)
	if err != nil {
		log.Warn("loading alert rules failed, starting empty", zap.Error(err))
		return s
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.rules); err != nil {
			log.Warn("alert rules unreadable, starting empty", zap.Error(err))
			s.rules = nil
		}
	}
	return s
}

// Create adds a new active rule and persists the rule set.
func (s *AlertService) Create(ctx context.Context, name, label string, minConfidence float64) (entity.AlertRule, error) {
	rule := entity.NewAlertRule(name, label, minConfidence)

	s.mu.Lock()
	s.rules = append(s.rules, rule)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return rule, err
	}
	s.log.Info("alert rule created",
		zap.String("id", rule.ID), zap.String("label", rule.Label))
	return rule, nil
}

// List returns a copy of all rules.
func (s *AlertService) List() []entity.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.AlertRule(nil), s.rules...)
}

// Delete removes a rule by id. ErrRuleNotFound for unknown ids.
func (s *AlertService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	kept := s.rules[:0]
	for _, r := range s.rules {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	s.rules = kept
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	return s.persist(ctx)
}

// Evaluate checks a fresh detection batch against every active rule.
// Each rule fires at most once per batch; the first matching detection
// wins.
func (s *AlertService) Evaluate(detections []entity.Detection) []entity.TriggeredAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var triggered []entity.TriggeredAlert
	now := time.Now().UTC()
	for _, rule := range s.rules {
		for _, d := range detections {
			if rule.Matches(d) {
				triggered = append(triggered, entity.TriggeredAlert{
					RuleID:     rule.ID,
					RuleName:   rule.Name,
					Label:      d.Label,
					Confidence: d.Confidence,
					Timestamp:  now,
				})
				break
			}
		}
	}
	return triggered
}

func (s *AlertService) persist(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.Marshal(s.rules)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal alert rules: %w", err)
	}
	if err := s.repo.Save(ctx, port.KeyAlertRules, data); err != nil {
		return fmt.Errorf("save alert rules: %w", err)
	}
	return nil
}
