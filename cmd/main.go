package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"safety-watch/config"
	"safety-watch/internal/api"
	"safety-watch/internal/container"
	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
	"safety-watch/internal/infrastructure/notify"
	"safety-watch/internal/infrastructure/storage"
	"safety-watch/internal/infrastructure/vision"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := entity.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load equipment catalog", zap.Error(err))
	}

	ctx := context.Background()

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to build state repository", zap.Error(err))
	}

	notifiers := newNotifiers(cfg, logger)

	c := container.New(ctx, catalog, repo, notifiers, logger)

	if cfg.Detector.ModelPath != "" {
		detector, err := vision.NewDNNDetector(cfg.Detector.ModelPath, cfg.Detector.LabelsPath, cfg.Detector.Confidence)
		if err != nil {
			logger.Warn("detection model disabled", zap.Error(err))
		} else {
			c.Detector = detector
		}
	}

	router := api.NewRouter(c, logger)

	logger.Info("safety-watch is running",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("storage", cfg.Storage),
		zap.Int("equipment_kinds", catalog.Len()),
	)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func newRepository(ctx context.Context, cfg *config.Config) (port.StateRepository, error) {
	switch cfg.Storage {
	case "redis":
		return storage.NewRedisRepository(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "memory":
		return storage.NewMemoryRepository(), nil
	default:
		return storage.NewFileRepository(cfg.DataDir)
	}
}

func newNotifiers(cfg *config.Config, logger *zap.Logger) []port.AlertNotifier {
	var notifiers []port.AlertNotifier

	if cfg.MQTT.Broker != "" {
		n, err := notify.NewMQTTNotifier(notify.MQTTConfig{
			Broker:          cfg.MQTT.Broker,
			ClientID:        cfg.MQTT.ClientID,
			Username:        cfg.MQTT.Username,
			Password:        cfg.MQTT.Password,
			AlertsTopic:     cfg.MQTT.AlertsTopic,
			AssessmentTopic: cfg.MQTT.AssessmentTopic,
		}, logger)
		if err != nil {
			logger.Warn("mqtt notifier disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, n)
		}
	}

	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, n)
		}
	}

	return notifiers
}
