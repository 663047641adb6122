package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all service configuration. Values come from a YAML file
// (config.yaml) or environment variables; environment always wins.
type Config struct {
	HTTPAddr    string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	DataDir     string `yaml:"data_dir" env:"DATA_DIR" env-default:"./data"`
	Storage     string `yaml:"storage" env:"STORAGE_BACKEND" env-default:"file"` // file, redis or memory
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH" env-default:""`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string `yaml:"-" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	} `yaml:"redis"`

	MQTT struct {
		Broker          string `yaml:"broker" env:"MQTT_BROKER" env-default:""`
		ClientID        string `yaml:"client_id" env:"MQTT_CLIENT_ID" env-default:"safety-watch"`
		Username        string `yaml:"username" env:"MQTT_USERNAME" env-default:""`
		Password        string `yaml:"-" env:"MQTT_PASSWORD"`
		AlertsTopic     string `yaml:"alerts_topic" env:"MQTT_ALERTS_TOPIC" env-default:"safety/alerts"`
		AssessmentTopic string `yaml:"assessment_topic" env:"MQTT_ASSESSMENT_TOPIC" env-default:"safety/assessment"`
	} `yaml:"mqtt"`

	Telegram struct {
		Token  string `yaml:"-" env:"TELEGRAM_TOKEN"`
		ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID" env-default:"0"`
	} `yaml:"telegram"`

	Detector struct {
		ModelPath  string  `yaml:"model_path" env:"DETECTOR_MODEL_PATH" env-default:""`
		LabelsPath string  `yaml:"labels_path" env:"DETECTOR_LABELS_PATH" env-default:""`
		Confidence float64 `yaml:"confidence" env:"DETECTOR_CONFIDENCE" env-default:"0.5"`
	} `yaml:"detector"`
}

// Load reads configuration from an optional YAML file plus environment.
// A .env file is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
