package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// MQTTConfig holds broker connection settings.
type MQTTConfig struct {
	Broker          string
	ClientID        string
	Username        string
	Password        string
	AlertsTopic     string
	AssessmentTopic string
}

// MQTTNotifier publishes safety events to MQTT topics for downstream
// consumers (ground control dashboards, loggers).
type MQTTNotifier struct {
	client mqtt.Client
	cfg    MQTTConfig
	log    *zap.Logger
}

// NewMQTTNotifier connects to the broker with auto-reconnect enabled.
func NewMQTTNotifier(cfg MQTTConfig, log *zap.Logger) (*MQTTNotifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("mqtt connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		log.Info("mqtt connected", zap.String("broker", cfg.Broker))
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}
	return &MQTTNotifier{client: client, cfg: cfg, log: log}, nil
}

func (n *MQTTNotifier) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mqtt payload: %w", err)
	}
	token := n.client.Publish(topic, 1, false, data)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}
	return nil
}

// NotifyTriggered publishes a fired alert rule.
func (n *MQTTNotifier) NotifyTriggered(ctx context.Context, alert entity.TriggeredAlert) error {
	return n.publish(n.cfg.AlertsTopic, alert)
}

// NotifyCritical publishes an escalated criticality assessment.
func (n *MQTTNotifier) NotifyCritical(ctx context.Context, assessment entity.Assessment) error {
	return n.publish(n.cfg.AssessmentTopic, assessment)
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}

var _ port.AlertNotifier = (*MQTTNotifier)(nil)
