package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/yanqian/outfit-advisor/internal/domain/dailybrief"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

// publisher is the slice of mqtt.Client the publisher needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher sends daily notifications to an MQTT topic.
type MQTTPublisher struct {
	client publisher
	topic  string
	close  func()
	logger *slog.Logger
}

var _ dailybrief.Publisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher connects to the broker described by cfg.
func NewMQTTPublisher(cfg config.MQTTConfig, logger *slog.Logger) (*MQTTPublisher, error) {
	logger = logger.With("component", "notify.mqtt")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}
	logger.Info("connected to mqtt broker", "broker", cfg.Broker, "topic", cfg.Topic)

	p := newMQTTPublisher(client, cfg.Topic, logger)
	p.close = func() { client.Disconnect(250) }
	return p, nil
}

func newMQTTPublisher(client publisher, topic string, logger *slog.Logger) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, close: func() {}, logger: logger}
}

// Publish sends n as JSON with QoS 1.
func (p *MQTTPublisher) Publish(ctx context.Context, n dailybrief.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	p.logger.Info("notification published", "topic", p.topic, "city", n.City)
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.close()
}
