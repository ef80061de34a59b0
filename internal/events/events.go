// Package events publishes domain lifecycle events to an SNS topic so
// downstream processors can react to record activity.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Event types emitted by the service.
const (
	DogCreated = "dog_created"
	DogWagged  = "dog_wagged"
	DogMatched = "dog_matched"
)

// Publisher sends domain events. Publishing is best-effort: failures are
// logged by callers and never fail the originating request.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data map[string]any) error
}

type envelope struct {
	EventType string         `json:"event_type"`
	Data      map[string]any `json:"data"`
}

type topic struct {
	client *sns.Client
	arn    string
	logger *slog.Logger
}

// New creates an SNS-backed publisher. When no topic ARN is configured
// it returns a no-op publisher so local environments run without SNS.
func New(cfg *Config, awsCfg aws.Config, logger *slog.Logger) Publisher {
	log := logger.With("system", "events")

	if cfg.TopicARN == "" {
		log.Info("events disabled, no topic configured")
		return noop{}
	}

	return &topic{
		client: sns.NewFromConfig(awsCfg),
		arn:    cfg.TopicARN,
		logger: log,
	}
}

func (t *topic) Publish(ctx context.Context, eventType string, data map[string]any) error {
	message, err := json.Marshal(envelope{EventType: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", eventType, err)
	}

	_, err = t.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(t.arn),
		Message:  aws.String(string(message)),
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", eventType, err)
	}

	t.logger.Info("event published", "type", eventType)
	return nil
}

type noop struct{}

func (noop) Publish(context.Context, string, map[string]any) error {
	return nil
}
