package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
)

// webhookSink POSTs each event to a downstream endpoint as JSON.
type webhookSink struct {
	url    string
	client *http.Client
}

func newWebhookSink(url string, timeout time.Duration) *webhookSink {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &webhookSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type sinkEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

func (s *webhookSink) Publish(ctx context.Context, event models.OutboxEvent) error {
	body, err := json.Marshal(sinkEnvelope{
		EventID:       event.ID.String(),
		EventType:     string(event.EventType),
		AggregateType: string(event.AggregateType),
		AggregateID:   event.AggregateID.String(),
		OccurredAt:    event.CreatedAt,
		Payload:       event.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Id", event.ID.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}
	return nil
}

// logSink is the dev fallback when no sink URL is configured. Events are
// written to the log and treated as delivered.
type logSink struct {
	logg *logger.Logger
}

func (s *logSink) Publish(ctx context.Context, event models.OutboxEvent) error {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"event_id":   event.ID.String(),
			"event_type": string(event.EventType),
		})
		s.logg.Info(ctx, "outbox event delivered to log sink")
	}
	return nil
}
