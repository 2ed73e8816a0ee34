package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

// NotificationPublisher publishes level movement workflow events to NATS
// JetStream for consumption by the notifications service.
//
// Subject convention: <prefix>.<event_type>, e.g. notifications.hr.level_move_approved.
// Event types: level_move_submitted, level_move_approved, level_move_rejected,
//              level_move_completed
//
// All publish operations are non-fatal — errors are logged but never
// propagated, so notification failures never interrupt workflow transitions.
type NotificationPublisher struct {
	js     nats.JetStreamContext
	conn   *nats.Conn
	prefix string
	log    zerolog.Logger
}

// NotificationEvent is the JSON schema published to NATS.
type NotificationEvent struct {
	EventType      string         `json:"event_type"`
	EmployeeID     string         `json:"employee_id"`
	ActorID        string         `json:"actor_id"`
	ResourceType   string         `json:"resource_type,omitempty"`
	ResourceID     string         `json:"resource_id,omitempty"`
	RequestStatus  string         `json:"request_status,omitempty"`
	RequestedLevel string         `json:"requested_level,omitempty"`
	Severity       string         `json:"severity,omitempty"`
	Category       string         `json:"category,omitempty"`
	Payload        map[string]any `json:"payload,omitempty"`
}

// NewNotificationPublisher connects to NATS and returns a publisher.
func NewNotificationPublisher(url, prefix string, log zerolog.Logger) (*NotificationPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("be-hr-progression"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open JetStream context: %w", err)
	}
	return &NotificationPublisher{js: js, conn: conn, prefix: prefix, log: log}, nil
}

// Close drains the underlying connection.
func (p *NotificationPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// PublishWorkflowEvent publishes one workflow event. Implements
// service.Notifier.
func (p *NotificationPublisher) PublishWorkflowEvent(
	ctx context.Context,
	eventType string,
	req *repository.LevelMovementRequest,
	actorID string,
	payload map[string]any,
) {
	if p == nil || p.js == nil {
		return
	}

	event := &NotificationEvent{
		EventType:      eventType,
		EmployeeID:     req.EmployeeID,
		ActorID:        actorID,
		ResourceType:   "level_movement_request",
		ResourceID:     req.ID,
		RequestStatus:  string(req.Status),
		RequestedLevel: string(req.RequestedLevel),
		Severity:       "info",
		Category:       "hr_level_movement",
		Payload:        payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", eventType).Msg("notification: failed to marshal event")
		return
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, eventType)
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		p.log.Warn().Err(err).
			Str("subject", subject).
			Str("request_id", req.ID).
			Msg("notification: failed to publish NATS event (non-fatal)")
		return
	}

	p.log.Debug().
		Str("subject", subject).
		Str("request_id", req.ID).
		Msg("notification: event published")
}
