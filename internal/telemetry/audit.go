package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"user-lookup-service/internal/observability"
	"user-lookup-service/internal/rabbitmq"
)

const (
	AuditRoutingKey = "user-lookup-service.audit"
	LookupEventName = "user_lookup"
)

const auditSchemaVersion = 1

// Envelope matches the log-collector audit_log schema.
type Envelope struct {
	SchemaVersion int           `json:"schema_version"`
	EventID       string        `json:"event_id"`
	EventType     string        `json:"event_type"`
	OccurredAt    string        `json:"occurred_at"`
	Service       string        `json:"service"`
	Environment   string        `json:"environment"`
	RequestID     string        `json:"request_id"`
	Payload       LookupPayload `json:"payload"`
}

type LookupPayload struct {
	Action  string `json:"action"`
	UserID  int64  `json:"user_id"`
	Outcome string `json:"outcome"`
	Level   string `json:"level"`
	Error   string `json:"error,omitempty"`
}

type AuditEmitter struct {
	publisher   rabbitmq.Publisher
	service     string
	environment string
	now         func() time.Time
}

func NewAuditEmitter(publisher rabbitmq.Publisher, service, environment string) *AuditEmitter {
	return &AuditEmitter{publisher: publisher, service: service, environment: environment, now: time.Now}
}

// EmitLookup publishes one audit record for a finished lookup. Failures are
// logged and counted; they never reach the caller.
func (e *AuditEmitter) EmitLookup(ctx context.Context, requestID string, userID int64, outcome string, lookupErr error) {
	if e == nil || e.publisher == nil {
		return
	}

	payload := LookupPayload{
		Action:  LookupEventName,
		UserID:  userID,
		Outcome: outcome,
		Level:   "info",
	}
	if lookupErr != nil {
		payload.Level = "error"
		payload.Error = lookupErr.Error()
	}

	envelope := Envelope{
		SchemaVersion: auditSchemaVersion,
		EventID:       uuid.NewString(),
		EventType:     "audit_log",
		OccurredAt:    e.now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, AuditRoutingKey, envelope); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("warning: failed to publish audit log: %v", err)
		return
	}
	observability.IncAuditEventPublished(LookupEventName)
}
