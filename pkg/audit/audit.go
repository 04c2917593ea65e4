// Package audit records recruiter workflow actions as structured zap events,
// optionally persisting them to the audit_events table.
package audit

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type EventType string

const (
	EventStatusChanged        EventType = "status_changed"
	EventApplicationWithdrawn EventType = "application_withdrawn"
	EventInterviewScheduled   EventType = "interview_scheduled"
	EventInterviewCancelled   EventType = "interview_cancelled"
	EventInterviewCompleted   EventType = "interview_completed"
	EventInterviewRescheduled EventType = "interview_rescheduled"
	EventInterviewNoShow      EventType = "interview_no_show"
	EventUnauthorizedAccess   EventType = "unauthorized_access"
	EventNotificationFailed   EventType = "notification_failed"
)

type Event struct {
	Timestamp   time.Time      `json:"timestamp"`
	Service     string         `json:"service"`
	Environment string         `json:"env"`
	Level       string         `json:"level"`
	Event       EventType      `json:"event"`
	ActorID     string         `json:"actor_id,omitempty"`
	ActorRole   string         `json:"actor_role,omitempty"`
	EntityType  string         `json:"entity_type,omitempty"` // "application", "interview", "note"
	EntityID    int64          `json:"entity_id,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persistFunc func(ctx context.Context, event Event) error
}

// New builds a production zap logger writing JSON to stdout
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	z, err := config.Build(zap.AddCaller())
	if err != nil {
		z, _ = zap.NewProduction()
	}
	return NewWithZap(z, serviceName, environment)
}

func NewWithZap(z *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: z, serviceName: serviceName, environment: environment}
}

// Nop discards every event
func Nop() *Logger {
	return NewWithZap(zap.NewNop(), "", "")
}

// SetPersistFunc sets the function used to store events asynchronously
func (l *Logger) SetPersistFunc(f func(ctx context.Context, event Event) error) {
	l.persistFunc = f
}

func levelFor(t EventType) zapcore.Level {
	switch t {
	case EventUnauthorizedAccess:
		return zapcore.ErrorLevel
	case EventNotificationFailed:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment
	level := levelFor(event.Event)
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID), zap.String("actor_role", event.ActorRole))
	}
	if event.EntityType != "" {
		fields = append(fields, zap.String("entity_type", event.EntityType), zap.Int64("entity_id", event.EntityID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}
	l.zapLogger.Log(level, string(event.Event), fields...)

	if l.persistFunc != nil {
		go func(e Event) {
			// request context may already be cancelled
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := l.persistFunc(ctx, e); err != nil {
				l.zapLogger.Error("Failed to persist audit event", zap.Error(err))
			}
		}(event)
	}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// Environment derives the deployment environment from GIN_MODE
func Environment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
