// Package audit writes the action trail into the remote audit_logs table.
// Inserts are best-effort: a failed audit write is logged and never fails
// the action being audited.
package audit

import (
	"context"
	"strconv"
	"time"

	"skillbridge/internal/remote"

	"go.uber.org/zap"
)

type entry struct {
	Entity      string `json:"entity"`
	EntityID    string `json:"entity_id"`
	Action      string `json:"action"`
	PerformedBy string `json:"performed_by"`
	Timestamp   string `json:"timestamp"`
}

// Logger records entity-level actions.
type Logger struct {
	client *remote.Client
	logger *zap.Logger
}

// NewLogger builds an audit Logger.
func NewLogger(client *remote.Client, logger *zap.Logger) *Logger {
	return &Logger{client: client, logger: logger}
}

// Record writes one audit row.
func (l *Logger) Record(ctx context.Context, action, entity string, entityID int64, performedBy string) {
	row := entry{
		Entity:      entity,
		EntityID:    strconv.FormatInt(entityID, 10),
		Action:      action,
		PerformedBy: performedBy,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := l.client.Table("audit_logs").Insert(ctx, row, nil); err != nil {
		l.logger.Warn("audit log insert failed",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Notification is a best-effort row in the remote notifications table.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	LinkURL string `json:"link_url"`
	Visible bool   `json:"visible"`
}

// Notify publishes a notification row.
func (l *Logger) Notify(ctx context.Context, n Notification) {
	if err := l.client.Table("notifications").Insert(ctx, n, nil); err != nil {
		l.logger.Warn("notification insert failed", zap.String("type", n.Type), zap.Error(err))
	}
}
