package httpserver

import (
	"context"

	"go.uber.org/zap"

	"github.com/claimworks/reserving/pkg/reserving"
)

type zapOperationLogger struct {
	logger *zap.Logger
}

// NewOperationLogger adapts a zap logger to the reserving operation callback.
func NewOperationLogger(logger *zap.Logger) reserving.OperationLogger {
	return &zapOperationLogger{logger: logger}
}

func (adapter *zapOperationLogger) LogOperation(_ context.Context, entry reserving.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("project_id", entry.ProjectID.String()),
		zap.String("actor", entry.Actor.String()),
		zap.String("entity_id", entry.EntityID),
		zap.String("status", entry.Status),
	}
	if entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
		adapter.logger.Warn("reserving operation failed", fields...)
		return
	}
	adapter.logger.Info("reserving operation", fields...)
}
