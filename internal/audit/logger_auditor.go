// filepath: internal/audit/logger_auditor.go
package audit

import (
	"context"
	"petsapp/internal/logging"
	"petsapp/internal/services"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Ensure LoggerAuditor implements services.Auditor
var _ services.Auditor = (*LoggerAuditor)(nil)

// LoggerAuditor writes audit events to the application log.
type LoggerAuditor struct {
	enabled bool
	logger  *logrus.Logger
}

// NewLoggerAuditor creates a new instance of LoggerAuditor writing to logging.Log.
func NewLoggerAuditor(enabled bool) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, logger: logging.Log}
}

// Log records an event using logrus if auditing is enabled.
// Every event gets its own sortable audit_id.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_id":       ulid.Make().String(),
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}

	for k, v := range details {
		fields["detail."+k] = v
	}

	a.logger.WithContext(ctx).WithFields(fields).Info("AUDIT EVENT")
}
