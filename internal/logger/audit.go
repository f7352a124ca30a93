package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	// Check-in actions
	AuditActionSignalAccepted AuditAction = "SIGNAL_ACCEPTED"
	AuditActionSignalRejected AuditAction = "SIGNAL_REJECTED"

	// Report operations
	AuditActionReportDownload AuditAction = "REPORT_DOWNLOAD"

	// WebSocket operations
	AuditActionWSConnect    AuditAction = "WS_CONNECT"
	AuditActionWSDisconnect AuditAction = "WS_DISCONNECT"
)

// AuditEvent represents an audit log entry
type AuditEvent struct {
	Action     AuditAction
	SessionID  string
	Resource   string
	ResourceID string
	Details    map[string]interface{}
	ClientIP   string
	RequestID  string
	Success    bool
	Error      string
}

// auditLogger is a specialized logger for audit events
var auditLogger zerolog.Logger

// InitAudit initializes the audit logger
func InitAudit() {
	auditLogger = globalLogger.With().Str("log_type", "audit").Logger()
}

// Audit logs an audit event
func Audit(ctx context.Context, event AuditEvent) {
	if event.RequestID == "" {
		event.RequestID = GetRequestID(ctx)
	}
	if event.SessionID == "" {
		event.SessionID = GetSessionID(ctx)
	}

	logEvent := auditLogger.Info()
	if !event.Success {
		logEvent = auditLogger.Warn()
	}

	logEvent.
		Str("action", string(event.Action)).
		Str("session_id", event.SessionID).
		Str("resource", event.Resource).
		Str("resource_id", event.ResourceID).
		Str("client_ip", event.ClientIP).
		Str("request_id", event.RequestID).
		Bool("success", event.Success).
		Time("timestamp", time.Now().UTC())

	if event.Error != "" {
		logEvent.Str("error", event.Error)
	}

	if len(event.Details) > 0 {
		logEvent.Interface("details", event.Details)
	}

	logEvent.Msg("Audit event")
}

// AuditCheckIn logs a check-in attempt, accepted or throttled.
func AuditCheckIn(ctx context.Context, officeID, sessionID, signalType string, accepted bool) {
	action := AuditActionSignalAccepted
	if !accepted {
		action = AuditActionSignalRejected
	}

	Audit(ctx, AuditEvent{
		Action:     action,
		SessionID:  sessionID,
		Resource:   "live_signal",
		ResourceID: officeID,
		Success:    accepted,
		Details: map[string]interface{}{
			"signal_type": signalType,
		},
	})
}

// AuditWebSocket logs WebSocket connection events
func AuditWebSocket(ctx context.Context, action AuditAction, officeID, clientIP string, details map[string]interface{}) {
	Audit(ctx, AuditEvent{
		Action:     action,
		Resource:   "websocket",
		ResourceID: officeID,
		ClientIP:   clientIP,
		Success:    true,
		Details:    details,
	})
}
