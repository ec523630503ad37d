// Package audit writes the append-only audit trail of contact
// mutations. Each entry carries a timestamp, severity, a generated
// event ID, and enough context (book, identity key, operation) to
// reconstruct what was attempted. The log is never read back by the
// core.
package audit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// FileName is the audit log file inside the data directory.
const FileName = "audit.log"

// Logger records audit events through a zap JSON logger.
type Logger struct {
	z *zap.Logger
}

// New opens (or creates) an append-only audit log at path.
func New(path string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Nop returns a Logger that discards every event. Used by tests.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Close flushes buffered entries. Sync errors are ignored; the audit
// log is best-effort by contract.
func (l *Logger) Close() {
	_ = l.z.Sync()
}

// eventID generates a UUID v7 so entries sort by creation time.
func eventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func (l *Logger) event(op, book string, key types.Key) []zap.Field {
	return []zap.Field{
		zap.String("event_id", eventID()),
		zap.String("op", op),
		zap.String("book", book),
		zap.String("contact", key.String()),
	}
}

// Added records a successful contact addition.
func (l *Logger) Added(book string, c types.Contact) {
	l.z.Info("contact added", l.event("add", book, c.Key())...)
}

// Edited records a successful contact edit.
func (l *Logger) Edited(book string, c types.Contact) {
	l.z.Info("contact edited", l.event("edit", book, c.Key())...)
}

// Deleted records a successful contact deletion.
func (l *Logger) Deleted(book string, c types.Contact) {
	l.z.Info("contact deleted", l.event("delete", book, c.Key())...)
}

// DuplicateRejected records an add or rename rejected because the
// identity key is already taken.
func (l *Logger) DuplicateRejected(book string, key types.Key) {
	l.z.Warn("duplicate entry rejected", l.event("add", book, key)...)
}

// NotFound records an edit or delete whose target key is absent.
func (l *Logger) NotFound(op, book string, key types.Key) {
	l.z.Warn("contact not found", l.event(op, book, key)...)
}

// Failure records a recoverable storage error during an operation.
func (l *Logger) Failure(op, book string, err error) {
	l.z.Error("operation failed",
		zap.String("event_id", eventID()),
		zap.String("op", op),
		zap.String("book", book),
		zap.Error(err))
}
