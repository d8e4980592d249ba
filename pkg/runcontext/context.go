// Package runcontext carries per-run metadata (request id, operation, start
// time) through the notes pipeline so every log line can be correlated.
package runcontext

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRequestID KeyContext = "request_id"
	keyOperation KeyContext = "operation"
	keyStartTime KeyContext = "run_start_time"
)

// Metadata holds metadata for one pipeline run
type Metadata struct {
	RequestID string
	Operation string
	StartTime time.Time
}

// Begin derives a run context. A positive timeout bounds the whole run.
func Begin(parent context.Context, requestID, operation string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := parent, context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	}

	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyOperation, operation)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// GetRequestID extracts the request id from context
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// GetOperation extracts the operation name from context
func GetOperation(ctx context.Context) string {
	op, _ := ctx.Value(keyOperation).(string)
	return op
}

// GetStartTime extracts the run start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	return start, ok
}

// Elapsed returns the time since Begin, or zero outside a run
func Elapsed(ctx context.Context) time.Duration {
	start, ok := GetStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetMetadata extracts all run metadata from context
func GetMetadata(ctx context.Context) *Metadata {
	start, _ := GetStartTime(ctx)
	return &Metadata{
		RequestID: GetRequestID(ctx),
		Operation: GetOperation(ctx),
		StartTime: start,
	}
}

// LogFields returns zap fields for the run, skipping unset values
func LogFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if op := GetOperation(ctx); op != "" {
		fields = append(fields, zap.String("operation", op))
	}
	if _, ok := GetStartTime(ctx); ok {
		fields = append(fields, zap.Duration("elapsed", Elapsed(ctx)))
	}
	return fields
}
