package log

import (
	"context"
	"time"

	"github.com/ap-automation/roi-planner/pkg/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger traces named operations. Every entry of an operation carries the
// operation name, the request id found in the context and the fields set with the builder.
type StructuredLogger struct {
	name   string
	level  zapcore.Level
	fields []zap.Field
}

// NewDebugLogger returns a logger whose operation steps are emitted at debug level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.DebugLevel}
}

// NewInfoLogger returns a logger whose operation steps are emitted at info level.
func NewInfoLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.InfoLevel}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	fields := make([]zap.Field, 0, len(l.fields)+1)
	fields = append(fields, l.fields...)
	if id := requestid.FromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return &StructuredLogger{name: l.name, level: l.level, fields: fields}
}

func (l *StructuredLogger) Operation(op string) *OperationBuilder {
	return &OperationBuilder{
		logger: l,
		op:     op,
		fields: append([]zap.Field{}, l.fields...),
	}
}

func (l *StructuredLogger) zap() *zap.Logger {
	return zap.L().Named(l.name)
}

type OperationBuilder struct {
	logger *StructuredLogger
	op     string
	fields []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithStringPtr(key string, value *string) *OperationBuilder {
	if value == nil {
		b.fields = append(b.fields, zap.Skip())
		return b
	}
	return b.WithString(key, *value)
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	return b.WithString(key, value.String())
}

// Build logs the start of the operation and returns its tracer.
func (b *OperationBuilder) Build() *OperationTracer {
	t := &OperationTracer{
		logger: b.logger,
		op:     b.op,
		fields: append(b.fields, zap.String("operation", b.op)),
		start:  time.Now(),
	}
	t.entry(b.logger.level, "operation started").Log()
	return t
}

type OperationTracer struct {
	logger *StructuredLogger
	op     string
	fields []zap.Field
	start  time.Time
}

func (t *OperationTracer) Step(step string) *LogEntry {
	return t.entry(t.logger.level, "operation step").WithString("step", step)
}

func (t *OperationTracer) Success() *LogEntry {
	return t.entry(t.logger.level, "operation succeeded").
		withField(zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *LogEntry {
	return t.entry(zapcore.ErrorLevel, "operation failed").
		withField(zap.Error(err)).
		withField(zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) entry(level zapcore.Level, msg string) *LogEntry {
	return &LogEntry{
		logger: t.logger.zap(),
		level:  level,
		msg:    msg,
		fields: append([]zap.Field{}, t.fields...),
	}
}

// LogEntry is a single log line. Nothing is written until Log is called.
type LogEntry struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *LogEntry) WithString(key, value string) *LogEntry {
	return e.withField(zap.String(key, value))
}

func (e *LogEntry) WithInt(key string, value int) *LogEntry {
	return e.withField(zap.Int(key, value))
}

func (e *LogEntry) WithFloat(key string, value float64) *LogEntry {
	return e.withField(zap.Float64(key, value))
}

func (e *LogEntry) WithBool(key string, value bool) *LogEntry {
	return e.withField(zap.Bool(key, value))
}

func (e *LogEntry) WithUUID(key string, value uuid.UUID) *LogEntry {
	return e.withField(zap.String(key, value.String()))
}

func (e *LogEntry) withField(f zap.Field) *LogEntry {
	e.fields = append(e.fields, f)
	return e
}

func (e *LogEntry) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
