package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
	return l
}

// SetLevel accepts logrus level names (debug, info, warn, error).
// Unknown names leave the level untouched.
func SetLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		base.SetLevel(lvl)
	}
}

func SetOutput(w io.Writer) { base.SetOutput(w) }

type Logger struct {
	service   string
	requestID string
	entry     *logrus.Entry
}

func New(service string) *Logger {
	return &Logger{
		service: service,
		entry: base.WithFields(logrus.Fields{
			"service":    service,
			"hostname":   hostname(),
			"request_id": "",
		}),
	}
}

func (l *Logger) Service() string { return l.service }

func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{service: l.service, requestID: id, entry: l.entry.WithField("request_id", id)}
}

func (l *Logger) log(level logrus.Level, action string, fields map[string]any, err error) {
	e := l.entry.WithField("action", action)
	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}
	if err != nil {
		e = e.WithField("error", map[string]any{"msg": err.Error(), "stack": fmt.Sprintf("%T", err)})
	}
	e.Log(level, action)
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.log(logrus.InfoLevel, action, fields, nil)
}
func (l *Logger) Debug(action string, fields map[string]any) {
	l.log(logrus.DebugLevel, action, fields, nil)
}
func (l *Logger) Warn(action string, fields map[string]any) {
	l.log(logrus.WarnLevel, action, fields, nil)
}
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(logrus.ErrorLevel, action, fields, err)
}

type ctxKey struct{}

func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns fallback tagged with the request id of the logger attached
// to ctx. The service name stays fallback's. With a nil fallback the attached
// logger is returned as is.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	l, ok := ctx.Value(ctxKey{}).(*Logger)
	if !ok || l == nil {
		return fallback
	}
	if fallback == nil {
		return l
	}
	return fallback.WithRequestID(l.requestID)
}

func hostname() string { h, _ := os.Hostname(); return h }
