package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// Init installs the process logger. Call once from main before serving.
func Init(l *zap.Logger) {
	logger = l
}

// L exposes the raw logger for non-request call sites (startup, seeding).
func L() *zap.Logger {
	return logger
}

func fieldsFor(c *fiber.Ctx, action string, err error, extra map[string]any) []zap.Field {
	fs := []zap.Field{zap.String("action", action)}
	if c != nil {
		fs = append(fs,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fs = append(fs, zap.String("req_id", rid))
		}
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	for k, v := range extra {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, fieldsFor(c, action, nil, fields)...)
}

// Audit records state-changing actions an operator may need to trace.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, append(fieldsFor(c, action, nil, fields), zap.String("kind", "audit"))...)
}

// Security records rejected or suspicious requests.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Warn(action, append(fieldsFor(c, action, nil, fields), zap.String("kind", "security"))...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	logger.Error(action, fieldsFor(c, action, err, fields)...)
}
