package tymlerr

import "go.uber.org/zap"

// LoggingHandler wraps another Handler, logging the error at Error level
// through a *zap.Logger before delegating. It is opt-in: the package
// default handler is PanicHandler{}, which does not log.
type LoggingHandler struct {
	Logger *zap.Logger
	Next   Handler
}

// NewLoggingHandler returns a LoggingHandler that logs through logger
// and then delegates to next. If next is nil, PanicHandler is used.
func NewLoggingHandler(logger *zap.Logger, next Handler) *LoggingHandler {
	if next == nil {
		next = PanicHandler{}
	}
	return &LoggingHandler{Logger: logger, Next: next}
}

func (h *LoggingHandler) Handle(err *Error) {
	h.Logger.Error(
		"tyml error",
		zap.String("reasonCode", string(err.ReasonCode)),
		zap.String("file", err.File),
		zap.Int("line", err.Line),
		zap.Int("column", err.Column),
		zap.Error(err.Err),
	)
	h.Next.Handle(err)
}
