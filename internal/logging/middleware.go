package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware attaches a fresh LogData to every request context and emits the
// Handler.<op>.Start / .Complete entries around the handler chain.
func Middleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		operationID := ctx.Operation().OperationID
		logger.Infof("Handler.%v.Start", operationID)

		logData := NewLogData(logger)
		endTimer := logData.AddTiming("duration")

		next(huma.WithContext(ctx, NewContext(ctx.Context(), logData)))

		endTimer()
		logData.Log().Infof("Handler.%v.Complete", operationID)
	}
}
