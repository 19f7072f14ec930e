// Package logger builds the service's *slog.Logger.
//
// New takes functional options for level, format, output and static
// attributes. The resulting handler is wrapped in LogHandlerDecorator, which
// runs the registered ContextExtractor callbacks on every record so that
// request-scoped values end up in the log line without being passed around:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "schoolerp-edge"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//			i18n.LoggerExtractor(),
//		),
//	)
//	log.InfoContext(r.Context(), "tenant resolved")
//
// Development uses text output at debug level; staging and production use
// JSON at info level. LOG_LEVEL and LOG_FORMAT override both (see Config and
// FromConfig).
package logger
