// Package logger builds *slog.Logger values from functional options and
// provides attribute constructors that keep key names consistent.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the
// configured Format and attaches any static attributes:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("RULEKIT_ENV"), "rulekit"),
//		logger.WithOutput(os.Stderr),
//	)
//	log.Debug("rule redefined", logger.Rule("email"), logger.Component("validator.registry"))
//
// # Configuration
//
//   - WithDevelopment / WithStaging / WithProduction set level, format and
//     the service and env attributes.
//   - WithFormat / WithTextFormatter / WithJSONFormatter override the format.
//   - WithLevel and WithHandlerOptions control filtering.
//   - WithAttr attaches static attributes.
//
// ParseLevel and ParseFormat turn configuration strings into option values.
//
// # Attributes
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally:
//
//	log.Info("validated", logger.Ruleset(name), logger.Violations(len(res)), logger.Error(err))
package logger
