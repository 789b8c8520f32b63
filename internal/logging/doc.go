// Package logging provides structured logging for labkit built on log/slog.
//
// It supplies a colorized TTY handler for interactive use, a JSON handler for
// machine consumption, and a MultiHandler for logging to the console and a
// file simultaneously. Color output is disabled automatically when the writer
// is not a terminal, when NO_COLOR is set, or when TERM=dumb.
//
// Commands obtain their logger through the command context:
//
//	logger := logging.FromContext(cmd.Context())
//	logger.Info("manifest written", "rows", len(rows), "path", dest)
//
// Tests use [ForTest], which routes log output through testing.T so messages
// appear only on failure or under -v.
package logging
