// Package logging provides structured logging for prodpath commands.
//
// This package wraps Go's log/slog to emit JSON-formatted records. A command
// attaches its name and input source once through the With* helpers and every
// record written afterwards carries them, which keeps a debug log from several
// invocations easy to filter.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithCommand("max").WithSource("tree.json")
//	log.Info("analyzed tree", "nodes", 7, "product", 40)
//
// When logging is disabled use [NopLogger].
package logging
