package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Iron-Ham/prodpath/internal/config"
	"github.com/Iron-Ham/prodpath/internal/errors"
	"github.com/Iron-Ham/prodpath/internal/logging"
	"github.com/spf13/cobra"
)

// invocation is what every command needs after flag parsing: the effective
// configuration and a logger tagged with the command name.
type invocation struct {
	cfg    *config.Config
	logger *logging.Logger
	out    *printer
}

func loadInvocation(cmd *cobra.Command) (*invocation, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return nil, nil, err
		}
	}

	rt := &invocation{
		cfg:    cfg,
		logger: logger.WithCommand(cmd.Name()),
		out:    newPrinter(cmd.OutOrStdout(), cfg.Output),
	}
	closer := func() {
		_ = logger.Close()
	}
	return rt, closer, nil
}

// readInput returns the command input and a name for it: the literal flag
// value when set, the named file, or stdin when no file (or "-") is given.
func readInput(cmd *cobra.Command, args []string, literal string) ([]byte, string, error) {
	if literal != "" {
		return []byte(literal), "flag", nil
	}

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "stdin", errors.Wrap(err, "failed to read stdin")
		}
		return data, "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, args[0], errors.NewInputError("failed to read input file", err).WithSource(args[0])
	}
	return data, args[0], nil
}

// withSource tags input errors with the name of the input they came from.
func withSource(err error, source string) error {
	var inputErr *errors.InputError
	if errors.As(err, &inputErr) && inputErr.Source == "" {
		inputErr.WithSource(source)
	}
	return err
}
