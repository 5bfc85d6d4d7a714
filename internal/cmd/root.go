package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/prodpath/internal/config"
	"github.com/Iron-Ham/prodpath/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the full prodpath command tree. Flags are bound to the
// global viper instance, so callers building more than one tree (tests)
// should viper.Reset() in between.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prodpath",
		Short: "Maximum product paths in binary trees, and word frequencies",
		Long: `prodpath finds the maximum product of any downward path in a binary
tree of signed integers, and the most common non-banned word of a paragraph.

Trees are read as YAML or JSON, either as a breadth-first list
("[10, 4, -2, null, 7]") or as nested mappings ("{value: 10, left: {value: 4}}").`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/prodpath/config.yaml)")
	flags.Bool("log", false, "write a JSON debug log")
	flags.String("log-level", "info", "minimum log level (debug/info/warn/error)")
	flags.String("log-dir", "", "directory for prodpath.log (default: stderr)")
	flags.Bool("color", true, "style text output")
	flags.StringP("output", "o", "text", "output format (text/json/yaml)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("logging.enabled", flags.Lookup("log"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.dir", flags.Lookup("log-dir"))
	_ = viper.BindPFlag("output.color", flags.Lookup("color"))
	_ = viper.BindPFlag("output.format", flags.Lookup("output"))

	rootCmd.AddCommand(newMaxCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	return execute(NewRootCmd())
}

func execute(root *cobra.Command) error {
	root.SilenceErrors = true
	cmd, err := root.ExecuteC()
	if err != nil {
		reportError(root.ErrOrStderr(), cmd, err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status:
// 0 on success, 2 for rejected input or configuration, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsUserFacing(err) && errors.GetSeverity(err) <= errors.SeverityWarning:
		return 2
	default:
		return 1
	}
}

// reportError prints err for the user. Untyped errors, such as a bad flag,
// also point at the command's help.
func reportError(w io.Writer, cmd *cobra.Command, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if !errors.IsUserFacing(err) && cmd != nil {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/prodpath")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PRODPATH")
	// e.g., PRODPATH_TREE_ARITHMETIC for tree.arithmetic
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
