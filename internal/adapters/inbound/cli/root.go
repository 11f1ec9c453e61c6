package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/config"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/pluginfs"
	"github.com/ff6editor/pluginvet/internal/application"
	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/ff6editor/pluginvet/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	historyDB  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "pluginvet",
		Short: "Validate editor plugin submissions",
		Long: "pluginvet statically checks a plugin submission directory: required files, size limits, " +
			"metadata schema, script heuristics, forbidden API usage, documentation and checksum.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", ".", "Config file, or directory containing .pluginvet.yaml")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides config")
	cmd.PersistentFlags().StringVar(&flags.historyDB, "history-db", "", "SQLite history database; overrides config")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newChecksumCmd(flags))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newMCPCmd(flags))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and prints any error to stderr.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// env is the configuration and services resolved for one command.
type env struct {
	cfg    domain.Config
	rules  domain.Rules
	logger *logrus.Logger
}

func loadEnv(cmd *cobra.Command, flags *globalFlags) (*env, error) {
	cfg, err := config.New().Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.historyDB != "" {
		cfg.HistoryDB = flags.historyDB
	}

	return &env{
		cfg:    cfg,
		rules:  cfg.Apply(domain.DefaultRules()),
		logger: logging.New(cfg.LogLevel, cmd.ErrOrStderr()),
	}, nil
}

func (e *env) service(opts ...application.Option) *application.ValidateService {
	return application.NewValidateService(pluginfs.New(), e.rules, e.logger, opts...)
}
