package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"execview/cli/api"
	"execview/cli/config"
	"execview/internal/logging"
)

var (
	configPath string
	apiURL     string
	timeout    time.Duration
	timeZone   string
	logLevel   string
	logFile    string

	cfg    *config.Config
	client *api.Client
	logger *slog.Logger
	logOut io.WriteCloser
)

var rootCmd = &cobra.Command{
	Use:   "execview",
	Short: "Inspect script executions recorded by the history API",
	Long: `execview shows the metadata and full log of a single script execution.

Use "show" for a one-off print or "browse" to switch between executions
interactively.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("api") {
			loaded.APIURL = apiURL
		}
		if flags.Changed("timeout") {
			loaded.Timeout = timeout
		}
		if flags.Changed("tz") {
			loaded.TimeZone = timeZone
		}
		if flags.Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if flags.Changed("log-file") {
			loaded.LogFile = logFile
		}
		cfg = loaded

		logOut, err = logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		logger, err = logging.Configure(cfg.LogLevel, logOut)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}

		client = api.New(cfg.APIURL, cfg.Timeout)
		logger.Debug("client configured", "api", cfg.APIURL, "timeout", cfg.Timeout)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logOut != nil {
			logOut.Close()
		}
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := config.Defaults()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default $EXECVIEW_CONFIG or ~/.config/execview/config.yaml)")
	pf.StringVar(&apiURL, "api", defaults.APIURL, "history API base URL")
	pf.DurationVar(&timeout, "timeout", defaults.Timeout, "request timeout")
	pf.StringVar(&timeZone, "tz", "", "time zone for start times (default local)")
	pf.StringVar(&logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file (default discard)")
}
