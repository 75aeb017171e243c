package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/config"
	"github.com/sant0-9/promptforge/internal/generate"
	"github.com/sant0-9/promptforge/internal/logging"
	"github.com/sant0-9/promptforge/internal/tui"
	"github.com/sant0-9/promptforge/internal/web"
)

var version = "dev"

var (
	// Global flags
	configPath string
	verbose    bool
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
)

// errReported marks a failure already printed for the user
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:     "promptforge",
	Short:   "PromptForge - turn rough ideas into engineered prompts",
	Version: version,
	Long: `PromptForge scores a rough prompt, critiques it, and drafts three
optimized variations with a large language model.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config subcommands manage the file, so they must not need it
		if cmd.Parent() != configCmd {
			var err error
			cfg, err = config.Resolve(configPath)
			if err != nil {
				return err
			}
		}

		var err error
		opts := logging.Options{Verbose: verbose}
		if cmd == cmd.Root() {
			// The TUI owns the terminal
			opts.Interactive = true
			opts.File = interactiveLogFile()
		}
		logger, err = logging.New(opts)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze a prompt once and print the result",
	Long: `Sends the text to the configured model and prints the score, critique,
suggestions and the three variations.

Example:
  promptforge analyze --mode Coding "write a function that parses dates"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface and JSON API",
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file if none exists",
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/promptforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file for the interactive interface")

	analyzeCmd.Flags().StringP("mode", "m", string(analysis.ModeGeneral), "analysis mode: "+modeList())
	analyzeCmd.Flags().Bool("json", false, "print the result as JSON")

	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(analyzeCmd, serveCmd, configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runInteractive(ctx context.Context) error {
	client := generate.New(cfg, generate.WithLogger(logger))
	app := tui.NewApp(client,
		tui.WithLogger(logger),
		tui.WithContext(ctx),
	)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	asJSON, _ := cmd.Flags().GetBool("json")

	mode, err := analysis.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	client := generate.New(cfg, generate.WithLogger(logger))
	result, err := client.Generate(cmd.Context(), strings.Join(args, " "), mode)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), generate.Describe(err))
		return errReported
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeReport(cmd.OutOrStdout(), result)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	client := generate.New(cfg, generate.WithLogger(logger))
	srv, err := web.New(client, cfg.Server, logger)
	if err != nil {
		return err
	}

	logger.Info("starting web interface",
		zap.String("addr", addr),
		zap.String("provider", client.ProviderName()),
		zap.String("model", client.Model()),
	)
	return srv.ListenAndServe(cmd.Context(), addr)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Config already exists at %s\n", path)
		return nil
	}

	if err := config.DefaultConfig().SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n\n", path)
	return writeProviders(out, config.Providers)
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.ConfigPath()
}

func interactiveLogFile() string {
	if logFile != "" {
		return logFile
	}
	if cfg != nil && cfg.LogFile != "" {
		return cfg.LogFile
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "promptforge.log")
}

func modeList() string {
	names := make([]string, len(analysis.Modes))
	for i, m := range analysis.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
