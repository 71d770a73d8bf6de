// Package main provides the CLI entrypoint for memewire.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/memewire/internal/actions"
	"github.com/verte-zerg/memewire/internal/app"
	"github.com/verte-zerg/memewire/internal/chance"
	"github.com/verte-zerg/memewire/internal/config"
	"github.com/verte-zerg/memewire/internal/generator"
	"github.com/verte-zerg/memewire/internal/logging"
	"github.com/verte-zerg/memewire/internal/model"
	"github.com/verte-zerg/memewire/internal/stats"
	"github.com/verte-zerg/memewire/internal/store"
	"github.com/verte-zerg/memewire/internal/templates"
	"github.com/verte-zerg/memewire/internal/tui"
)

const defaultOutputWidth = 80

var (
	flagConfidence  int
	flagSource      string
	flagExtraQuotes string
	flagSeed        int64

	generateHeadline bool
	generateCaption  bool
	generateCopy     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "memewire",
		Short:         "Satirical Maduro meme desk for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runDeskCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagConfidence, "confidence", config.DefaultConfidence, "authenticity shown on generated memes (0-100)")
	flags.StringVar(&flagSource, "source", "", "fixed source label (default: random)")
	flags.StringVar(&flagExtraQuotes, "extra-quotes", "", "file with extra quotes, one per line")
	flags.Int64Var(&flagSeed, "seed", 0, "random seed (0 seeds from the clock)")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDeskCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pools, err := loadPools(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inbox := tui.NewInbox()
	desk := app.New(app.Deps{
		Config:    cfg,
		KV:        st,
		Pools:     pools,
		Rand:      newRand(cfg),
		Logger:    logger,
		Announcer: inbox,
		Copier:    actions.NewCopier(os.Stdout),
	})
	defer desk.Shutdown()

	program := tea.NewProgram(tui.NewModel(ctx, desk, inbox, cfg), tea.WithAltScreen())
	if err := desk.Start(ctx, notifier(program.Send)); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// notifier adapts a program's Send to the desk's message sink.
func notifier(send func(tea.Msg)) app.Notify {
	return func(msg any) { send(msg) }
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [hint]",
		Short: "Print one meme",
		Long:  "Print one meme. A hint containing \"funny\"/\"gracioso\" or \"political\"/\"político\" narrows the quote pool.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGenerateCmd,
	}
	cmd.Flags().BoolVar(&generateHeadline, "headline", false, "draw from the breaking-news pool")
	cmd.Flags().BoolVar(&generateCaption, "caption", false, "also print the social caption")
	cmd.Flags().BoolVar(&generateCopy, "copy", false, "copy the meme text to the clipboard")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pools, err := loadPools(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	desk := app.New(app.Deps{
		Config: cfg,
		KV:     st,
		Pools:  pools,
		Rand:   newRand(cfg),
		Logger: logger,
		Copier: actions.NewCopier(os.Stdout),
	})
	defer desk.Shutdown()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := generator.Options{Source: cfg.Source, Confidence: &cfg.DefaultConfidence}
	var rec model.Record
	if generateHeadline {
		rec, _ = desk.Headline(ctx, opts)
	} else {
		hint := ""
		if len(args) > 0 {
			hint = args[0]
		}
		rec, _ = desk.Generate(ctx, hint, opts)
	}

	out := cmd.OutOrStdout()
	if err := printRecord(out, rec, outputWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if generateCaption {
		if _, err := fmt.Fprintf(out, "\n%s\n", actions.Caption(rec, cfg.SiteURL)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if generateCopy {
		outcome, err := desk.Dispatch(ctx, actions.CopyMeme)
		if err != nil {
			return fmt.Errorf("failed to copy meme: %w", err)
		}
		logger.Info(outcome.Message, zap.Stringer("method", outcome.Method))
	}
	return nil
}

func printRecord(w io.Writer, rec model.Record, width int) error {
	kicker := "MEME"
	if rec.Category == model.CategoryRumor {
		kicker = "BREAKING"
	}
	lines := []string{
		kicker,
		runewidth.Wrap(rec.Phrase, width),
		runewidth.Wrap(generator.MetaLine(rec), width),
		generator.ConfidenceLabel(rec),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultOutputWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show counters and last visit",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st, time.Now())
	if err != nil {
		return err
	}
	if err := stats.Render(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig layers defaults, the config file, and flags, in that order.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Defaults()
	if err := config.Apply(&cfg, fileCfg); err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "confidence", &flagConfidence, fileCfg.Generator.DefaultConfidence)
	applyStringConfig(cmd, "source", &flagSource, fileCfg.Generator.Source)
	applyStringConfig(cmd, "extra-quotes", &flagExtraQuotes, fileCfg.Generator.ExtraQuotes)

	cfg.DefaultConfidence = flagConfidence
	cfg.Source = strings.TrimSpace(flagSource)
	cfg.ExtraQuotesPath = strings.TrimSpace(flagExtraQuotes)
	cfg.Seed = flagSeed

	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// newLogger builds the logger. The TUI owns the terminal, so it logs to a file.
func newLogger(cfg model.Config, toFile bool) (*zap.Logger, error) {
	if toFile {
		return logging.New(cfg.LogLevel, cfg.LogFile)
	}
	return logging.NewConsole(cfg.LogLevel)
}

func loadPools(cfg model.Config) (*templates.Pools, error) {
	if cfg.ExtraQuotesPath == "" {
		return templates.Default(), nil
	}
	extra, err := templates.LoadQuotes(cfg.ExtraQuotesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load extra quotes from %s: %w", cfg.ExtraQuotesPath, err)
	}
	return templates.WithExtra(extra), nil
}

func newRand(cfg model.Config) chance.Rand {
	if cfg.Seed != 0 {
		return chance.New(cfg.Seed)
	}
	return chance.NewTimeSeeded()
}

func openStore(logger *zap.Logger) (*store.Store, error) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	logger.Debug("opened store", zap.String("path", path))
	return st, nil
}

func closeStore(st *store.Store, logger *zap.Logger) {
	if err := st.Close(); err != nil {
		logger.Warn("failed to close db", zap.Error(err))
	}
}
