package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/lens/internal/config"
	"github.com/kingrea/lens/internal/logging"
	"github.com/kingrea/lens/internal/store"
	"github.com/kingrea/lens/internal/tui"
	"github.com/kingrea/lens/internal/watch"
)

// cli carries what PersistentPreRunE prepares for every subcommand.
type cli struct {
	projectDir string
	logLevel   string
	inputs     map[string]*string
	files      map[string]*string

	cfg    *config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{
		inputs: map[string]*string{},
		files:  map[string]*string{},
	}
	root := &cobra.Command{
		Use:   "lens",
		Short: "Review translation feedback with linked phrase highlighting",
		Long: `lens splits reviewer feedback on a translation exercise into six sections,
collects every quoted phrase and highlights it in the original, your
translation, the AI translation and the feedback itself.

Run without arguments to open the interactive review. Texts come from the
--original/--user/--ai/--feedback flags (or their -file variants) and fall
back to the project store in .lens/.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Close()
			}
		},
		RunE: c.runInteractive,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.projectDir, "dir", "C", "", "project directory (default: current directory)")
	flags.StringVar(&c.logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")
	for _, key := range store.InputKeys() {
		c.inputs[key] = flags.String(key, "", fmt.Sprintf("%s text, overrides the store", key))
		c.files[key] = flags.String(key+"-file", "", fmt.Sprintf("read the %s text from a file", key))
	}

	root.AddCommand(c.newShowCmd(), c.newInspectCmd(), c.newStoreCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	dir := strings.TrimSpace(c.projectDir)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("working directory: %w", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("project directory: %w", err)
	}
	if err := config.InitLensDir(abs); err != nil {
		return fmt.Errorf("initialize .lens directory: %w", err)
	}
	cfg, err := config.NewConfig(abs)
	if err != nil {
		return err
	}
	level := cfg.LogLevel()
	if strings.TrimSpace(c.logLevel) != "" {
		level = c.logLevel
	}
	logger, err := logging.New(cfg.LogsDir(), level)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	logger.Zap().Debug("command start",
		zap.String("command", cmd.CommandPath()),
		zap.String("project", abs),
		zap.String("store", cfg.StoreBackend()),
	)
	return nil
}

func (c *cli) openStore() (store.Store, error) {
	return store.Open(c.cfg.StoreBackend(), c.cfg.StorePath())
}

// supplied collects the inputs given on the command line. Only flags the user
// actually set are returned, so an explicit empty value still beats the store.
func (c *cli) supplied(cmd *cobra.Command) (map[string]string, error) {
	out := map[string]string{}
	flags := cmd.Flags()
	for _, key := range store.InputKeys() {
		if flags.Changed(key + "-file") {
			data, err := os.ReadFile(*c.files[key])
			if err != nil {
				return nil, fmt.Errorf("read %s file: %w", key, err)
			}
			out[key] = string(data)
			continue
		}
		if flags.Changed(key) {
			out[key] = *c.inputs[key]
		}
	}
	return out, nil
}

func (c *cli) runInteractive(cmd *cobra.Command, args []string) error {
	supplied, err := c.supplied(cmd)
	if err != nil {
		return err
	}
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	app, err := tui.NewApp(c.cfg, st, supplied, tui.WithLogger(c.logger))
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if c.cfg.WatchEnabled() {
		debounce := time.Duration(c.cfg.Project.Watch.DebounceMS) * time.Millisecond
		w, err := watch.New(c.cfg.StorePath(), app.NotifyStoreChanged,
			watch.WithDebounce(debounce),
			watch.WithLogger(c.logger.Zap()),
		)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			c.logger.Zap().Warn("store watch unavailable", zap.Error(err))
		}
		defer w.Stop()
	}

	p := tea.NewProgram(app,
		tea.WithAltScreen(),      // Use alternate screen buffer (like vim does)
		tea.WithMouseAllMotion(), // hover needs motion without a button held
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
