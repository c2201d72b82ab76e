package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cgtop/cgtop/internal/cgroup"
	"github.com/cgtop/cgtop/internal/config"
	"github.com/cgtop/cgtop/internal/errors"
	"github.com/cgtop/cgtop/internal/events"
	"github.com/cgtop/cgtop/internal/logger"
	"github.com/cgtop/cgtop/internal/monitor"
)

// dashboardCommand wires the pipeline and runs the TUI until the user
// quits: config, file logger, collector, bus, orchestrator, model.
func dashboardCommand(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerm,
			"cgtop needs an interactive terminal",
			"Run it from a TTY; the dashboard cannot be piped or redirected.")
	}

	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cfg, cmd); err != nil {
		return err
	}

	// The dashboard owns the terminal, so logging goes to a file.
	log, logPath, err := logger.OpenLogFile(cfg.Verbose)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to open the log file",
			"Check permissions on /var/log and ~/.local/state.")
	}
	defer log.Close()
	logger.SetDefault(log)
	log.Info("starting root=%s interval=%s mock=%v log=%s",
		cfg.Root, cfg.Interval, cfg.Mock, logPath)

	if !cfg.Mock {
		if v, detail, err := cgroup.DetectVersion(); err == nil && v != cgroup.V2 && v != cgroup.Hybrid {
			log.Warn("no unified hierarchy detected (%s); sampling will likely fall back to synthetic data", detail)
		}
	}

	collector := cgroup.NewCollector(cfg.Root, log)
	bus := events.NewBus[events.Event]()
	orch := events.NewOrchestrator(bus, collector, events.Options{
		Interval:        cfg.Interval,
		CleanupInterval: cfg.CleanupInterval,
		Retention:       cfg.Retention,
		Mock:            cfg.Mock,
		Watch:           cfg.Watch,
	}, log)

	model := monitor.NewModel(bus, cfg.Root, orch.Nudge, log)

	orch.Start()
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	// Graceful shutdown: join every producer before the bus closes.
	orch.Stop()
	log.Info("exiting")

	if runErr != nil {
		return errors.WrapWithCode(runErr, errors.ErrTerm,
			"Dashboard exited with an error",
			"Check "+logPath+" for details.")
	}
	return nil
}

// applyFlagOverrides layers explicitly-set flags over the loaded config.
// Unset flags leave the file and environment values alone.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) error {
	if cmd.Flags().Changed("path") {
		cfg.Root = pathFlag
	}
	if cmd.Flags().Changed("interval") {
		d, err := time.ParseDuration(intervalFlag)
		if err != nil || d <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid interval", intervalFlag),
				"Try something like 1s, 2s, or 500ms.")
		}
		cfg.Interval = d
	}
	if cmd.Flags().Changed("mock") {
		cfg.Mock = mockFlag
	}
	if cmd.Flags().Changed("no-watch") {
		cfg.Watch = !noWatchFlag
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verboseFlag
	}
	return nil
}
