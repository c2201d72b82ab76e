package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/cgtop/cgtop/internal/config"
	"github.com/cgtop/cgtop/internal/errors"
	"github.com/cgtop/cgtop/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Destination config file; "" means the global location
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// Init creates a cgtop config file.
func Init(opts InitOptions) error {
	configPath := opts.Path
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	if configPath == "" {
		return errors.New(errors.ErrConfig,
			"Cannot determine the config location",
			"Set HOME, or pass an explicit path with --config.")
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		root := cfg.Root
		interval := cfg.Interval.String()
		watch := cfg.Watch

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cgroup root").
					Description("The hierarchy subtree to monitor").
					Placeholder(cfg.Root).
					Value(&root).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("cgroup root is required")
						}
						if !strings.HasPrefix(s, "/") {
							return fmt.Errorf("cgroup root must be an absolute path")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Sampling interval").
					Description("How often to re-read the hierarchy").
					Placeholder("2s").
					Value(&interval).
					Validate(func(s string) error {
						d, err := time.ParseDuration(s)
						if err != nil {
							return fmt.Errorf("use a duration like 1s, 2s, or 500ms")
						}
						if d <= 0 {
							return fmt.Errorf("interval must be positive")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Watch for cgroup churn?").
					Description("Resample early when cgroups appear or disappear").
					Value(&watch),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility, or edit the file by hand.")
		}

		cfg.Root = root
		cfg.Interval, _ = time.ParseDuration(interval)
		cfg.Watch = watch
	}

	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  cgtop          - run the dashboard")
	fmt.Println("  cgtop check    - verify the host's cgroup setup")

	return nil
}

// initCommand is the implementation called by the cobra command. Prompts
// are skipped when stdin is not a terminal.
func initCommand(force bool) error {
	return Init(InitOptions{
		Path:           configFlag,
		Overwrite:      force,
		NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
	})
}
