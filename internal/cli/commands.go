package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgtop/cgtop/internal/errors"
)

// Root command flags
var (
	configFlag   string
	pathFlag     string
	intervalFlag string
	mockFlag     bool
	noWatchFlag  bool
	verboseFlag  bool
	initForce    bool
)

// rootCmd runs the dashboard. cgtop has no separate "run" subcommand;
// invoking the binary is the common case.
var rootCmd = &cobra.Command{
	Use:   "cgtop",
	Short: "Interactive cgroup v2 resource dashboard",
	Long: `cgtop is a terminal dashboard for the cgroup v2 hierarchy.

It samples memory, CPU, IO, and PID statistics for every cgroup under
the unified hierarchy and renders them as a navigable tree that refreshes
in place.

Examples:
  cgtop
  cgtop --interval 1s
  cgtop --path /sys/fs/cgroup/user.slice
  cgtop --mock`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd)
	},
}

// checkCmd reports whether the host can run the dashboard at all.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the host's cgroup setup",
	Long: `Inspect /proc/self/mountinfo and report which cgroup hierarchy
the host runs, where it is mounted, and whether the configured root is
readable.

Examples:
  cgtop check
  cgtop check --path /sys/fs/cgroup/user.slice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for cgtop.

Examples:
  # Bash
  cgtop completion bash > /etc/bash_completion.d/cgtop

  # Zsh
  cgtop completion zsh > "${fpath[1]}/_cgtop"

  # Fish
  cgtop completion fish > ~/.config/fish/completions/cgtop.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

// initCmd creates the global config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Create the global cgtop config file with interactive prompts.

The file lives at ~/.config/cgtop/config.yaml and holds the cgroup root,
sampling interval, and related settings. Every value can still be
overridden per run with flags or CGTOP_* environment variables.

Examples:
  cgtop init
  cgtop init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

func init() {
	// --config and --path apply to check as well, so they are persistent.
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/cgtop/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "cgroup hierarchy root to monitor")
	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g., 1s, 2s, 500ms)")
	rootCmd.Flags().BoolVar(&mockFlag, "mock", false, "render synthetic data instead of reading the hierarchy")
	rootCmd.Flags().BoolVar(&noWatchFlag, "no-watch", false, "disable the filesystem watcher")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug detail to the log file")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command. Errors are already formatted by the
// errors package, so they print as-is.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
