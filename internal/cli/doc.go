// Package cli implements the cgtop command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a workflow function for the actual work:
//
//	cgtop               - Run the dashboard (the default command)
//	cgtop init          - Create a config file interactively
//	cgtop check         - Report the host's cgroup setup
//	cgtop version       - Print version information
//	cgtop completion    - Generate shell completion scripts
//
// # Flag Handling
//
// Dashboard flags (--config, --path, --interval, --mock, --no-watch,
// --verbose) are defined on the root command. Flags override config file
// values, which in turn override built-in defaults; environment variables
// with the CGTOP_ prefix sit between the file and the flags.
//
// # Dashboard Wiring
//
// The root command builds the pipeline in order: config, file logger,
// collector, bus, orchestrator, model. The orchestrator produces events
// into the bus from background goroutines; the Bubble Tea model consumes
// them. Shutdown runs the same order in reverse, with Stop joining every
// producer before the bus closes.
package cli
