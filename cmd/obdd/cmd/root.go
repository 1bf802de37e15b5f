// Package cmd implements the obdd CLI front-end, grounded on the
// cobra-based command layout in the junjiewwang-perf-analysis example's
// cmd/cli/cmd package (one rootCmd, one file per subcommand, flags bound in
// each subcommand's init). Every invocation builds a fresh Manager from
// --vars and the resolved configuration: the engine is an in-process,
// single-threaded library with no on-disk manager format (spec §5), so
// there is nothing for a CLI session to reattach to across invocations.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-formal/obdd"
	"github.com/go-formal/obdd/internal/cliconfig"
)

var (
	configPath string
	varsFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "obdd",
	Short: "Inspect and exercise a reduced ordered binary decision diagram manager",
	Long: `obdd is a command-line front-end over the obdd package: a reduced
ordered binary decision diagram engine with complemented edges, Rudell
sifting, and a symbolic computation layer. Each subcommand builds a fresh
Manager, declares the variables named by --vars, and exercises one part of
the manager surface.`,
}

// Execute runs the CLI, exiting the process with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an obdd config file (default: search ./obdd.yaml)")
	rootCmd.PersistentFlags().StringVar(&varsFlag, "vars", "", "comma-separated variable names to declare, in order")
}

// newManager builds a Manager from the resolved configuration with no
// variables pre-declared (obdd.New(0, ...)), then declares every name in
// --vars, in order, via Manager.Declare. Building with varnum 0 and
// declaring by name avoids ever going through New's default x0..xN naming,
// so the variable table only ever holds the names the caller asked for.
func newManager() (*obdd.Manager, error) {
	cfg, err := cliconfig.Load(configPath)
	if err != nil {
		return nil, err
	}
	m, err := obdd.New(0,
		obdd.Nodesize(cfg.Nodesize),
		obdd.Cachesize(max(cfg.Cachesize, 0)),
		obdd.Cacheratio(max(cfg.Cacheratio, 0)),
		obdd.Minfreenodes(cfg.Minfreenodes),
		obdd.MaxGrowth(cfg.MaxGrowth),
		obdd.Reordering(cfg.Reordering),
	)
	if err != nil {
		return nil, err
	}
	if cfg.Maxnodesize > 0 {
		m.Configure(obdd.Maxnodesize(cfg.Maxnodesize))
	}
	if cfg.Maxnodeincrease > 0 {
		m.Configure(obdd.Maxnodeincrease(cfg.Maxnodeincrease))
	}
	for _, name := range splitVars(varsFlag) {
		if _, err := m.Declare(name); err != nil {
			return nil, fmt.Errorf("declare %q: %w", name, err)
		}
	}
	return m, nil
}

func splitVars(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
