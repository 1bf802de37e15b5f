package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	reorderExpr   string
	reorderTarget string
	reorderPairs  string
)

var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Reorder variables to an explicit target order, or bring named pairs adjacent",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (reorderTarget == "") == (reorderPairs == "") {
			return fmt.Errorf("exactly one of --target or --pairs must be set")
		}
		m, _, err := buildFromFlag(reorderExpr)
		if err != nil {
			return err
		}
		if reorderTarget != "" {
			target, err := parseTarget(reorderTarget)
			if err != nil {
				return err
			}
			if err := m.Reorder(target); err != nil {
				return err
			}
		} else {
			pairs, err := parsePairs(reorderPairs)
			if err != nil {
				return err
			}
			if err := m.ReorderPairsAdjacent(pairs); err != nil {
				return err
			}
		}
		for level := int32(0); level < int32(m.Varnum()); level++ {
			name, err := m.VarAt(level)
			if err != nil {
				return err
			}
			fmt.Printf("level %d: %s\n", level, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reorderCmd)
	reorderCmd.Flags().StringVar(&reorderExpr, "expr", "", "Boolean expression to build before reordering")
	reorderCmd.Flags().StringVar(&reorderTarget, "target", "", "explicit target order, e.g. \"x=2,y=0,z=1\"")
	reorderCmd.Flags().StringVar(&reorderPairs, "pairs", "", "semicolon-separated variable pairs to bring adjacent, e.g. \"x,y;y,z\"")
	reorderCmd.MarkFlagRequired("expr")
}

func parseTarget(s string) (map[string]int32, error) {
	target := map[string]int32{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("bad target entry %q, want name=level", entry)
		}
		lvl, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("bad level in %q: %w", entry, err)
		}
		target[strings.TrimSpace(kv[0])] = int32(lvl)
	}
	return target, nil
}

func parsePairs(s string) ([][2]string, error) {
	var pairs [][2]string
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		nv := strings.SplitN(entry, ",", 2)
		if len(nv) != 2 {
			return nil, fmt.Errorf("bad pair entry %q, want name,name", entry)
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(nv[0]), strings.TrimSpace(nv[1])})
	}
	return pairs, nil
}
