package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var siftExpr string
var siftVar string

var siftCmd = &cobra.Command{
	Use:   "sift",
	Short: "Run Rudell sifting and report the live node count before and after",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := buildFromFlag(siftExpr)
		if err != nil {
			return err
		}
		before := m.Statistics()
		if siftVar != "" {
			if err := m.Sift(siftVar); err != nil {
				return err
			}
		} else {
			if err := m.ReorderBySifting(); err != nil {
				return err
			}
		}
		after := m.Statistics()
		fmt.Println("before:")
		fmt.Print(before)
		fmt.Println("after:")
		fmt.Print(after)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(siftCmd)
	siftCmd.Flags().StringVar(&siftExpr, "expr", "", "Boolean expression to build before sifting")
	siftCmd.Flags().StringVar(&siftVar, "var", "", "sift a single named variable instead of every declared variable")
	siftCmd.MarkFlagRequired("expr")
}
