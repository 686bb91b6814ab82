package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/greaheisl/relaybox/internal/production"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [state...]",
	Short: "Export the button state machines as a Graphviz graph",
	Long: `Outputs Graphviz DOT source for the button processor and the hold checker.
States given as arguments (e.g. SomeButtons HoldPending) are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		g := production.ButtonGraph()

		var known []string
		for _, c := range g.Clusters {
			for _, n := range c.Nodes {
				known = append(known, n.ID)
			}
		}
		for _, a := range args {
			if !slices.Contains(known, a) {
				return fmt.Errorf("unknown state %q (known: %v)", a, known)
			}
		}

		v := &production.DefaultVisualizer{}
		if asJSON {
			data, err := v.ExportJSON(g)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), v.ExportDOT(g, args...))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Bool("json", false, "Output the graph as JSON instead of DOT")
}
