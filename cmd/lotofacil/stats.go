package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var (
		window int
		format string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how often each number was drawn.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), root.cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			freq, span, err := a.service.Frequencies(window)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, freq, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "contests %d..%d (%d draws)\n", span.First, span.Last, span.Draws)
				fmt.Fprintln(tw, "NUMBER\tCOUNT\tSHARE")
				for _, f := range freq {
					fmt.Fprintf(tw, "%02d\t%d\t%s\n", f.Number, f.Count, f.Share.StringFixed(2))
				}
			})
		},
	}
	cmd.Flags().IntVar(&window, "window", 0, "Use the last N draws; 0 means all.")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json or yaml.")
	return cmd
}
