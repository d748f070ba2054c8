package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProfileCmd(root *rootOptions) *cobra.Command {
	var (
		windows []int
		topN    int
		format  string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the most frequent signature buckets for one or more windows.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			if len(windows) == 0 {
				windows = []int{root.cfg.Generator.Defaults.Window}
			}
			if topN == 0 {
				topN = root.cfg.Generator.Defaults.TopN
			}

			a, err := newApp(cmd.Context(), root.cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			profiles, err := a.service.Profiles(cmd.Context(), lo.Uniq(windows), topN)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, profiles, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "WINDOW\tDRAWS\tTOP GAPS\tTOP STDS")
				for _, p := range profiles {
					fmt.Fprintf(tw, "[%d,%d)\t%d\t%s\t%s\n",
						p.Window.Start, p.Window.End, p.Draws, joinDecimals(p.TopGaps), joinDecimals(p.TopStds))
				}
			})
		},
	}
	cmd.Flags().IntSliceVar(&windows, "window", nil, "Window size in draws; repeatable.")
	cmd.Flags().IntVar(&topN, "top", 0, "Buckets to keep per metric (default from config).")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json or yaml.")
	return cmd
}

func joinDecimals(values []decimal.Decimal) string {
	return strings.Join(lo.Map(values, func(d decimal.Decimal, _ int) string {
		return d.StringFixed(1)
	}), " ")
}
