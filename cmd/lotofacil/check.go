package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fystack/lotofacil-generator/internal/sampler"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		userID  string
		contest int
		limit   uint
		format  string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Score a user's saved games against a contest result.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			if root.cfg.Services.Database == nil {
				return errNoDatabase
			}
			a, err := newApp(cmd.Context(), root.cfg, appOptions{withDatabase: true})
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.service.Check(cmd.Context(), userID, contest, limit)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, report, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "contest %d: %d of %d saved games checked\n", report.Contest, len(report.Games), report.Total)
				fmt.Fprintln(tw, "GAME\tNUMBERS\tHITS")
				for _, c := range report.Games {
					var g sampler.Game
					copy(g[:], c.Numbers)
					fmt.Fprintf(tw, "%s\t%s\t%d\n", c.GameID, g, c.Hits)
				}
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User whose games are checked.")
	cmd.Flags().IntVar(&contest, "contest", 0, "Contest number.")
	cmd.Flags().UintVar(&limit, "limit", 100, "Most recent games to check.")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json or yaml.")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("contest")
	return cmd
}
