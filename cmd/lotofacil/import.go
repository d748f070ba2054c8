package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fystack/lotofacil-generator/pkg/common/logger"
	"github.com/fystack/lotofacil-generator/pkg/common/types"
	"github.com/fystack/lotofacil-generator/pkg/importer"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var (
		separator string
		prune     bool
	)
	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Load historical draws from a CSV file into the draw store.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			opts := importer.Options{}
			if separator != "" {
				opts.Comma = []rune(separator)[0]
			}
			records, parseErr := importer.ParseCSV(f, opts)
			var rowErrs *types.MultiError
			if parseErr != nil && !errors.As(parseErr, &rowErrs) {
				return parseErr
			}
			skipped := 0
			if rowErrs != nil {
				skipped = rowErrs.Len()
				for _, e := range rowErrs.Errors {
					logger.Warn("Skipped row", "err", e)
				}
			}

			a, err := newApp(cmd.Context(), root.cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			saved, err := a.draws.SaveMany(records)
			if err != nil {
				return fmt.Errorf("saved %d of %d draws: %w", saved, len(records), err)
			}
			removed := 0
			if prune {
				if removed, err = pruneMissing(a.draws, records); err != nil {
					return err
				}
			}
			logger.Info("Import finished", "file", args[0], "saved", saved, "skipped", skipped, "removed", removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&separator, "separator", "", "Field separator (default ',').")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete stored contests that are not in the file.")
	return cmd
}

// pruneMissing deletes stored contests absent from keep. An empty keep is
// refused so a bad file cannot wipe the history.
func pruneMissing(store drawstore.Store, keep []drawstore.Record) (int, error) {
	if len(keep) == 0 {
		return 0, errors.New("refusing to prune with no imported draws")
	}
	wanted := make(map[int]struct{}, len(keep))
	for _, r := range keep {
		wanted[r.Contest] = struct{}{}
	}
	stored, err := store.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, r := range stored {
		if _, ok := wanted[r.Contest]; ok {
			continue
		}
		if err := store.Delete(r.Contest); err != nil {
			return removed, fmt.Errorf("delete contest %d: %w", r.Contest, err)
		}
		removed++
	}
	return removed, nil
}
