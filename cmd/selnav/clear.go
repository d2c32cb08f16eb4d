package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/selnav/internal/history"
)

func newClearCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the saved selection history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*f)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			// Read first so an unreadable file is reported, not overwritten.
			refs, err := st.Load()
			if err != nil {
				return err
			}
			if err := st.Save([]history.Ref{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d selections from %s\n", len(refs), cfg.History.Store)
			return nil
		},
	}
}
