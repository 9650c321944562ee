package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Recompute and print the persisted leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			rewardsService, err := newRewardsService(store, opts.cfg)
			if err != nil {
				return err
			}

			out, err := rewardsService.RefreshLeaderboard(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Entries) == 0 {
				_, err = fmt.Fprintln(w, "Nenhum usuário pontuou ainda.")
				return err
			}

			for idx, entry := range out.Entries {
				if _, err := fmt.Fprintf(w, "#%d %s - %d pontos\n", idx+1, entry.UserID, entry.Points); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
