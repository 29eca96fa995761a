package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskmanager/internal/profiles"
)

func newNormalizeAvatarsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-avatars",
		Short: "Shrink every stored profile avatar into the 100x100 box",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.store.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			svc := profiles.NewService(a.store, a.media, a.logger)
			failed := 0
			for i := range list {
				if err := svc.NormalizeAvatar(&list[i]); err != nil {
					failed++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked %d profiles, %d failed\n", len(list), failed)
			if failed > 0 {
				return fmt.Errorf("%d avatars could not be normalized", failed)
			}
			return nil
		},
	}
}
