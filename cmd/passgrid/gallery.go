package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"passgrid/pkg/gallery"
)

func newGalleryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "gallery",
		Short: "List saved grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			album, err := gallery.Open(e.cfg.Gallery.Dir)
			if err != nil {
				return err
			}
			assets, err := album.Assets()
			if err != nil {
				return err
			}
			if len(assets) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no grids saved in %s\n", album.Dir())
				return nil
			}
			t := plainTable("ID", "CREATED", "PATH")
			for _, a := range assets {
				t.Row(a.ID, a.Created.Local().Format(time.DateTime), album.Path(a))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
