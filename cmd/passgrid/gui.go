package main

import (
	"github.com/spf13/cobra"

	"passgrid/pkg/ui"
)

func newGUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(e.cfg)
			if err != nil {
				return err
			}
			e.log.Info("starting gui", "gallery", svc.album.Dir())
			return ui.Run(cmd.Context(), ui.Services{
				Loader:     svc.loader,
				Cropper:    svc.cropper,
				Rasterizer: svc.rasterizer,
				Gallery:    svc.album,
				Preview:    svc.preview,
				Editor:     svc.editor,
				Camera:     svc.camera,
				Log:        e.log,
			})
		},
	}
}
