package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"passgrid/pkg/acquire"
	"passgrid/pkg/applog"
	"passgrid/pkg/flow"
	"passgrid/pkg/layout"
	"passgrid/pkg/permission"
)

var errNoImage = errors.New("no image chosen")

func newComposeCmd(e *env) *cobra.Command {
	var (
		doCrop     bool
		layoutName string
		useCamera  bool
	)

	cmd := &cobra.Command{
		Use:   "compose [image]",
		Short: "Build a photo grid without the desktop app",
		Long: `Runs the three steps headlessly: acquire the image (a path, file:// or
http(s) URL, or the configured camera command), optionally crop it to
1000x1333, then tile it into the chosen layout and save it to the gallery.`,
		Example: `  # 3x4 sheet from a local photo
  passgrid compose me.jpg

  # cropped 2x3 sheet from the camera
  passgrid compose --camera --crop --layout 2x3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if layoutName == "" {
				layoutName = e.cfg.Grid.Layout
			}
			l, err := layout.Parse(layoutName)
			if err != nil {
				return err
			}
			if !useCamera && len(args) == 0 {
				return fmt.Errorf("%w: pass an image or --camera", errNoImage)
			}
			perms, err := permission.ParsePolicy(e.cfg.Permissions.Grant)
			if err != nil {
				return fmt.Errorf("permissions.grant: %w", err)
			}
			svc, err := newServices(e.cfg)
			if err != nil {
				return err
			}

			var library acquire.Picker
			if len(args) == 1 {
				library = acquire.WithEditing(acquire.PathPicker{Path: args[0]}, svc.editor)
			}
			var camera acquire.Picker
			if svc.camera != nil {
				camera = acquire.WithEditing(svc.camera, svc.editor)
			}

			alerts := flow.AlertFunc(func(title, message string) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", title, message)
			})
			ctrl := flow.NewController()
			acq := flow.NewAcquisitionScreen(flow.AcquisitionDeps{
				Permissions: perms,
				Library:     library,
				Camera:      camera,
				Nav:         ctrl,
				Alerts:      alerts,
				Log:         applog.WithComponent(e.log, "acquisition"),
			})
			edit := flow.NewEditScreen(flow.EditDeps{
				Cropper: svc.cropper,
				Nav:     ctrl,
				Alerts:  alerts,
				Log:     applog.WithComponent(e.log, "edit"),
			})
			grid := flow.NewGridScreen(flow.GridDeps{
				Permissions: perms,
				Rasterizer:  svc.rasterizer,
				Gallery:     svc.album,
				Alerts:      alerts,
				Log:         applog.WithComponent(e.log, "grid"),
			})
			ctrl.OnEnter(func(s flow.Screen, h flow.Handoff) {
				switch s {
				case flow.ScreenEdit:
					edit.Enter(h)
				case flow.ScreenGrid:
					grid.Enter(h)
				}
			})

			ctx := cmd.Context()
			picked := acq.PickFromLibrary
			if useCamera {
				picked = acq.CaptureFromCamera
			}
			if r := picked(ctx); !r.OK() {
				if r.IsCancelled() {
					return errNoImage
				}
				return r.Err
			}

			if doCrop {
				if r := edit.Crop(ctx); !r.OK() {
					if r.IsCancelled() {
						return ctx.Err()
					}
					return r.Err
				}
			}
			if err := edit.ProceedToGrid(); err != nil {
				return err
			}
			if err := grid.SelectLayout(l); err != nil {
				return err
			}

			saved := grid.Save(ctx)
			asset, err := saved.Unwrap()
			if err != nil {
				return err
			}
			e.log.Debug("compose finished", slog.String("asset", asset.ID), slog.String("layout", l.String()))
			fmt.Fprintln(cmd.OutOrStdout(), svc.album.Path(asset))
			return nil
		},
	}

	cmd.Flags().BoolVar(&doCrop, "crop", false, "crop to the 1000x1333 passport rectangle before tiling")
	cmd.Flags().StringVarP(&layoutName, "layout", "l", "", "grid layout: 3x4 or 2x3 (default from grid.layout)")
	cmd.Flags().BoolVar(&useCamera, "camera", false, "capture with camera.command instead of reading an image")
	return cmd
}
