package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"passgrid/pkg/applog"
	"passgrid/pkg/config"
)

// env is resolved once per invocation by the root pre-run.
type env struct {
	cfgPath string
	cfg     config.Config
	log     *slog.Logger
}

func NewRootCmd() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:   "passgrid",
		Short: "Turn a portrait photo into a printable passport photo sheet",
		Long: `PassGrid takes one portrait photo through three steps: pick or capture it,
optionally crop it to passport size, and tile it into a 3x4 or 2x3 grid that is
saved to the gallery as a single JPEG.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load(e.cfgPath)
			if err != nil {
				return err
			}
			log, err := applog.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("configuring logger: %w", err)
			}
			slog.SetDefault(log)
			e.cfg, e.log = cfg, log
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&e.cfgPath, "config", "", "config file (default ./passgrid.yaml or $HOME/.config/passgrid/passgrid.yaml)")

	cmd.AddCommand(
		newGUICmd(e),
		newComposeCmd(e),
		newLayoutsCmd(),
		newGalleryCmd(e),
	)
	return cmd
}
