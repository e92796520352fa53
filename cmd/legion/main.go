package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/spf13/cobra"
)

func main() {
	var o options

	cmd := &cobra.Command{
		Use:   "legion",
		Short: "Camera simulation with a world-to-screen entity overlay",
		Long: `Runs a level with a free-flying camera and draws boxes, lines and labels over
hostile entities.

Keys:
  W / Up      move forward while held
  S / Down    move back while held
  E           toggle the overlay (cl_esp)
  B           toggle boxes (cl_esp_box)
  L           toggle lines (cl_esp_line)
  R           switch the world view between fullscreen and an inset rectangle
  Esc         quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringArrayVar(&o.sets, "set", nil, "Set a variable, e.g. --set cl_esp=1 (repeatable)")
	cmd.Flags().BoolVar(&o.headless, "headless", false, "Render without a window or GPU")
	cmd.Flags().IntVar(&o.frames, "frames", 0, "Stop after this many frames (0 runs until interrupted)")
	cmd.Flags().Float32Var(&o.dt, "dt", 1.0/60, "Fixed frame time in seconds used with --frames")
	cmd.Flags().StringVar(&o.terrain, "terrain", "", "Heightmap image for the level terrain")
	cmd.Flags().BoolVar(&o.profile, "profile", false, "Log frame statistics every second")

	varsCmd := &cobra.Command{
		Use:   "vars",
		Short: "List configuration variables and their current values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(o)
			if err != nil {
				return err
			}
			for _, name := range config.Names() {
				value, _ := store.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, value)
			}
			return nil
		},
	}
	cmd.AddCommand(varsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("legion: %v", err)
	}
}
