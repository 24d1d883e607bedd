package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "massing",
		Short:        "Box massing editor: snapping, stacking and camera framing",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(boundsCmd())
	rootCmd.AddCommand(stackCmd())
	rootCmd.AddCommand(fitCmd())
	rootCmd.AddCommand(sceneCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a scene project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func boundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds [project-path]",
		Short: "Print the world bounds of every box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBounds(cmd.OutOrStdout(), args[0])
		},
	}
}

func stackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stack [project-path] [box-id]",
		Short: "Resolve where a box comes to rest when placed on top",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStack(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func fitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit [project-path]",
		Short: "Frame the whole scene with the project camera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.OutOrStdout(), args[0])
		},
	}
}

func sceneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scene [project-path]",
		Short: "Assemble the scene graph and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd.OutOrStdout(), args[0])
		},
	}
}

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [project-path]",
		Short: "Print the top-down footprint plan as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.OutOrStdout(), args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server over the editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], opts)
		},
	}

	port, err := strconv.Atoi(getEnv("MASSING_PORT", "3000"))
	if err != nil {
		port = 3000
	}
	cmd.Flags().IntVarP(&opts.port, "port", "p", port, "HTTP server port (env MASSING_PORT)")
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "frame rate for coalesced rotation commits")
	cmd.Flags().StringVar(&opts.mode, "coalesce", "latest", "rotation coalescing: latest or first")
	cmd.Flags().StringVar(&opts.eventDir, "event-dir", getEnv("MASSING_EVENT_DIR", ""), "write events as zstd JSONL under this directory (env MASSING_EVENT_DIR)")
	return cmd
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
