package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parallax-dev/parallax/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the workspace list whenever the workspace root changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "Quiet period before reprinting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	render := func() {
		fmt.Fprintf(out, "\n%s\n", time.Now().Format("15:04:05"))
		if err := printWorkspaces(out, a.Refresh(ctx).FilterWorkspaces("")); err != nil {
			logWarning("failed to print workspaces: %v", err)
		}
	}

	render()
	logInfo("Watching %s (Ctrl+C to stop)", a.Manager.Root())
	return watch.New(a.Manager.Root(), watchDebounce).Run(ctx, render)
}
