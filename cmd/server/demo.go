package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"toastd/domain/toasts"
	"toastd/interfaces/console"
	"toastd/logging"
	"toastd/platform/clock"
)

var demoDuration time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a scripted toast lifecycle in the terminal",
	Long: `Spawns one toast per variant on the real clock, hovers over one,
dismisses another, and exits once every toast has been removed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runDemo(ctx, cmd, clock.Real(), demoDuration)
	},
}

func init() {
	demoCmd.Flags().DurationVar(&demoDuration, "duration", 2*time.Second, "Countdown of each demo toast")
}

// runDemo drives the manager with the console renderer. Each step waits on
// the supplied clock, so a simulated clock can fast-forward it.
func runDemo(ctx context.Context, cmd *cobra.Command, clk clock.Clock, d time.Duration) error {
	logging.SetDefault(logging.Discard())

	renderer := console.NewRenderer(cmd.OutOrStdout())
	manager := toasts.NewManager(clk, renderer, nil)
	defer manager.Close()

	defaults := toasts.BuiltinDefaults()
	var spawned []toasts.Instance
	for _, variant := range toasts.Variants {
		req := defaults.Request()
		req.Variant = variant
		req.Duration = d
		req.Title = fmt.Sprintf("%s toast", variant)
		spawned = append(spawned, manager.Spawn(req))
	}

	hovered, dismissed := spawned[1].ID, spawned[2].ID

	steps := []struct {
		after time.Duration
		run   func()
	}{
		{d / 4, func() { manager.HandleSignal(hovered, toasts.SignalPointerEnter) }},
		{d / 4, func() { manager.HandleSignal(dismissed, toasts.SignalDismissRequested) }},
		{d / 2, func() { manager.HandleSignal(hovered, toasts.SignalPointerLeave) }},
	}
	for _, step := range steps {
		if err := sleep(ctx, clk, step.after); err != nil {
			return err
		}
		step.run()
	}

	for len(manager.Active()) > 0 {
		if err := sleep(ctx, clk, toasts.ExitGracePeriod); err != nil {
			return err
		}
	}

	cmd.Println("all toasts removed")
	return nil
}

func sleep(ctx context.Context, clk clock.Clock, d time.Duration) error {
	done := make(chan struct{})
	t := clk.AfterFunc(d, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}
