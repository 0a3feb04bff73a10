package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toastd",
	Short: "Toast notification lifecycle server",
	Long: `toastd spawns toast notifications and manages their lifecycle:
auto-dismiss countdowns, hover pause and resume, manual dismissal and
removal after the exit transition.

  toastd serve   Run the HTTP server (default)
  toastd demo    Play a scripted lifecycle in the terminal`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		demoCmd,
		versionCmd,
	)
}
