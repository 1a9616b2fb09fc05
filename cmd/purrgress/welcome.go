package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/purrgress/purrgress/pkg/anim"
)

var welcomeCmd = &cobra.Command{
	Use:   "welcome",
	Short: "Play the wake-up animation",
	Long: `Plays the short sequence where the cat wakes up, stretches and reports
ready. Set PURRGRESS_ANIMATION=false to suppress it.`,
	Run: func(cmd *cobra.Command, args []string) {
		anim.Welcome(anim.WithWriter(cmd.OutOrStdout()))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "🐱 purrgress loaded!")
		fmt.Fprintf(out, "   Version: %s\n", getVersion())
		fmt.Fprintln(out, "   Status:  Ready to use! 🚀")
	},
}
