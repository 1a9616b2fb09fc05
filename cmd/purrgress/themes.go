package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/purrgress/purrgress/pkg/frames"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the installed themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		def := frames.DefaultTheme()
		for _, name := range frames.ThemeNames() {
			theme, ok := frames.GetTheme(name)
			if !ok {
				continue
			}
			marker := " "
			if name == def.Name {
				marker = "*"
			}
			kind := "flat faces"
			if theme.BigCat {
				kind = "big cat"
			}
			spec := theme.Spec()
			fmt.Fprintf(out, "%s %-10s %2d frames, cadence %d, %s\n",
				marker, name, len(spec.Frames), spec.Cadence, kind)
		}
		fmt.Fprintln(out, "\n* default")
		return nil
	},
}
