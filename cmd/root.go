package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "note2tabs",
	Short: "Guitar tablature timeline engine",
	Long:  `Guitar tablature timeline engine: edits multi-track tab over a frame-quantized timeline.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
