package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/note2tabs/note2tabsWeb-sub001/codec"
	"github.com/note2tabs/note2tabsWeb-sub001/lane"
	"github.com/note2tabs/note2tabsWeb-sub001/render"
)

var transcribeBarsPerRow int

func init() {
	transcribeCmd.Flags().IntVar(&transcribeBarsPerRow, "bars-per-row", 0, "bars per rendered row")
	rootCmd.AddCommand(transcribeCmd)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [midi file]",
	Short: "Renders a midi file as tab text",
	Long:  `Renders a midi file as tab text`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transcribe(args[0])
	},
}

func transcribe(path string) {
	s, err := codec.ReadSMFFile(path)
	if err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return
	}
	l := lane.New("Track 1", 0)
	stamps := codec.FromSMF(s, l.Fps)
	codec.Import(&l, stamps, false)
	fmt.Print(render.Render(&l, transcribeBarsPerRow))
}
