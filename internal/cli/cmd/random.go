package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyframe/pyframe/internal/ipc"
)

func NewRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Jump to a random image",
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendRandom(); err != nil {
				log.Fatalf("Failed to send 'random' command: %v", err)
			}
			log.Info("Random image command sent")
		},
	}
}
