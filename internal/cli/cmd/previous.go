package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyframe/pyframe/internal/ipc"
)

func NewPreviousCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "previous",
		Short: "Switch back to the previously shown image",
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendPrevious(); err != nil {
				log.Fatalf("Failed to send 'previous' command: %v", err)
			}
			log.Info("Previous image command sent")
		},
	}
}
