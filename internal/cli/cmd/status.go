package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyframe/pyframe/internal/cli/cmd/utils"
	"github.com/pyframe/pyframe/internal/ipc"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get pyframe status",
		Long:  `Returns the current status of the running pyframe process.`,
		Run: func(cmd *cobra.Command, args []string) {
			response, err := ipc.SendStatus()
			if err != nil {
				log.Errorf("Error fetching status: %v", err)
				return
			}

			utils.PrintJSONColored(response)
		},
	}
}
