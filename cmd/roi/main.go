package main

import (
	"os"

	"github.com/ap-automation/roi-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewRoiCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRoiCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roi [flags] [options]",
		Short: "roi controls the invoice automation ROI planner.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdSimulate())
	cmd.AddCommand(cli.NewCmdSave())
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdExport())
	cmd.AddCommand(cli.NewCmdReport())

	return cmd
}
