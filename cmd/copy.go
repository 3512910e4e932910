package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fileCmd copies a single file.
var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Copy a single file to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		// Results are reported by the service; a failed copy is not a CLI error.
		if _, err := svc.CopyFile(cmd.Context(), args[0]); err != nil {
			logger.Debug("Copy did not complete", zap.String("path", args[0]), zap.Error(err))
		}
		return nil
	},
}

// folderCmd copies every selectable file beneath a folder.
var folderCmd = &cobra.Command{
	Use:   "folder <path>",
	Short: "Copy the files of a folder to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		if _, err := svc.CopyFolder(cmd.Context(), args[0]); err != nil {
			logger.Debug("Copy did not complete", zap.String("path", args[0]), zap.Error(err))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(fileCmd, folderCmd)
}
