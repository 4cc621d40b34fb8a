package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [directory]",
	Short: "Mirror an existing output tree into Google Drive",
	Long: `Upload recreates a local directory's folder and file structure in Google
Drive, preserving names and nesting. Use it to re-run the upload step of a
migration that was performed with --dry-run.`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().String("credentials", "", "path to a Google service-account JSON key (default: drive-credentials secret)")
	uploadCmd.Flags().String("parent-folder", "", "Drive folder ID the uploaded tree is created under (default: Drive root)")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	localDir := defaultOutputDir
	if len(args) > 1 {
		return fmt.Errorf("provide at most one directory to upload")
	}
	if len(args) == 1 {
		localDir = args[0]
	}

	if info, err := os.Stat(localDir); err != nil || !info.IsDir() {
		return fmt.Errorf("directory %s does not exist", localDir)
	}

	credentialsFile, _ := cmd.Flags().GetString("credentials")
	parent, _ := cmd.Flags().GetString("parent-folder")
	if parent == "" {
		parent = secretDefault("drive-parent-folder", viper.GetString("upload.parent_folder_id"))
	}

	return uploadTree(cmd.Context(), localDir, credentialsFile, parent)
}
