package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/enex-migrate/internal/drive"
	"github.com/pdiddy/enex-migrate/internal/migrate"
	"github.com/pdiddy/enex-migrate/internal/runlog"
	"github.com/pdiddy/enex-migrate/pkg/types"
)

const (
	defaultInputDir  = "input_data"
	defaultOutputDir = "EverNote Notes"
	defaultLogFile   = "extraction_log.json"

	// credentialsSecret is the .secrets/ key holding the Drive
	// service-account JSON.
	credentialsSecret = "drive-credentials"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert export files into a PDF tree and upload it",
	Long: `Migrate scans the input directory for .enex export files, converts each
notebook into a directory of PDFs and original-format attachments, writes the
JSON run log and a YAML run summary, and mirrors the output tree into Google
Drive unless --dry-run is given.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringP("output-directory", "o", "", "directory for converted notes (default \""+defaultOutputDir+"\")")
	migrateCmd.Flags().String("input-directory", "", "directory scanned for .enex files (default \""+defaultInputDir+"\")")
	migrateCmd.Flags().String("log-file", "", "path of the JSON run log (default \""+defaultLogFile+"\")")
	migrateCmd.Flags().BoolP("dry-run", "d", false, "process files without uploading to Google Drive")
	migrateCmd.Flags().Bool("no-serial", false, "preserve original filenames without the identifier prefix")
	migrateCmd.Flags().String("credentials", "", "path to a Google service-account JSON key (default: drive-credentials secret)")
	migrateCmd.Flags().String("parent-folder", "", "Drive folder ID the uploaded tree is created under (default: Drive root)")

	rootCmd.AddCommand(migrateCmd)
}

// stringSetting resolves a flag value, falling back to the config file and
// then to the built-in default.
func stringSetting(cmd *cobra.Command, flag, configKey, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(configKey); v != "" {
		return v
	}
	return fallback
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	preserve, _ := cmd.Flags().GetBool("no-serial")

	cfg := types.MigrationConfig{
		InputDir:          stringSetting(cmd, "input-directory", "migration.input_dir", defaultInputDir),
		OutputDir:         stringSetting(cmd, "output-directory", "migration.output_dir", defaultOutputDir),
		LogFile:           stringSetting(cmd, "log-file", "migration.log_file", defaultLogFile),
		PreserveFilenames: preserve || viper.GetBool("migration.preserve_filenames"),
		DryRun:            dryRun,
	}

	fmt.Fprintf(os.Stdout, "Processing notes into: %s\n", cfg.OutputDir)
	if cfg.DryRun {
		fmt.Fprintln(os.Stdout, "Dry run mode enabled, Google Drive syncing will be skipped.")
	}

	log := runlog.Load(cfg.LogFile)

	result, err := migrate.Run(cfg, log, os.Stdout)
	if err != nil {
		return err
	}

	if err := log.Save(cfg.LogFile); err != nil {
		return err
	}
	if err := runlog.WriteSummary(log.Summarize(), summaryPath(cfg.LogFile)); err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Fprintln(os.Stdout, "Dry run complete. No files were uploaded.")
	} else {
		credentialsFile, _ := cmd.Flags().GetString("credentials")
		parent, _ := cmd.Flags().GetString("parent-folder")
		if parent == "" {
			parent = secretDefault("drive-parent-folder", viper.GetString("upload.parent_folder_id"))
		}
		if err := uploadTree(cmd.Context(), cfg.OutputDir, credentialsFile, parent); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d operation(s) failed during migration", result.Failed)
	}
	return nil
}

// summaryPath derives the YAML summary path from the JSON log path.
func summaryPath(logFile string) string {
	return strings.TrimSuffix(logFile, ".json") + "-summary.yaml"
}

// loadCredentials resolves the Drive credential: an explicit key file when
// given, the drive-credentials secret otherwise. A missing credential aborts
// the run.
func loadCredentials(credentialsFile string) ([]byte, error) {
	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file: %w", err)
		}
		return data, nil
	}
	if v := secretDefault(credentialsSecret, ""); v != "" {
		return []byte(v), nil
	}
	return nil, fmt.Errorf("no Google Drive credentials: create .secrets/%s or pass --credentials", credentialsSecret)
}

// uploadTree authenticates and mirrors localDir into Drive.
func uploadTree(ctx context.Context, localDir, credentialsFile, parentID string) error {
	credentials, err := loadCredentials(credentialsFile)
	if err != nil {
		return err
	}

	client, err := drive.NewClient(ctx, credentials, os.Stdout)
	if err != nil {
		return err
	}
	return client.UploadDirectory(ctx, localDir, parentID)
}
