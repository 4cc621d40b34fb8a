package types

// MigrationConfig holds settings for the migration stage.
type MigrationConfig struct {
	// InputDir is the directory scanned for .enex export files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the root of the produced directory tree, one
	// subdirectory per notebook.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// LogFile is the path of the durable JSON run log.
	LogFile string `json:"log_file" yaml:"log_file"`

	// PreserveFilenames suppresses the identifier prefix on every
	// artifact filename when true.
	PreserveFilenames bool `json:"preserve_filenames" yaml:"preserve_filenames"`

	// DryRun skips the upload collaborator entirely when true.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// UploadConfig holds settings for the upload stage.
type UploadConfig struct {
	// CredentialsFile is the path to a Google service-account JSON key.
	// When empty, the "drive-credentials" secret is used instead.
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`

	// ParentFolderID is the Drive folder the tree is created under.
	// Empty means the Drive root.
	ParentFolderID string `json:"parent_folder_id,omitempty" yaml:"parent_folder_id,omitempty"`
}

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// LogFile is the JSON run log the report is built from.
	LogFile string `json:"log_file" yaml:"log_file"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Migration MigrationConfig `json:"migration" yaml:"migration"`
	Upload    UploadConfig    `json:"upload" yaml:"upload"`
	Report    ReportConfig    `json:"report" yaml:"report"`
}
