package runlog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// NotebookSummary holds per-notebook outcome counts.
type NotebookSummary struct {
	// Records is the total number of outcome records.
	Records int `yaml:"records" json:"records"`

	// Succeeded counts records with success=true.
	Succeeded int `yaml:"succeeded" json:"succeeded"`

	// Failed counts records with success=false.
	Failed int `yaml:"failed" json:"failed"`
}

// Summary aggregates a run log into per-notebook counts.
type Summary struct {
	Notebooks map[string]NotebookSummary `yaml:"notebooks" json:"notebooks"`
	Warnings  int                        `yaml:"warnings" json:"warnings"`
}

// Summarize computes outcome counts for every notebook in the log.
func (l *Log) Summarize() Summary {
	s := Summary{
		Notebooks: make(map[string]NotebookSummary, len(l.notebooks)),
		Warnings:  len(l.warnings),
	}
	for name, records := range l.notebooks {
		var ns NotebookSummary
		for _, r := range records {
			ns.Records++
			if r.Success {
				ns.Succeeded++
			} else {
				ns.Failed++
			}
		}
		s.Notebooks[name] = ns
	}
	return s
}

// WriteSummary writes the summary as YAML to path.
func WriteSummary(s Summary, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}
