package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Report summarises one conversion run
type Report struct {
	RunID     string    `yaml:"runid"`
	Output    string    `yaml:"output"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished"`
	Total     int       `yaml:"total"`
	Succeeded int       `yaml:"succeeded"`
	Failed    int       `yaml:"failed"`
	Results   []Result  `yaml:"results"`
}

// Result is the outcome for a single gallery
type Result struct {
	ID       int64  `yaml:"id"`
	Title    string `yaml:"title,omitempty"`
	Language string `yaml:"language,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// Failures returns the results that carry an error
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Error != "" {
			failed = append(failed, res)
		}
	}
	return failed
}

// SaveToYAML writes the report to path, creating parent directories.
func (r *Report) SaveToYAML(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

// LoadReport reads a report written by SaveToYAML
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}

// PrintSummary writes a short human readable summary to w
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Conversion Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Run ID:      %s\n", r.RunID)
	fmt.Fprintf(w, "Output:      %s\n", r.Output)
	fmt.Fprintf(w, "Total:       %d\n", r.Total)
	fmt.Fprintf(w, "Succeeded:   %d\n", r.Succeeded)
	fmt.Fprintf(w, "Failed:      %d\n", r.Failed)
	fmt.Fprintf(w, "Elapsed:     %s\n", r.Finished.Sub(r.Started).Round(time.Millisecond))

	if failed := r.Failures(); len(failed) > 0 {
		fmt.Fprintln(w, "\nFailures:")
		for _, res := range failed {
			fmt.Fprintf(w, "  [%d] %s\n", res.ID, res.Error)
		}
	}
	fmt.Fprintln(w, "========================================")
}
