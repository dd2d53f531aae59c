package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry describes one produced topoplot in the output manifest.
type ManifestEntry struct {
	Name    string `json:"name"`
	Output  string `json:"output"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// WriteManifest writes a JSON index of batch results.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:    r.Name,
			Output:  r.Output,
			Success: r.Success,
			Error:   r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
