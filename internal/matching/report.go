package matching

import (
	"encoding/json"
	"os"

	"github.com/spigell/brandmatch/internal/model"
)

// DumpToTmpFile writes the response as indented JSON to a new temp file and
// returns its name.
func (r *Response) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// GeneratedCount returns how many messages came from the generative model.
func (r *Response) GeneratedCount() int {
	count := 0
	for _, m := range r.Matches {
		if m.Outreach.Source == model.SourceGenerated {
			count++
		}
	}
	return count
}
