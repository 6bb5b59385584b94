package filtering

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/brandmatch/internal/model"
)

type excludeFileFilter struct {
	path     string
	disabled string
}

// NewExcludeFile creates a filter that removes candidates listed in a JSON
// exclude file. The file holds an array of names or handles.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: strings.TrimSpace(path)}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(reason string) {
	if reason == "" {
		reason = "disabled"
	}
	f.disabled = reason
}

func (f *excludeFileFilter) IsEnabled() bool { return f.disabled == "" }

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, candidates []model.Profile) ([]model.Profile, Step, error) {
	initial := len(candidates)
	if f.path == "" {
		return candidates, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	entries, err := readExcludeFile(f.path)
	if err != nil {
		return candidates, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	normalized := make([]string, 0, len(entries))
	for _, e := range entries {
		if norm := normalizeIdentity(e); norm != "" {
			normalized = append(normalized, norm)
		}
	}

	kept, dropped := keep(candidates, func(p model.Profile) bool {
		return !matchesAny(p, normalized)
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.disabled, Details: details}
}

func readExcludeFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return nil, nil
	}

	var entries []string
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
