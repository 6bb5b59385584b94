package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/brandmatch/internal/model"
)

type excludeFilter struct {
	entries  []string
	disabled string
}

// NewExclude creates a filter that removes candidates whose name or handle
// matches one of the configured entries. Matching ignores case and a
// leading "@" on handles.
func NewExclude(entries []string) Filter {
	f := &excludeFilter{}
	for _, e := range entries {
		if norm := normalizeIdentity(e); norm != "" {
			f.entries = append(f.entries, norm)
		}
	}
	return f
}

func (f *excludeFilter) Name() string { return "exclude" }

func (f *excludeFilter) Disable(reason string) {
	if reason == "" {
		reason = "disabled"
	}
	f.disabled = reason
}

func (f *excludeFilter) IsEnabled() bool { return f.disabled == "" }

func (f *excludeFilter) Apply(_ context.Context, deps Deps, candidates []model.Profile) ([]model.Profile, Step, error) {
	initial := len(candidates)
	if len(f.entries) == 0 {
		return candidates, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept, dropped := keep(candidates, func(p model.Profile) bool {
		return !matchesAny(p, f.entries)
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates by name or handle",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *excludeFilter) Status() Status {
	details := map[string]string{}
	if len(f.entries) > 0 {
		details["entries"] = strings.Join(f.entries, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.disabled, Details: details}
}

func normalizeIdentity(s string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "@")
}

func matchesAny(p model.Profile, entries []string) bool {
	name := normalizeIdentity(p.Name)
	handle := normalizeIdentity(p.Handle)
	for _, e := range entries {
		if e == name || (handle != "" && e == handle) {
			return true
		}
	}
	return false
}
