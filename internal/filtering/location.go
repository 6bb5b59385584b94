package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/brandmatch/internal/model"
)

type locationFilter struct {
	location string
	disabled string
}

// NewLocation creates a filter that keeps candidates located in the given
// place. Candidates without a location are kept.
func NewLocation(location string) Filter {
	return &locationFilter{location: strings.ToLower(strings.TrimSpace(location))}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Disable(reason string) {
	if reason == "" {
		reason = "disabled"
	}
	f.disabled = reason
}

func (f *locationFilter) IsEnabled() bool { return f.disabled == "" }

func (f *locationFilter) Apply(_ context.Context, deps Deps, candidates []model.Profile) ([]model.Profile, Step, error) {
	initial := len(candidates)
	if f.location == "" {
		return candidates, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept, dropped := keep(candidates, func(p model.Profile) bool {
		loc := strings.ToLower(strings.TrimSpace(p.Location))
		return loc == "" || strings.Contains(loc, f.location)
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates by location",
			zap.String("location", f.location),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *locationFilter) Status() Status {
	details := map[string]string{}
	if f.location != "" {
		details["location"] = f.location
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.disabled, Details: details}
}
