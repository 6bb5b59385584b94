package matching

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/scoring"
)

type composer interface {
	Compose(ctx context.Context, direction model.Direction, requester, counterpart model.Profile) model.OutreachMessage
}

// Request is a single matching run.
type Request struct {
	Direction  model.Direction
	Requester  model.Profile
	Candidates []model.Profile
}

// Match is one ranked entry with its outreach message.
type Match struct {
	Rank     int                   `json:"rank"`
	Scored   model.ScoredMatch     `json:"match"`
	Outreach model.OutreachMessage `json:"outreach"`
	Idea     string                `json:"idea"`
}

// Response holds the shortlist in rank order.
type Response struct {
	Direction model.Direction `json:"direction"`
	Requester model.Profile   `json:"requester"`
	// RequesterAuthenticity is set for influencer requesters with engagement data.
	RequesterAuthenticity *int    `json:"requester_authenticity_score,omitempty"`
	Matches               []Match `json:"matches"`
}

// Ranked returns the ranked result backing the response.
func (r *Response) Ranked() model.RankedResult {
	items := make([]model.ScoredMatch, 0, len(r.Matches))
	for _, m := range r.Matches {
		items = append(items, m.Scored)
	}
	return model.RankedResult{Items: items}
}

// Service runs ranking followed by outreach composition.
type Service struct {
	matcher  *Matcher
	composer composer
	idea     func(model.Direction, model.Profile, model.Profile) string
	logger   *zap.Logger
}

// NewService wires a matcher and a composer.
func NewService(matcher *Matcher, composer composer, idea func(model.Direction, model.Profile, model.Profile) string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		matcher:  matcher,
		composer: composer,
		idea:     idea,
		logger:   logger,
	}
}

// Match ranks the candidates and composes a message for every shortlisted
// entry. The ranking is final before any message is requested; messages are
// composed concurrently and stored in their rank slot.
func (s *Service) Match(ctx context.Context, req Request) *Response {
	ranked := s.matcher.Rank(req.Candidates, ScoringContext{
		Direction: req.Direction,
		Requester: req.Requester,
	})

	s.logger.Info("candidates ranked",
		zap.String("direction", req.Direction.String()),
		zap.Int("candidates", len(req.Candidates)),
		zap.Int("shortlisted", ranked.Len()),
		zap.Strings("ranking", ranked.Names()),
	)

	resp := &Response{
		Direction: req.Direction,
		Requester: req.Requester,
		Matches:   make([]Match, ranked.Len()),
	}

	if req.Direction == model.InfluencerToBrand && req.Requester.HasEngagement() {
		auth := scoring.Authenticity(req.Requester.FollowerCount(), req.Requester.EngagementRate(), req.Requester.RecentGrowth())
		resp.RequesterAuthenticity = &auth
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.matcher.Limit())

	for i, scored := range ranked.Items {
		g.Go(func() error {
			match := Match{
				Rank:   i + 1,
				Scored: scored,
			}
			if s.composer != nil {
				match.Outreach = s.composer.Compose(gCtx, req.Direction, req.Requester, scored.Subject)
			}
			if s.idea != nil {
				match.Idea = s.idea(req.Direction, req.Requester, scored.Subject)
			}
			resp.Matches[i] = match
			return nil
		})
	}

	// Composition never fails, so the group error is always nil.
	_ = g.Wait()

	return resp
}
