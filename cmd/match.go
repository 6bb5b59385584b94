package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/brandmatch/internal/ai"
	"github.com/spigell/brandmatch/internal/ai/gemini"
	"github.com/spigell/brandmatch/internal/catalog"
	"github.com/spigell/brandmatch/internal/filtering"
	"github.com/spigell/brandmatch/internal/logger"
	"github.com/spigell/brandmatch/internal/matching"
	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/outreach"
	"github.com/spigell/brandmatch/internal/secrets"
)

const (
	PromptBrand      = "I am a brand looking for influencers"
	PromptInfluencer = "I am an influencer looking for brands"
)

var rolePrompt = promptui.Select{
	Label: "Who are you?",
	Items: []string{PromptBrand, PromptInfluencer},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank the best partners for a profile and draft outreach messages",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("as", "a", "", "requester role: brand or influencer. Asked interactively when unset.")
	matchCmd.Flags().StringP("profile", "p", "", "yaml file with the requester profile")
	matchCmd.Flags().Bool("dump", false, "dump matches to a temporary json file")
	matchCmd.Flags().StringP("exclude-file", "e", "", "json file with names or handles to exclude. Default is unset.")

	viper.BindPFlag("filters.exclude-file", matchCmd.Flags().Lookup("exclude-file"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the brandmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	direction, err := resolveDirection(cmd.Flag("as").Value.String())
	if err != nil {
		logger.Fatal("choosing a role", zap.Error(err))
	}

	profilePath := cmd.Flag("profile").Value.String()
	if strings.TrimSpace(profilePath) == "" {
		logger.Fatal("requester profile is required", zap.String("hint", "pass a yaml file with --profile"))
	}

	requester, err := catalog.LoadProfile(profilePath, direction)
	if err != nil {
		logger.Fatal("loading requester profile", zap.Error(err))
	}

	catalogs, err := catalog.LoadWithOverrides(config.Catalogs.Influencers, config.Catalogs.Brands)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}

	candidates := catalogs.Candidates(direction)
	logger.Info("getting candidates",
		zap.String("direction", direction.String()),
		zap.Int("count", len(candidates)),
	)

	steps := prepareFilters(config.Filters)
	logger.Debug("prepared filters", zap.Any("filters", filtering.Describe(steps)))

	candidates, err = filtering.Run(ctx, filtering.Deps{Logger: logger}, steps, candidates)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if len(candidates) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	switch {
	case errors.Is(err, secrets.ErrNotConfigured):
		logger.Info("outreach generation disabled, using template messages",
			zap.String("hint", "set GEMINI_API_KEY or ai.gemini.api-key-file"),
		)
	case err != nil:
		logger.Warn("outreach generation unavailable, using template messages", zap.Error(err))
	case generator == nil:
		logger.Info("outreach generation disabled, using template messages", zap.String("reason", "ai.enabled is false"))
	}

	composer := outreach.NewComposer(generator, outreach.Config{
		Currency:     config.Outreach.Currency,
		MaxLogLength: geminiMaxLogLength(config.AI),
	}, logger)
	logger.Debug("outreach composer ready", zap.Bool("generation_enabled", composer.Enabled()))

	svc := matching.NewService(
		matching.NewMatcher(config.Matching.BonusTokens, config.Matching.Limit),
		composer,
		outreach.Idea,
		logger,
	)

	resp := svc.Match(ctx, matching.Request{
		Direction:  direction,
		Requester:  requester,
		Candidates: candidates,
	})

	report(logger, resp)

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := resp.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dump results to file", zap.Error(err))
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
	}
}

func resolveDirection(flag string) (model.Direction, error) {
	if strings.TrimSpace(flag) != "" {
		return model.ParseDirection(flag)
	}

	_, selected, err := rolePrompt.Run()
	if err != nil {
		return "", err
	}

	if selected == PromptInfluencer {
		return model.InfluencerToBrand, nil
	}
	return model.BrandToInfluencer, nil
}

func prepareFilters(cfg *FiltersConfig) []filtering.Filter {
	if cfg == nil {
		cfg = &FiltersConfig{}
	}

	steps := []filtering.Filter{
		filtering.NewExclude(cfg.Exclude),
		filtering.NewExcludeFile(cfg.ExcludeFile),
		filtering.NewLocation(cfg.Location),
	}

	for _, name := range cfg.Disable {
		filtering.DisableByName(steps, strings.TrimSpace(name), "disabled in config")
	}

	return steps
}

// newGenerator returns a nil generator when generation is switched off.
func newGenerator(ctx context.Context, cfg *AIConfig, lg *zap.Logger) (ai.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini api key: %w", secrets.ErrNotConfigured)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:          apiKey,
		Model:           cfg.Gemini.Model,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Timeout:         cfg.Gemini.Timeout,
		MaxLogLength:    cfg.Gemini.MaxLogLength,
	}, logger.WithCommonFields(lg, "gemini", cfg.Gemini.Model))
	if err != nil {
		return nil, err
	}

	return generator, nil
}

func geminiMaxLogLength(cfg *AIConfig) int {
	if cfg == nil || cfg.Gemini == nil {
		return 0
	}
	return cfg.Gemini.MaxLogLength
}

func report(lg *zap.Logger, resp *matching.Response) {
	if resp.RequesterAuthenticity != nil {
		lg.Info("your authenticity score", zap.Int(logger.FieldAuthenticity, *resp.RequesterAuthenticity))
	}

	if len(resp.Matches) == 0 {
		lg.Info("no matches found")
		return
	}

	for _, m := range resp.Matches {
		subject := m.Scored.Subject
		fields := []zap.Field{
			zap.Int("rank", m.Rank),
			zap.String("name", subject.Name),
		}
		fields = append(fields, logger.ScoreFields(m.Scored.Fit, m.Scored.Authenticity)...)
		if subject.Handle != "" {
			fields = append(fields, zap.String("handle", subject.Handle))
		}
		if subject.Followers != nil {
			fields = append(fields, zap.String("followers", humanize.Comma(int64(*subject.Followers))))
		}
		if subject.Budget != nil {
			fields = append(fields, zap.String("budget", humanize.Comma(int64(*subject.Budget))))
		}
		fields = append(fields,
			zap.String("outreach_source", string(m.Outreach.Source)),
			zap.String("outreach", m.Outreach.Text),
			zap.String("idea", m.Idea),
		)

		lg.Info("match", fields...)
	}

	lg.Info("matching finished",
		zap.Int("matches", len(resp.Matches)),
		zap.Int("generated_messages", resp.GeneratedCount()),
	)
}

// redacted returns a copy of the config that is safe to log.
func redacted(cfg *Config) *Config {
	if cfg == nil || cfg.AI == nil || cfg.AI.Gemini == nil || cfg.AI.Gemini.APIKey == "" {
		return cfg
	}

	copied := *cfg
	aiCfg := *cfg.AI
	gem := *cfg.AI.Gemini
	gem.APIKey = "***"
	aiCfg.Gemini = &gem
	copied.AI = &aiCfg
	return &copied
}
