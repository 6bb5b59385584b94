package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "brandmatch"
)

type Config struct {
	AI       *AIConfig       `mapstructure:"ai"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Outreach *OutreachConfig `mapstructure:"outreach"`
	Catalogs *CatalogsConfig `mapstructure:"catalogs"`
	Filters  *FiltersConfig  `mapstructure:"filters"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey          string        `mapstructure:"api-key"`
	APIKeyFile      string        `mapstructure:"api-key-file"`
	Model           string        `mapstructure:"model"`
	MaxOutputTokens int           `mapstructure:"max-output-tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxLogLength    int           `mapstructure:"max-log-length"`
}

type MatchingConfig struct {
	Limit       int      `mapstructure:"limit"`
	BonusTokens []string `mapstructure:"bonus-tokens"`
}

type OutreachConfig struct {
	Currency string `mapstructure:"currency"`
}

type CatalogsConfig struct {
	Influencers string `mapstructure:"influencers"`
	Brands      string `mapstructure:"brands"`
}

type FiltersConfig struct {
	Exclude     []string `mapstructure:"exclude"`
	ExcludeFile string   `mapstructure:"exclude-file"`
	Location    string   `mapstructure:"location"`
	Disable     []string `mapstructure:"disable"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "brandmatch ranks influencers for brands (and brands for influencers) and drafts outreach messages",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is brandmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-output-tokens", 100)
	viper.SetDefault("ai.gemini.timeout", "15s")
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("matching.limit", 3)
	viper.SetDefault("matching.bonus-tokens", []string{"saree"})
	viper.SetDefault("outreach.currency", "₹")
	viper.SetDefault("catalogs.influencers", "")
	viper.SetDefault("catalogs.brands", "")
	viper.SetDefault("filters.exclude", []string{})
	viper.SetDefault("filters.location", "")
}

func initConfig() {
	// Only the match command reads the config file.
	if matchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	// Defaults are enough to run, so a missing file is fine. A broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
