package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Sleeper SleeperConfig `yaml:"sleeper" mapstructure:"sleeper"`
	League  LeagueConfig  `yaml:"league" mapstructure:"league"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the payload cache backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SleeperConfig holds Sleeper API settings. Leagues and Drafts map a
// season (as a string, matching the API's own season representation)
// to the league or draft identifier for that year.
type SleeperConfig struct {
	BaseURL     string            `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int               `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Leagues     map[string]string `yaml:"leagues" mapstructure:"leagues"`
	Drafts      map[string]string `yaml:"drafts" mapstructure:"drafts"`
}

// LeagueConfig describes the league being rendered: the closed set of
// franchise labels with the account display names each has used over
// the years, and the season/week range to cover.
type LeagueConfig struct {
	Franchises     map[string][]string `yaml:"franchises" mapstructure:"franchises"`
	FirstSeason    int                 `yaml:"first_season" mapstructure:"first_season"`
	LastSeason     int                 `yaml:"last_season" mapstructure:"last_season"`
	WeeksPerSeason int                 `yaml:"weeks_per_season" mapstructure:"weeks_per_season"`
}

// ServerConfig configures the trade log HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "trade_cache.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("sleeper.base_url", "https://api.sleeper.app/v1")
	v.SetDefault("sleeper.timeout_secs", 30)
	v.SetDefault("sleeper.leagues", map[string]string{
		"2020": "634178924393340928",
		"2021": "649911222413668352",
		"2022": "784354886748897280",
		"2023": "928374253781659648",
		"2024": "1049429880049373184",
	})
	v.SetDefault("sleeper.drafts", map[string]string{
		"2021": "649911222413668353",
		"2022": "784354886748897281",
		"2023": "928374253781659649",
		"2024": "1049429880049373185",
	})
	v.SetDefault("league.first_season", 2020)
	v.SetDefault("league.last_season", 2024)
	v.SetDefault("league.weeks_per_season", 18)
	v.SetDefault("league.franchises", map[string][]string{
		"Beckham":            {"brazybabybc", "bc5934"},
		"Tyler":              {"norris13", "JoeBrownFanClub"},
		"Praveen":            {"praveen14"},
		"Andre":              {"sheluvgov", "chicosman"},
		"Jonny":              {"AndreRishel", "TeamJonnyL"},
		"Gov":                {"GovsForeskin", "Govvy"},
		"Nick":               {"BucklingRelic12"},
		"Cameron":            {"PuffDad"},
		"Joseph":             {"SuperVUsters"},
		"Kai/Arshon/Stathis": {"RatchetRabies", "guccigaropppp", "TheStinkers"},
		"Chase/Tin":          {"chade1", "Matinnn"},
		"Robert/Ryan":        {"GuapGetterz999", "Br0wnsBunch", "TheDanesh30"},
	})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger builds the global zap logger from config.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
