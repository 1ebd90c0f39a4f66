package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Advisor providers
const (
	AdvisorAnthropic = "anthropic"
	AdvisorGemini    = "gemini"
	AdvisorAPI       = "api"
)

// Dividend-yield providers
const (
	YieldFMP     = "fmp"
	YieldFinnhub = "finnhub"
)

// Settings is the application configuration (as opposed to a plan file)
type Settings struct {
	Debug bool

	FMPAPIKey       string
	FinnhubAPIKey   string
	AnthropicAPIKey string
	GeminiAPIKey    string

	YieldProvider   string
	AdvisorProvider string
	AnthropicModel  string
	GeminiModel     string

	// APIBaseURL points the CLI at a running fiplan server instead of
	// calling providers directly, e.g. http://localhost:5001/api
	APIBaseURL string

	StorePath        string
	ServerAddr       string
	BatchConcurrency int
	RequestTimeout   time.Duration
}

func defaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fiplan", "fiplan.db")
	}
	return "fiplan.db"
}

// NewViper returns a viper instance with defaults, search paths and
// environment bindings. An explicit cfgFile replaces the search paths.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("yield_provider", YieldFMP)
	v.SetDefault("advisor", AdvisorAnthropic)
	v.SetDefault("anthropic_model", "claude-3-haiku-20240307")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("store_path", defaultStorePath())
	v.SetDefault("server_addr", ":5001")
	v.SetDefault("batch_concurrency", 4)
	v.SetDefault("request_timeout", "30s")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Current directory has the highest precedence
		v.AddConfigPath(".")
		v.SetConfigName("fiplan")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "fiplan"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("FIPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Provider keys use their conventional names
	_ = v.BindEnv("fmp_api_key", "FIPLAN_FMP_API_KEY", "FMP_API_KEY")
	_ = v.BindEnv("finnhub_api_key", "FIPLAN_FINNHUB_API_KEY", "FINNHUB_API_KEY")
	_ = v.BindEnv("anthropic_api_key", "FIPLAN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("gemini_api_key", "FIPLAN_GEMINI_API_KEY", "GEMINI_API_KEY")

	return v
}

// LoadEnvFile loads a .env file into the process environment. With an empty
// path a missing ./.env is ignored.
func LoadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		return nil
	}
	_ = godotenv.Load()
	return nil
}

// LoadSettings reads the config file, if any, and resolves the settings.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := &Settings{
		Debug:            v.GetBool("debug"),
		FMPAPIKey:        v.GetString("fmp_api_key"),
		FinnhubAPIKey:    v.GetString("finnhub_api_key"),
		YieldProvider:    strings.ToLower(v.GetString("yield_provider")),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		GeminiAPIKey:     v.GetString("gemini_api_key"),
		AdvisorProvider:  strings.ToLower(v.GetString("advisor")),
		AnthropicModel:   v.GetString("anthropic_model"),
		GeminiModel:      v.GetString("gemini_model"),
		APIBaseURL:       strings.TrimRight(v.GetString("api_base_url"), "/"),
		StorePath:        v.GetString("store_path"),
		ServerAddr:       v.GetString("server_addr"),
		BatchConcurrency: v.GetInt("batch_concurrency"),
		RequestTimeout:   v.GetDuration("request_timeout"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings that have no safe fallback
func (s *Settings) Validate() error {
	switch s.YieldProvider {
	case YieldFMP, YieldFinnhub:
	default:
		return fmt.Errorf("yield_provider must be %s or %s; got %q", YieldFMP, YieldFinnhub, s.YieldProvider)
	}
	switch s.AdvisorProvider {
	case AdvisorAnthropic, AdvisorGemini, AdvisorAPI:
	default:
		return fmt.Errorf("advisor must be one of %s, %s, %s; got %q", AdvisorAnthropic, AdvisorGemini, AdvisorAPI, s.AdvisorProvider)
	}
	if s.AdvisorProvider == AdvisorAPI && s.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required when advisor is %q", AdvisorAPI)
	}
	if s.BatchConcurrency < 1 {
		return fmt.Errorf("batch_concurrency must be at least 1")
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
