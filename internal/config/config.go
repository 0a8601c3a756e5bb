package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	Debug            bool      `mapstructure:"debug"`     // enables Telegram API debug output and debug logs
	LogLevel         string    `mapstructure:"log_level"` // overrides the environment's default log level
	TelegramAPIToken string    `mapstructure:"-"`         // Telegram API token loaded from environment
	Generator        Generator `mapstructure:"generator"` // remote question generator section
	Quiz             Quiz      `mapstructure:"quiz"`      // quiz input screen section
}

// Generator contains settings of the remote question generator.
type Generator struct {
	BaseURL      string        `mapstructure:"base_url"`      // generator API base address
	GeneratePath string        `mapstructure:"generate_path"` // path of the generate endpoint
	FilesPath    string        `mapstructure:"files_path"`    // path of the uploaded files listing
	Timeout      time.Duration `mapstructure:"timeout"`       // per-request timeout
}

// Quiz contains choices offered on the input screen.
type Quiz struct {
	PresetCounts []int    `mapstructure:"preset_counts"` // question count buttons
	Topics       []string `mapstructure:"topics"`        // built-in topic buttons
}

// DefaultTopics is the built-in course topic list.
var DefaultTopics = []string{
	"Manusia dalam pandangan Islam",
	"Agama Islam dan ruang lingkupnya",
	"Sumber ajaran Islam",
	"Hukum Islam dan HAM dalam Islam",
	"IPTEKS dalam perspektif Islam",
	"Kerukunan antar umat beragama",
	"Konsep masyarakat Madani dalam Islam",
	"Konsep kebudayaan dalam Islam",
	"Sistem politik Islam",
	"Konsep ekonomi dalam Islam",
	"Konsep keluarga dalam Islam",
	"Etika, moral dan akhlak dalam islam",
	"Peran agama dalam menghadapi permasalahan jihad, hijrah, literasi agama",
}

// DefaultPresetCounts are the question count buttons.
var DefaultPresetCounts = []int{5, 10, 15, 20, 25}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A local .env file is optional.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("debug", false)
	v.SetDefault("generator.base_url", "http://localhost:5000/api")
	v.SetDefault("generator.generate_path", "/quiz/generate-quiz")
	v.SetDefault("generator.files_path", "/files")
	v.SetDefault("generator.timeout", "60s")
	v.SetDefault("quiz.preset_counts", DefaultPresetCounts)
	v.SetDefault("quiz.topics", DefaultTopics)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("generator.base_url", "GENERATOR_BASE_URL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if len(cfg.Quiz.PresetCounts) == 0 {
		cfg.Quiz.PresetCounts = DefaultPresetCounts
	}
	if len(cfg.Quiz.Topics) == 0 {
		cfg.Quiz.Topics = DefaultTopics
	}

	return &cfg, nil
}
