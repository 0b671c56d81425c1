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
	Env             string   `mapstructure:"env"`               // current application environment (local, dev, production etc)
	LogLevel        string   `mapstructure:"log_level"`         // overrides the environment's default log level
	CatalogJSONPath string   `mapstructure:"catalog_json_path"` // lesson JSON, empty for the built-in lesson
	Audio           Audio    `mapstructure:"audio"`             // audio assets section
	TTS             TTS      `mapstructure:"tts"`               // speech synthesis section
	Quiz            Quiz     `mapstructure:"quiz"`              // quiz pacing section
	Session         Session  `mapstructure:"session"`           // quiz session retention section
	Telegram        Telegram `mapstructure:"telegram"`          // Telegram front-end section
	HTTP            HTTP     `mapstructure:"http"`              // HTTP front-end section
}

// Audio configures pre-recorded assets.
type Audio struct {
	Dir              string `mapstructure:"dir"`                // directory holding <key>.m4a / <key>.mp3
	FallbackToSpeech bool   `mapstructure:"fallback_to_speech"` // synthesize when a recording is missing
}

// TTS configures Google Cloud Text-to-Speech.
type TTS struct {
	Enabled         bool          `mapstructure:"enabled"`
	LanguageCode    string        `mapstructure:"language_code"`
	VoiceName       string        `mapstructure:"voice_name"`
	APIKey          string        `mapstructure:"-"` // loaded from environment
	CredentialsFile string        `mapstructure:"credentials_file"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Quiz configures quiz presentation.
type Quiz struct {
	Celebrate bool `mapstructure:"celebrate"` // pause after a correct answer before the next question
}

// Session configures eviction of idle quiz sessions.
type Session struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`       // sessions untouched this long are dropped
	SweepInterval time.Duration `mapstructure:"sweep_interval"` // how often idle sessions are swept
}

// Telegram configures the bot front-end.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIToken string `mapstructure:"-"` // loaded from environment
	Debug    bool   `mapstructure:"debug"`
}

// HTTP configures the JSON API front-end.
type HTTP struct {
	Enabled        bool     `mapstructure:"enabled"`
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	SecureCookies  bool     `mapstructure:"secure_cookies"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Local .env is optional; real environment variables win.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("catalog_json_path", "")
	v.SetDefault("audio.dir", "audio")
	v.SetDefault("audio.fallback_to_speech", false)
	v.SetDefault("tts.enabled", true)
	v.SetDefault("tts.language_code", "id-ID")
	v.SetDefault("tts.voice_name", "")
	v.SetDefault("tts.credentials_file", "")
	v.SetDefault("tts.timeout", "10s")
	v.SetDefault("quiz.celebrate", true)
	v.SetDefault("session.idle_ttl", "24h")
	v.SetDefault("session.sweep_interval", "10m")
	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("http.secure_cookies", false)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("google_tts_api_key", "GOOGLE_TTS_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

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
	cfg.TTS.APIKey = v.GetString("google_tts_api_key")

	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	if cfg.Telegram.Enabled && cfg.Telegram.APIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
