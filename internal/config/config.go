package config

import (
	"errors"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	TelegramBotToken        string
	TelegramPollTimeoutSecs int `validate:"gt=0,lte=60"`

	RedisURL          string
	ImageCacheTTLSecs int `validate:"gt=0"`

	HTTPPort           int      `validate:"gt=0,lte=65535"`
	HTTPMaxBodyBytes   int64    `validate:"gt=0"`
	CORSAllowedOrigins []string `validate:"min=1"`

	MCPTransport          string `validate:"oneof=stdio http"`
	MCPHTTPEnabled        bool
	MCPHTTPBind           string `validate:"required"`
	MCPHTTPPort           int    `validate:"gt=0,lte=65535"`
	MCPAuthToken          string
	MCPRequestTimeoutSecs int `validate:"gt=0"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

func defaults() Config {
	return Config{
		TelegramPollTimeoutSecs: 10,
		ImageCacheTTLSecs:       3600,
		HTTPPort:                8080,
		HTTPMaxBodyBytes:        10 << 20,
		CORSAllowedOrigins:      []string{"*"},
		MCPTransport:            "stdio",
		MCPHTTPBind:             "127.0.0.1",
		MCPHTTPPort:             8090,
		MCPRequestTimeoutSecs:   5,
		LogLevel:                "info",
		LogFormat:               "json",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads settings from the environment and, when CONFIG_FILE points at
// one, a config file. Values that fail validation fall back to their default
// with a warning.
func Load() *Config {
	def := defaults()

	v := viper.New()
	v.SetDefault("TELEGRAM_POLL_TIMEOUT_SECS", def.TelegramPollTimeoutSecs)
	v.SetDefault("IMAGE_CACHE_TTL_SECS", def.ImageCacheTTLSecs)
	v.SetDefault("HTTP_PORT", def.HTTPPort)
	v.SetDefault("HTTP_MAX_BODY_BYTES", def.HTTPMaxBodyBytes)
	v.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(def.CORSAllowedOrigins, ","))
	v.SetDefault("MCP_TRANSPORT", def.MCPTransport)
	v.SetDefault("MCP_HTTP_BIND", def.MCPHTTPBind)
	v.SetDefault("MCP_HTTP_PORT", def.MCPHTTPPort)
	v.SetDefault("MCP_REQUEST_TIMEOUT_SECS", def.MCPRequestTimeoutSecs)
	v.SetDefault("LOG_LEVEL", def.LogLevel)
	v.SetDefault("LOG_FORMAT", def.LogFormat)
	v.AutomaticEnv()
	_ = v.BindEnv("HTTP_PORT", "HTTP_PORT", "PORT")

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Warning: could not read config file %s: %v", path, err)
		}
	}

	cfg := &Config{
		TelegramBotToken:        strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		TelegramPollTimeoutSecs: v.GetInt("TELEGRAM_POLL_TIMEOUT_SECS"),
		RedisURL:                strings.TrimSpace(v.GetString("REDIS_URL")),
		ImageCacheTTLSecs:       v.GetInt("IMAGE_CACHE_TTL_SECS"),
		HTTPPort:                v.GetInt("HTTP_PORT"),
		HTTPMaxBodyBytes:        v.GetInt64("HTTP_MAX_BODY_BYTES"),
		CORSAllowedOrigins:      parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MCPTransport:            strings.ToLower(strings.TrimSpace(v.GetString("MCP_TRANSPORT"))),
		MCPHTTPEnabled:          strings.EqualFold(strings.TrimSpace(v.GetString("MCP_HTTP_ENABLED")), "true"),
		MCPHTTPBind:             strings.TrimSpace(v.GetString("MCP_HTTP_BIND")),
		MCPHTTPPort:             v.GetInt("MCP_HTTP_PORT"),
		MCPAuthToken:            strings.TrimSpace(v.GetString("MCP_AUTH_TOKEN")),
		MCPRequestTimeoutSecs:   v.GetInt("MCP_REQUEST_TIMEOUT_SECS"),
		LogLevel:                strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:               strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
	}

	applyFallbacks(cfg, &def)

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, screenshot cache disabled")
	}
	return cfg
}

// applyFallbacks resets every field that fails its validate tag to the value
// in def.
func applyFallbacks(cfg, def *Config) {
	err := validate.Struct(cfg)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		log.Printf("Warning: config validation failed: %v", err)
		return
	}

	cv := reflect.ValueOf(cfg).Elem()
	dv := reflect.ValueOf(def).Elem()
	for _, fe := range fieldErrs {
		name := fe.StructField()
		log.Printf("Warning: invalid %s=%v, defaulting to %v", name, fe.Value(), dv.FieldByName(name).Interface())
		cv.FieldByName(name).Set(dv.FieldByName(name))
	}
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
