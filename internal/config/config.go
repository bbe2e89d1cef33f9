package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/pkg/utils"
)

const defaultPlayerCommand = "ffplay -nodisp -autoexit -loglevel quiet -i -"

// arecord sample formats per bit depth, all little-endian as WAV expects.
var arecordFormats = map[int]string{
	8:  "U8",
	16: "S16_LE",
	24: "S24_3LE",
	32: "S32_LE",
}

// Config aggregates every setting the binaries read from the environment.
// The assistant backend address is not here: it is fixed at build time.
type Config struct {
	Server  ServerConfig
	Logging utils.LoggingConfig
	Audio   speechModel.AudioConfig
	UI      UIConfig
	AI      AIConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	logging, err := loadLoggingConfig()
	if err != nil {
		return nil, err
	}

	audioCfg, err := loadAudioConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Logging: logging,
		Audio:   audioCfg,
		UI:      loadUIConfig(),
		AI:      ai,
	}, nil
}

// ServerConfig describes the dev assistant backend listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// allow ":8000" or "127.0.0.1:8000"
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadLoggingConfig() (utils.LoggingConfig, error) {
	development, err := parseBoolEnv("LOG_DEVELOPMENT", false)
	if err != nil {
		return utils.LoggingConfig{}, err
	}

	caller, err := parseBoolEnv("LOG_CALLER", false)
	if err != nil {
		return utils.LoggingConfig{}, err
	}

	var outputs []string
	if file := strings.TrimSpace(os.Getenv("LOG_FILE")); file != "" {
		outputs = []string{file}
	}

	return utils.LoggingConfig{
		Level:        strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Encoding:     strings.ToLower(getEnvOrDefault("LOG_ENCODING", "console")),
		Development:  development,
		EnableCaller: caller,
		ServiceName:  strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		OutputPaths:  outputs,
	}, nil
}

func loadAudioConfig() (speechModel.AudioConfig, error) {
	sampleRate, err := parsePositiveIntEnv("AUDIO_SAMPLE_RATE", 16000)
	if err != nil {
		return speechModel.AudioConfig{}, err
	}

	channels, err := parsePositiveIntEnv("AUDIO_CHANNELS", 1)
	if err != nil {
		return speechModel.AudioConfig{}, err
	}

	bitDepth, err := parsePositiveIntEnv("AUDIO_BIT_DEPTH", 16)
	if err != nil {
		return speechModel.AudioConfig{}, err
	}

	cfg := speechModel.AudioConfig{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitDepth:      bitDepth,
		CaptureURL:    strings.TrimSpace(os.Getenv("AUDIO_CAPTURE_URL")),
		PlayerCommand: strings.Fields(getEnvOrDefault("AUDIO_PLAYER_COMMAND", defaultPlayerCommand)),
	}

	if err := cfg.PCMFormat().Validate(); err != nil {
		return speechModel.AudioConfig{}, fmt.Errorf("invalid audio format: %w", err)
	}

	cfg.CaptureCommand = strings.Fields(os.Getenv("AUDIO_CAPTURE_COMMAND"))
	if len(cfg.CaptureCommand) == 0 {
		cfg.CaptureCommand = defaultCaptureCommand(cfg.PCMFormat())
	}

	return cfg, nil
}

// defaultCaptureCommand records raw PCM with arecord in the configured layout.
func defaultCaptureCommand(format audio.PCMFormat) []string {
	return []string{
		"arecord", "-q", "-t", "raw",
		"-f", arecordFormats[format.BitDepth],
		"-r", strconv.Itoa(format.SampleRate),
		"-c", strconv.Itoa(format.Channels),
	}
}

// UIConfig holds terminal client preferences.
type UIConfig struct {
	Locale string
}

func loadUIConfig() UIConfig {
	return UIConfig{Locale: strings.ToLower(getEnvOrDefault("CHAT_LOCALE", "bn"))}
}

// AIConfig describes the Ark model used by the dev backend.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_API_KEY and ARK_MODEL, or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parsePositiveIntEnv(key string, defaultValue int) (int, error) {
	val, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return defaultValue, nil
	}
	if *val <= 0 {
		return 0, fmt.Errorf("invalid %s value %d: must be positive", key, *val)
	}
	return *val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
