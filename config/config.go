package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"chessbot/engine"
)

type Config struct {
	Logs   LogConfig
	Engine EngineConfig
	HTTP   HTTPConfig
}

type LogConfig struct {
	Style string // json or console
	Level string
}

type EngineConfig struct {
	FixedDepth int // 0 lets the clock pick the depth
	AlphaBeta  bool
	DrawScore  int
	CheckBonus int
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	fixedDepth, err := intEnv("ENGINE_FIXED_DEPTH", 0)
	if err != nil {
		return nil, err
	}
	if fixedDepth < 0 || fixedDepth > engine.MaxSearchDepth {
		return nil, fmt.Errorf("ENGINE_FIXED_DEPTH: %d outside 0..%d", fixedDepth, engine.MaxSearchDepth)
	}

	alphaBeta, err := boolEnv("ENGINE_ALPHA_BETA", true)
	if err != nil {
		return nil, err
	}

	drawScore, err := intEnv("ENGINE_DRAW_SCORE", int(engine.DefaultDrawScore))
	if err != nil {
		return nil, err
	}

	checkBonus, err := intEnv("ENGINE_CHECK_BONUS", int(engine.DefaultCheckBonus))
	if err != nil {
		return nil, err
	}

	shutdown, err := durationEnv("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: stringEnv("LOG_STYLE", "json"),
			Level: stringEnv("LOG_LEVEL", "info"),
		},
		Engine: EngineConfig{
			FixedDepth: fixedDepth,
			AlphaBeta:  alphaBeta,
			DrawScore:  drawScore,
			CheckBonus: checkBonus,
		},
		HTTP: HTTPConfig{
			Addr:            stringEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: shutdown,
		},
	}

	return cfg, nil
}

// EngineOptions converts the engine section into engine.Options.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.FixedDepth = c.Engine.FixedDepth
	opts.AlphaBeta = c.Engine.AlphaBeta
	opts.DrawScore = int32(c.Engine.DrawScore)
	opts.CheckBonus = int32(c.Engine.CheckBonus)
	return opts
}

// Logger builds the process logger. Console style is for humans at a terminal.
func (c LogConfig) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch strings.ToLower(c.Style) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	default:
		return zerolog.Nop(), fmt.Errorf("LOG_STYLE: unknown style %q", c.Style)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
