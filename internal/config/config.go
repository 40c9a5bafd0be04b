package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube     YouTubeConfig     `yaml:"youtube"`
	Selection   SelectionConfig   `yaml:"selection"`
	Fallback    FallbackConfig    `yaml:"fallback"`
	Processing  ProcessingConfig  `yaml:"processing"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Keys        KeysConfig        `yaml:"keys"`
}

type YouTubeConfig struct {
	CaptionLanguages []string `yaml:"caption_languages"`
	CookiePath       string   `yaml:"cookie_path"`
}

// SelectionConfig picks a 1-based slice of a resolved playlist.
// EndIndex 0 means "through the last item".
type SelectionConfig struct {
	StartIndex int `yaml:"start_index"`
	EndIndex   int `yaml:"end_index"`
}

type FallbackConfig struct {
	Enabled               bool `yaml:"enabled"`
	SegmentCeilingSeconds int  `yaml:"segment_ceiling_seconds"`
	KeepIntermediateFiles bool `yaml:"keep_intermediate_files"`
}

type ProcessingConfig struct {
	ChunkSize      int      `yaml:"chunk_size"`
	MinTailWords   int      `yaml:"min_tail_words"`
	Model          string   `yaml:"model"`
	OutputLanguage string   `yaml:"output_language"`
	Styles         []string `yaml:"styles"`
	MaxAttempts    int      `yaml:"max_attempts"`
	WriteDocx      bool     `yaml:"write_docx"`
}

type PathsConfig struct {
	Output         string `yaml:"output"`
	Temp           string `yaml:"temp"`
	Watch          string `yaml:"watch"`
	TranscriptFile string `yaml:"transcript_file"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type KeysConfig struct {
	Gemini []string `yaml:"gemini"`
	OpenAI string   `yaml:"openai"`
}

// Load reads a YAML config file, fills API keys from the environment when
// absent, validates, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.fillFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) fillFromEnv() {
	if len(c.Keys.Gemini) == 0 {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.Keys.Gemini = []string{key}
		}
	}
	if c.Keys.OpenAI == "" {
		c.Keys.OpenAI = os.Getenv("OPENAI_API_KEY")
	}
}

func (c *Config) Validate() error {
	if c.Selection.StartIndex == 0 {
		c.Selection.StartIndex = 1
	}
	if c.Selection.StartIndex < 1 {
		return fmt.Errorf("selection.start_index must be >= 1")
	}
	if c.Selection.EndIndex < 0 {
		return fmt.Errorf("selection.end_index must be >= 0")
	}
	if c.Selection.EndIndex > 0 && c.Selection.EndIndex < c.Selection.StartIndex {
		return fmt.Errorf("selection.end_index must be >= selection.start_index")
	}

	if c.Processing.ChunkSize == 0 {
		c.Processing.ChunkSize = 70000
	}
	if c.Processing.ChunkSize < 0 {
		return fmt.Errorf("processing.chunk_size must be > 0")
	}
	if c.Processing.MinTailWords == 0 {
		c.Processing.MinTailWords = c.Processing.ChunkSize / 5
	}
	if c.Processing.MinTailWords < 0 {
		return fmt.Errorf("processing.min_tail_words must be >= 0")
	}
	if c.Processing.OutputLanguage == "" {
		c.Processing.OutputLanguage = "English"
	}
	if c.Processing.Model == "" {
		c.Processing.Model = "gemini-2.5-flash"
	}
	if c.Processing.MaxAttempts == 0 {
		c.Processing.MaxAttempts = 3
	}

	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	if c.Fallback.SegmentCeilingSeconds == 0 {
		c.Fallback.SegmentCeilingSeconds = 600
	}

	if len(c.YouTube.CaptionLanguages) == 0 {
		c.YouTube.CaptionLanguages = []string{"en"}
	}

	if len(c.Keys.Gemini) == 0 {
		return fmt.Errorf("keys.gemini is required (or set GEMINI_API_KEY)")
	}
	if c.Fallback.Enabled && c.Keys.OpenAI == "" {
		return fmt.Errorf("keys.openai is required when fallback is enabled (or set OPENAI_API_KEY)")
	}

	return nil
}
