// Package config loads warden.toml.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wardenci/warden/internal/rule"
)

// DefaultMaxFilesPerTask balances context size against worker count: each
// worker reviews a handful of files without overwhelming its context.
const DefaultMaxFilesPerTask = 5

// Config is the root of warden.toml.
type Config struct {
	LLM    LLMConfig    `toml:"llm"`
	Review ReviewConfig `toml:"review"`
	Rules  []rule.Rule  `toml:"rules"`
}

// LLMConfig selects the model provider.
type LLMConfig struct {
	// Provider is a gollm provider name (openai, anthropic, openrouter, ...).
	Provider string `toml:"provider"`
	// Model is the model identifier for that provider.
	Model string `toml:"model"`
	// MaxTokens caps each completion.
	MaxTokens int `toml:"max_tokens,omitempty"`
	// Temperature for completions.
	Temperature float64 `toml:"temperature,omitempty"`
}

// ReviewConfig tunes task planning and scheduling.
type ReviewConfig struct {
	// MaxFilesPerTask is the global chunk limit; rules may override it.
	MaxFilesPerTask int `toml:"max_files_per_task"`
	// MaxParallelWorkers bounds in-flight workers. Nil means unbounded.
	MaxParallelWorkers *int `toml:"max_parallel_workers,omitempty"`
	// Resources are supplementary context URIs shared by every rule.
	Resources []string `toml:"resources,omitempty"`
	// ShellAllowlist names the programs the sh tool may run.
	ShellAllowlist []string `toml:"shell_allowlist,omitempty"`
}

// Default returns the configuration used when a field is absent from file.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			MaxTokens:   4096,
			Temperature: 0.2,
		},
		Review: ReviewConfig{
			MaxFilesPerTask: DefaultMaxFilesPerTask,
			ShellAllowlist:  []string{"git", "ls", "cat", "head", "tail", "wc", "grep", "find"},
		},
	}
}

// Load reads and decodes a TOML config file, filling defaults for anything
// the file omits.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML config content.
func Parse(content string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if cfg.Review.MaxFilesPerTask <= 0 {
		cfg.Review.MaxFilesPerTask = DefaultMaxFilesPerTask
	}
	for i := range cfg.Rules {
		cfg.Rules[i].Normalize()
		if cfg.Rules[i].Name == "" {
			return Config{}, fmt.Errorf("rule %d: name is required", i)
		}
		if cfg.Rules[i].Instruction == "" {
			return Config{}, fmt.Errorf("rule %q: instruction is required", cfg.Rules[i].Name)
		}
	}
	return cfg, nil
}
