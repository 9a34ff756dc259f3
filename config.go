package main

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default reply windows for the interactive flows
const (
	defaultQuestionTimeout = 15 * time.Second
	defaultFieldTimeout    = 30 * time.Second
	defaultTextTimeout     = 60 * time.Second
	defaultConfirmTimeout  = 15 * time.Second
)

// Timeouts groups the per-prompt reply windows
type Timeouts struct {
	Question time.Duration // per quiz question
	Field    time.Duration // single-field authoring/deletion prompts
	Text     time.Duration // free-form question text prompt
	Confirm  time.Duration // deletion confirmation
}

// Config holds everything read from the YAML config file
type Config struct {
	Discord struct {
		Token  string `yaml:"token"`
		Prefix string `yaml:"prefix"`
	} `yaml:"discord"`
	Storage struct {
		Dir string `yaml:"dir"`
	} `yaml:"storage"`
	Quiz struct {
		QuestionTimeout string `yaml:"question_timeout"`
		PromptTimeout   string `yaml:"prompt_timeout"`
		TextTimeout     string `yaml:"text_timeout"`
		ConfirmTimeout  string `yaml:"confirm_timeout"`
	} `yaml:"quiz"`
}

// loadConfig reads YAML config from path; a missing file leaves the defaults
// in place so the bot can run on flags and env alone
func loadConfig(path string) Config {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Println("ERROR, Parsing config file:", err)
		}
	}

	if cfg.Discord.Prefix == "" {
		cfg.Discord.Prefix = "!"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "./data"
	}

	return cfg
}

// timeouts resolves the configured durations against their defaults
func (cfg Config) timeouts() Timeouts {
	return Timeouts{
		Question: parseDuration(cfg.Quiz.QuestionTimeout, defaultQuestionTimeout),
		Field:    parseDuration(cfg.Quiz.PromptTimeout, defaultFieldTimeout),
		Text:     parseDuration(cfg.Quiz.TextTimeout, defaultTextTimeout),
		Confirm:  parseDuration(cfg.Quiz.ConfirmTimeout, defaultConfirmTimeout),
	}
}

// parseDuration parses a duration string or returns the fallback if empty
// or malformed
func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
