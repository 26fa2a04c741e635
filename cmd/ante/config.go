package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/history"
	"codeberg.org/n30w/ante/pkg/llms"
)

const (
	DefaultConfigPath       = "./ante.toml"
	DefaultProvider         = "ollama"
	DefaultModel            = ""
	DefaultTemperatureFloat = 0.0
	DefaultInputLanguage    = "Auto Detect"
	DefaultOutputLanguage   = "English"
	DefaultContextToggle    = true
	DefaultStructuredToggle = true
	DefaultHistoryPath      = ""
	DefaultHistoryCapacity  = 10
	DefaultSeparator        = history.DefaultSeparator
	DefaultDatabaseURL      = ""
	DefaultDebugToggle      = false
)

type modelConfig struct {
	Provider    string
	Name        string
	Temperature float64

	// Structured asks providers that support it for schema-shaped replies.
	Structured bool
}

type languageConfig struct {
	Input  string
	Output string
}

type historyConfig struct {
	Path      string
	Capacity  int
	Separator string

	// Context sends preceding translations along with every segment.
	Context bool
}

type userConfig struct {
	Model     modelConfig
	Languages languageConfig
	History   historyConfig
	Database  string
}

func defaultUserConfig() userConfig {
	return userConfig{
		Model: modelConfig{
			Provider:    DefaultProvider,
			Name:        DefaultModel,
			Temperature: DefaultTemperatureFloat,
			Structured:  DefaultStructuredToggle,
		},
		Languages: languageConfig{
			Input:  DefaultInputLanguage,
			Output: DefaultOutputLanguage,
		},
		History: historyConfig{
			Path:      DefaultHistoryPath,
			Capacity:  DefaultHistoryCapacity,
			Separator: DefaultSeparator,
			Context:   DefaultContextToggle,
		},
		Database: DefaultDatabaseURL,
	}
}

// loadUserConfig reads the TOML file at path over the defaults.
func loadUserConfig(path string) (userConfig, error) {
	conf := defaultUserConfig()

	_, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return defaultUserConfig(), errors.Wrapf(err, "failed to load config %s", path)
	}

	return conf, nil
}

// llmConfig converts the user's model settings for the llms package.
func (u userConfig) llmConfig() (llms.ModelConfig, error) {
	p, err := llms.ParseProvider(u.Model.Provider)
	if err != nil {
		return llms.ModelConfig{}, err
	}

	return llms.ModelConfig{
		Provider:    p,
		Name:        u.Model.Name,
		Temperature: u.Model.Temperature,
	}, nil
}

// flags holds command line values. Values equal to their defaults leave the
// config file untouched.
type flags struct {
	provider    string
	model       string
	temperature float64
	from        string
	to          string
	context     bool
	structured  bool
	history     string
	capacity    int
	separator   string
	database    string
}

func (f flags) apply(conf *userConfig) {
	if f.provider != DefaultProvider {
		conf.Model.Provider = f.provider
	}

	if f.model != DefaultModel {
		conf.Model.Name = f.model
	}

	if f.temperature != DefaultTemperatureFloat {
		conf.Model.Temperature = f.temperature
	}

	if f.structured != DefaultStructuredToggle {
		conf.Model.Structured = f.structured
	}

	if f.from != DefaultInputLanguage {
		conf.Languages.Input = f.from
	}

	if f.to != DefaultOutputLanguage {
		conf.Languages.Output = f.to
	}

	if f.context != DefaultContextToggle {
		conf.History.Context = f.context
	}

	if f.history != DefaultHistoryPath {
		conf.History.Path = f.history
	}

	if f.capacity != DefaultHistoryCapacity {
		conf.History.Capacity = f.capacity
	}

	if f.separator != DefaultSeparator {
		conf.History.Separator = f.separator
	}

	if f.database != DefaultDatabaseURL {
		conf.Database = f.database
	}
}
