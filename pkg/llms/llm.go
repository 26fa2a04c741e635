package llms

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
)

var errNoContentsInRequest = errors.New("no messages in request")

// Requester sends an ordered list of role-tagged messages to a language
// model and returns its raw reply.
type Requester interface {
	Request(ctx context.Context, messages []memory.Message) (string, error)
	fmt.Stringer
}

type LLMProvider int

const (
	ProviderOllama LLMProvider = iota
	ProviderChatGPT
	ProviderDeepseek
	ProviderGoogleGemini
	InvalidProvider
)

// String returns the default model name of the provider.
func (l LLMProvider) String() string {
	s := "INVALID PROVIDER"

	switch l {
	case ProviderOllama:
		s = "neural-chat:7b-v3.3-q6_K"
	case ProviderChatGPT:
		s = "gpt-4.1-mini-2025-04-14"
	case ProviderDeepseek:
		s = "deepseek-chat"
	case ProviderGoogleGemini:
		s = "gemini-2.0-flash"
	default:
	}

	return s
}

// ParseProvider maps a provider name, as written in configuration files and
// flags, to an LLMProvider.
func ParseProvider(s string) (LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ollama":
		return ProviderOllama, nil
	case "chatgpt", "openai":
		return ProviderChatGPT, nil
	case "deepseek":
		return ProviderDeepseek, nil
	case "gemini", "google":
		return ProviderGoogleGemini, nil
	}

	return InvalidProvider, errors.Errorf("unknown LLM provider %q", s)
}

type ModelConfig struct {
	Provider LLMProvider

	// Name overrides the provider's default model name.
	Name        string
	Temperature float64
	RequestConfig
}

func (cfg *ModelConfig) validate() error {
	if cfg.Provider < 0 || cfg.Provider >= InvalidProvider {
		return errors.New("invalid LLM provider")
	}

	return cfg.RequestConfig.validate()
}

// modelName is the model the request is sent to.
func (cfg *ModelConfig) modelName() string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return cfg.Provider.String()
}

type RequestConfig struct {
	Temperature float64
	Seed        int64
	TopP        float64
	MaxTokens   int64
}

func (cfg RequestConfig) validate() error {
	if cfg.Temperature < 0.0 || cfg.Temperature > 1.0 {
		return errors.New("temperature must be between 0.0 and 1.0")
	}
	if cfg.TopP < 0.0 || cfg.TopP > 1.0 {
		return errors.New("top_p must be between 0.0 and 1.0")
	}
	if cfg.MaxTokens < 1 {
		return errors.New("max_tokens must be greater than 0")
	}
	return nil
}

// withDefaults fills the request configuration of mc from the provider
// defaults d, keeping the caller's temperature.
func withDefaults(mc ModelConfig, d RequestConfig) ModelConfig {
	d.Temperature = mc.Temperature
	mc.RequestConfig = d
	return mc
}

type llm struct {
	model LLMProvider

	// name is the model name sent to the provider.
	name string

	defaultConfig *RequestConfig

	logger *log.Logger
}

func newLLM(mc ModelConfig, l *log.Logger) (*llm, error) {
	err := mc.validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid model config")
	}

	if l == nil {
		l = log.New(io.Discard)
	}

	l.Debugf("Creating new LLM instance with these options: %+v", mc)

	rc := mc.RequestConfig

	return &llm{
		model:         mc.Provider,
		name:          mc.modelName(),
		defaultConfig: &rc,
		logger:        l,
	}, nil
}

// setTemperature remaps a temperature value, such as 0.5, to a model specific
// value. Gemini and Deepseek use a scale from 0.0 to 2.0, rather than the
// typical 0.0 to 1.0. This function lets config parameters maintain a
// consistent input mapping of 0.0 to 1.0 rather than having two
// different mappings.
func (l *llm) setTemperature(t float64) float64 {
	switch l.model {
	case ProviderGoogleGemini, ProviderDeepseek:
		return t * 2
	default:
		return t
	}
}

// initRequest checks messages and starts a timer reporting how long the
// request took.
func (l *llm) initRequest(messages []memory.Message) (func(), error) {
	if len(messages) == 0 {
		return nil, errNoContentsInRequest
	}

	start := time.Now()

	return func() {
		l.logger.Debugf("%s request took %s", l.name, time.Since(start))
	}, nil
}

var thinkTagPattern = regexp.MustCompile(`(?s)<think>.*?</think>\n?`)

func removeThinkingTags(response string) string {
	return thinkTagPattern.ReplaceAllString(response, "")
}

// cleanResponse strips reasoning blocks and surrounding whitespace.
func cleanResponse(response string) string {
	return strings.TrimSpace(removeThinkingTags(response))
}
