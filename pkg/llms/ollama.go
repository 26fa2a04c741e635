package llms

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	ol "github.com/ollama/ollama/api"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
	"codeberg.org/n30w/ante/pkg/network"
)

const defaultOllamaUrl = "http://localhost:11434"

type Ollama struct {
	*llm
	hc *network.HttpRequestClient[ol.ChatResponse]
	u  *url.URL
}

// NewOllama creates a new Ollama LLM service. `u` is the URL of the server
// hosting the Ollama instance. If u is nil, the default instance URL is used.
func NewOllama(u *url.URL, mc ModelConfig, l *log.Logger) (
	*Ollama,
	error,
) {
	var err error

	if u == nil {
		u, err = url.Parse(defaultOllamaUrl)
		if err != nil {
			return nil, err
		}
	}

	endpoint := u.JoinPath("/api/chat")

	nl, err := newLLM(withDefaults(mc, defaultOllamaRequestConfig), l)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ollama client")
	}

	hc, err := network.NewHttpRequestClient[ol.ChatResponse](endpoint, nl.logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request client")
	}

	return &Ollama{
		llm: nl,
		hc:  hc,
		u:   endpoint,
	}, nil
}

func (c Ollama) buildRequestParams() *ol.ChatRequest {
	rc := c.defaultConfig

	return &ol.ChatRequest{
		Model:  c.name,
		Stream: new(bool),
		Options: map[string]any{
			"seed":        int(rc.Seed),
			"top_p":       float32(rc.TopP),
			"temperature": float32(c.setTemperature(rc.Temperature)),
			"num_predict": int(rc.MaxTokens),
		},
		KeepAlive: &ol.Duration{Duration: 1 * time.Minute},
	}
}

func (c Ollama) Request(ctx context.Context, messages []memory.Message) (
	string,
	error,
) {
	v, err := c.request(ctx, messages, c.buildRequestParams())
	if err != nil {
		return "", errors.Wrap(err, "failed to make ollama request")
	}

	return v, nil
}

func (c Ollama) requestTyped(
	ctx context.Context,
	messages []memory.Message,
	f *responseFormat,
) (string, error) {
	cfg := c.buildRequestParams()
	cfg.Format = f.raw

	v, err := c.request(ctx, messages, cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed to make typed ollama request")
	}

	return v, nil
}

func (c Ollama) request(
	ctx context.Context,
	messages []memory.Message,
	cfg *ol.ChatRequest,
) (string, error) {
	done, err := c.initRequest(messages)
	if err != nil {
		return "", err
	}
	defer done()

	cfg.Messages = c.prepare(messages)

	request, err := c.hc.PreparePost(cfg)
	if err != nil {
		return "", err
	}

	result, err := request(ctx)
	if err != nil {
		return "", err
	}

	return cleanResponse(result.Message.Content), nil
}

func (c Ollama) prepare(messages []memory.Message) []ol.Message {
	contents := make([]ol.Message, 0, len(messages))

	for _, v := range messages {
		r := "user"
		switch v.Role {
		case memory.ModelRole:
			r = "assistant"
		case memory.SystemRole:
			r = "system"
		}

		contents = append(
			contents, ol.Message{
				Role:    r,
				Content: v.Text,
			},
		)
	}

	return contents
}

func (c Ollama) String() string {
	return fmt.Sprintf("Ollama %s", c.name)
}
