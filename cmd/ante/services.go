package main

import (
	"context"
	"net/url"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/llms"
	"codeberg.org/n30w/ante/pkg/translate"
)

// newRequester builds the language model client for the configured
// provider. Secrets are read from the environment.
func newRequester(
	ctx context.Context,
	conf userConfig,
	logger *log.Logger,
) (llms.Requester, error) {
	mc, err := conf.llmConfig()
	if err != nil {
		return nil, err
	}

	var llm llms.Requester

	switch mc.Provider {
	case llms.ProviderOllama:
		var u *url.URL
		if raw := os.Getenv("OLLAMA_URL"); raw != "" {
			u, err = url.Parse(raw)
			if err != nil {
				return nil, errors.Wrap(err, "invalid OLLAMA_URL")
			}
		}

		llm, err = llms.NewOllama(u, mc, logger)

	case llms.ProviderChatGPT:
		llm, err = llms.NewOpenAIChatGPT(os.Getenv("CHATGPT_API_KEY"), mc, logger)

	case llms.ProviderDeepseek:
		llm, err = llms.NewDeepseek(os.Getenv("DEEPSEEK_API_KEY"), mc, logger)

	case llms.ProviderGoogleGemini:
		llm, err = llms.NewGoogleGemini(ctx, os.Getenv("GEMINI_API_KEY"), mc, logger)

	default:
		return nil, errors.Errorf("unsupported provider %s", mc.Provider)
	}

	if err != nil {
		return nil, err
	}

	if conf.Model.Structured {
		llm = llms.Typed[translate.Response](llm)
	}

	return llm, nil
}
