package llms

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
)

type OpenAIChatGPT struct {
	*openAIClient
}

func NewOpenAIChatGPT(
	apiKey string,
	mc ModelConfig,
	logger *log.Logger,
) (*OpenAIChatGPT, error) {
	withConfig := newOpenAIClient(
		apiKey,
		defaultChatGPTUrl,
		logger,
	)

	o, err := withConfig(withDefaults(mc, defaultChatGPTRequestConfig))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create new ChatGPT client")
	}

	return &OpenAIChatGPT{o}, nil
}

func (c OpenAIChatGPT) Request(
	ctx context.Context,
	messages []memory.Message,
) (string, error) {
	v, err := c.request(ctx, messages, c.buildRequestParams())
	if err != nil {
		return "", errors.Wrap(err, "failed to request ChatGPT")
	}

	return v, nil
}

func (c OpenAIChatGPT) requestTyped(
	ctx context.Context,
	messages []memory.Message,
	f *responseFormat,
) (string, error) {
	params := c.buildRequestParams()
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   f.name,
				Strict: openai.Bool(true),
				Schema: f.schema,
			},
		},
	}

	v, err := c.request(ctx, messages, params)
	if err != nil {
		return "", errors.Wrap(err, "failed to request typed ChatGPT")
	}

	return v, nil
}

func (c OpenAIChatGPT) String() string {
	return fmt.Sprintf("Open AI %s", c.name)
}
