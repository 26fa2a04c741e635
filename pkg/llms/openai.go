package llms

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
)

// defaultChatGPTUrl is blank because the OpenAI client library assumes GPT on a
// blank base URL.
const defaultChatGPTUrl = ""

// openAIClient wraps the openai library. Use to create custom OpenAI
// API compatible LLM services.
type openAIClient struct {
	*llm
	client *openai.Client
}

// newOpenAIClient makes a new OpenAI API compatible client. It returns
// a function that accepts a model configuration for finer client details.
// An empty string baseUrl uses the baseUrl of OpenAI's ChatGPT.
func newOpenAIClient(
	apiKey string,
	baseUrl string,
	logger *log.Logger,
) func(mc ModelConfig) (*openAIClient, error) {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	if baseUrl != defaultChatGPTUrl {
		opts = append(opts, option.WithBaseURL(baseUrl))
	}

	c := openai.NewClient(opts...)

	return func(mc ModelConfig) (*openAIClient, error) {
		l, err := newLLM(mc, logger)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create new openAI client")
		}

		return &openAIClient{
			llm:    l,
			client: &c,
		}, nil
	}
}

func (c openAIClient) buildRequestParams() openai.ChatCompletionNewParams {
	rc := c.defaultConfig

	return openai.ChatCompletionNewParams{
		Model:               c.name,
		Seed:                openai.Int(rc.Seed),
		MaxCompletionTokens: openai.Int(rc.MaxTokens),
		Temperature:         openai.Float(c.setTemperature(rc.Temperature)),
		TopP:                openai.Float(rc.TopP),
	}
}

// request sends a chat completion request and returns the generated text.
func (c openAIClient) request(
	ctx context.Context,
	messages []memory.Message,
	params openai.ChatCompletionNewParams,
) (string, error) {
	done, err := c.initRequest(messages)
	if err != nil {
		return "", err
	}
	defer done()

	params.Messages = c.prepare(messages)

	res, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(res.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return cleanResponse(res.Choices[0].Message.Content), nil
}

func (c openAIClient) prepare(
	messages []memory.Message,
) []openai.ChatCompletionMessageParamUnion {
	contents := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, v := range messages {
		var content openai.ChatCompletionMessageParamUnion

		switch v.Role {
		case memory.SystemRole:
			content = openai.SystemMessage(v.Text)
		case memory.ModelRole:
			content = openai.AssistantMessage(v.Text)
		default:
			content = openai.UserMessage(v.Text)
		}

		contents = append(contents, content)
	}

	return contents
}
