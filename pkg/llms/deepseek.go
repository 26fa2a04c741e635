package llms

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
)

const defaultDeepseekUrl = "https://api.deepseek.com/v1"

// Deepseek speaks the OpenAI chat completion API. It does not accept JSON
// schemas, so typed requests are sent as plain requests.
type Deepseek struct {
	*openAIClient
}

func NewDeepseek(apiKey string, mc ModelConfig, l *log.Logger) (
	*Deepseek,
	error,
) {
	withConfig := newOpenAIClient(
		apiKey,
		defaultDeepseekUrl,
		l,
	)

	nc, err := withConfig(withDefaults(mc, defaultDeepseekRequestConfig))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create new Deepseek client")
	}

	return &Deepseek{nc}, nil
}

func (c Deepseek) Request(
	ctx context.Context,
	messages []memory.Message,
) (string, error) {
	v, err := c.request(ctx, messages, c.buildRequestParams())
	if err != nil {
		return "", errors.Wrap(err, "failed to request Deepseek")
	}

	return v, nil
}

func (c Deepseek) String() string {
	return fmt.Sprintf("Deepseek %s", c.name)
}
