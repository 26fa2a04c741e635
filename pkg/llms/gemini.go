package llms

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"google.golang.org/genai"

	"codeberg.org/n30w/ante/pkg/memory"
)

type GoogleGemini struct {
	*llm
	client *genai.Client
}

func NewGoogleGemini(
	ctx context.Context,
	apiKey string,
	mc ModelConfig,
	logger *log.Logger,
) (*GoogleGemini, error) {
	l, err := newLLM(withDefaults(mc, defaultGeminiRequestConfig), logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}

	c, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}

	return &GoogleGemini{
		llm:    l,
		client: c,
	}, nil
}

func (c GoogleGemini) buildRequestParams() *genai.GenerateContentConfig {
	rc := c.defaultConfig

	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.setTemperature(rc.Temperature))),
		TopP:            genai.Ptr(float32(rc.TopP)),
		MaxOutputTokens: int32(rc.MaxTokens),
		Seed:            genai.Ptr(int32(rc.Seed)),
	}
}

func (c GoogleGemini) Request(
	ctx context.Context,
	messages []memory.Message,
) (string, error) {
	v, err := c.request(ctx, messages, c.buildRequestParams())
	if err != nil {
		return "", errors.Wrap(err, "failed to make google gemini request")
	}

	return v, nil
}

// requestTyped puts Gemini in JSON mode. The schema itself is left out since
// Gemini accepts only its own schema dialect.
func (c GoogleGemini) requestTyped(
	ctx context.Context,
	messages []memory.Message,
	_ *responseFormat,
) (string, error) {
	cfg := c.buildRequestParams()
	cfg.ResponseMIMEType = "application/json"

	v, err := c.request(ctx, messages, cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed to make typed google gemini request")
	}

	return v, nil
}

// request makes a request to the Gemini API. See Gemini API error codes here:
// https://ai.google.dev/gemini-api/docs/troubleshooting
func (c GoogleGemini) request(
	ctx context.Context,
	messages []memory.Message,
	cfg *genai.GenerateContentConfig,
) (string, error) {
	done, err := c.initRequest(messages)
	if err != nil {
		return "", err
	}
	defer done()

	system, contents := c.prepare(messages)
	cfg.SystemInstruction = system

	res, err := c.client.Models.GenerateContent(ctx, c.name, contents, cfg)
	if err != nil {
		return "", err
	}

	return cleanResponse(responseText(res)), nil
}

// prepare adheres memories to the `genai` library `content` type. System
// messages become the system instruction.
func (c GoogleGemini) prepare(messages []memory.Message) (
	*genai.Content,
	[]*genai.Content,
) {
	var (
		system   *genai.Content
		contents = make([]*genai.Content, 0, len(messages))
	)

	for _, v := range messages {
		part := &genai.Part{Text: v.Text}

		switch v.Role {
		case memory.SystemRole:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, part)
		case memory.ModelRole:
			contents = append(
				contents,
				&genai.Content{Role: "model", Parts: []*genai.Part{part}},
			)
		default:
			contents = append(
				contents,
				&genai.Content{Role: "user", Parts: []*genai.Part{part}},
			)
		}
	}

	return system, contents
}

// responseText joins the text parts of the first candidate.
func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 {
		return ""
	}

	content := res.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, p := range content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}

	return sb.String()
}

func (c GoogleGemini) String() string {
	return fmt.Sprintf("Google Gemini %s", c.name)
}
