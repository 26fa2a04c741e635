// Package translate sends text segments to a language model for
// translation, feeding it the most recent translations as context.
package translate

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/history"
	"codeberg.org/n30w/ante/pkg/llms"
	"codeberg.org/n30w/ante/pkg/memory"
)

// Request is one segment to translate.
type Request struct {
	Text           string
	InputLanguage  string
	OutputLanguage string

	// IncludePrecedingContext sends the latest history entries along with
	// the segment.
	IncludePrecedingContext bool
}

// Result pairs a segment with its translation. When the model's reply
// cannot be decoded, TranslatedText is the original text unchanged.
type Result struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
}

// Response is the reply shape requested from models supporting structured
// output.
type Response struct {
	TranslatedText string `json:"translated_text" jsonschema_description:"The translation of the translation range"`
}

// Archiver receives every completed translation.
type Archiver interface {
	Save(ctx context.Context, r memory.TranslationRecord) error
}

type Translator struct {
	llm          llms.Requester
	history      *history.Buffer
	instructions Instructions
	archive      Archiver
	logger       *log.Logger
}

type Option func(*Translator)

// WithArchive stores every result in a, in addition to the history.
func WithArchive(a Archiver) Option {
	return func(t *Translator) {
		t.archive = a
	}
}

func New(
	llm llms.Requester,
	h *history.Buffer,
	instructions Instructions,
	logger *log.Logger,
	opts ...Option,
) (*Translator, error) {
	if llm == nil {
		return nil, errors.New("translator requires a language model")
	}

	if h == nil {
		return nil, errors.New("translator requires a history buffer")
	}

	if instructions.request == nil {
		return nil, errors.New("translator requires instructions")
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	t := &Translator{
		llm:          llm,
		history:      h,
		instructions: instructions,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Translate translates r.Text and records the outcome in the history. A
// reply that holds no usable translation is not an error: the result then
// carries the original text as its translation.
func (t *Translator) Translate(ctx context.Context, r Request) (Result, error) {
	messages, err := t.buildMessages(r)
	if err != nil {
		return Result{}, err
	}

	reply, err := t.llm.Request(ctx, messages)
	if err != nil {
		return Result{}, errors.Wrapf(err, "failed to translate with %s", t.llm)
	}

	translated, err := decodeOr(reply, r.Text)
	if err != nil {
		t.logger.Debug(
			"Falling back to original text",
			"reason", err,
			"reply", reply,
		)
	}

	result := Result{
		OriginalText:   r.Text,
		TranslatedText: translated,
	}

	err = t.record(ctx, r, result)
	if err != nil {
		return result, err
	}

	return result, nil
}

func (t *Translator) buildMessages(r Request) ([]memory.Message, error) {
	d := requestData{
		Text:             strings.TrimSpace(r.Text),
		InputLanguage:    r.InputLanguage,
		OutputLanguage:   r.OutputLanguage,
		PrecedingContext: []string{},
	}

	if r.IncludePrecedingContext {
		d.PrecedingContext = t.history.Latest()
	}

	request, err := t.instructions.render(d)
	if err != nil {
		return nil, err
	}

	return []memory.Message{
		memory.NewMessage(memory.SystemRole, t.instructions.System()),
		memory.NewMessage(memory.UserRole, request),
	}, nil
}

func (t *Translator) record(ctx context.Context, r Request, result Result) error {
	entry, err := encodeEntry(result)
	if err != nil {
		return err
	}

	err = t.history.Push(entry)
	if err != nil {
		return errors.Wrap(err, "failed to record translation history")
	}

	if t.archive == nil {
		return nil
	}

	err = t.archive.Save(
		ctx, memory.TranslationRecord{
			OriginalText:   result.OriginalText,
			TranslatedText: result.TranslatedText,
			InputLanguage:  r.InputLanguage,
			OutputLanguage: r.OutputLanguage,
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to archive translation")
	}

	return nil
}

// encodeEntry renders result as a single-line JSON history entry, leaving
// HTML characters unescaped.
func encodeEntry(result Result) (string, error) {
	var sb strings.Builder

	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)

	err := enc.Encode(result)
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize translation")
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
