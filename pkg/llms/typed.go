package llms

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
	"codeberg.org/n30w/ante/pkg/utils"
)

// responseFormat describes the JSON shape a reply must take.
type responseFormat struct {
	// name identifies the schema to providers that require one.
	name string

	// schema is the reflected schema, for providers that embed it in their
	// request parameters.
	schema any

	// raw is the encoded schema document.
	raw []byte
}

// typedRequester is implemented by providers able to constrain replies to a
// JSON schema.
type typedRequester interface {
	requestTyped(ctx context.Context, messages []memory.Message, f *responseFormat) (string, error)
}

func newResponseFormat[T any]() (*responseFormat, error) {
	raw, err := utils.GenerateJsonSchema[T]()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate json schema")
	}

	var v T
	name := strings.ToLower(reflect.TypeOf(v).Name())
	if name == "" {
		name = "response"
	}

	return &responseFormat{
		name:   name,
		schema: utils.GenerateSchema[T](),
		raw:    raw,
	}, nil
}

// RequestTyped asks r for a reply shaped like T. Providers without
// structured output support receive a plain request.
func RequestTyped[T any](
	ctx context.Context,
	r Requester,
	messages []memory.Message,
) (string, error) {
	tr, ok := r.(typedRequester)
	if !ok {
		return r.Request(ctx, messages)
	}

	f, err := newResponseFormat[T]()
	if err != nil {
		return "", err
	}

	return tr.requestTyped(ctx, messages, f)
}

type typed[T any] struct {
	Requester
}

// Typed wraps r so that every request asks for a reply shaped like T.
func Typed[T any](r Requester) Requester {
	return typed[T]{Requester: r}
}

func (t typed[T]) Request(ctx context.Context, messages []memory.Message) (string, error) {
	return RequestTyped[T](ctx, t.Requester, messages)
}

func (t typed[T]) String() string {
	var v T
	return fmt.Sprintf("%s (typed %T)", t.Requester, v)
}
