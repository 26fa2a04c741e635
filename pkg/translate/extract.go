package translate

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const translatedTextField = "translated_text"

var (
	ErrNoFragments       = errors.New("no JSON object found in reply")
	ErrMalformedFragment = errors.New("malformed JSON object in reply")
	ErrMissingField      = errors.New("reply object has no string translated_text")
)

// fragmentEnd matches what may follow a closing brace for it to end an
// object: optional whitespace, then another object or the end of the reply.
var fragmentEnd = regexp.MustCompile(`\A\s*(?:\{|\z)`)

// fragments splits a reply into the JSON-object-shaped spans it contains.
// A span runs from a '{' to the nearest '}' that is followed only by
// whitespace and then another '{' or the end of the reply.
func fragments(raw string) []string {
	var (
		out []string
		i   int
	)

	for i < len(raw) {
		start := strings.IndexByte(raw[i:], '{')
		if start < 0 {
			break
		}
		start += i

		end := -1
		for j := start + 1; j < len(raw); j++ {
			if raw[j] == '}' && fragmentEnd.MatchString(raw[j+1:]) {
				end = j
				break
			}
		}

		if end < 0 {
			// No valid end from this brace; try the next one.
			i = start + 1
			continue
		}

		out = append(out, raw[start:end+1])
		i = end + 1
	}

	return out
}

// decodeFragment reads the translated text out of a single JSON object.
func decodeFragment(fragment string) (string, error) {
	if !gjson.Valid(fragment) {
		return "", errors.Wrapf(ErrMalformedFragment, "%q", fragment)
	}

	doc := gjson.Parse(fragment)
	if !doc.IsObject() {
		return "", errors.Wrapf(ErrMalformedFragment, "%q", fragment)
	}

	v := doc.Get(translatedTextField)
	if v.Type != gjson.String {
		return "", errors.Wrapf(ErrMissingField, "%q", fragment)
	}

	return v.String(), nil
}

// attemptDecode extracts the translation from a raw model reply. Every
// JSON object in the reply must decode; their translations are joined with
// newlines.
func attemptDecode(raw string) (string, error) {
	found := fragments(raw)
	if len(found) == 0 {
		return "", ErrNoFragments
	}

	texts := make([]string, 0, len(found))
	for _, f := range found {
		s, err := decodeFragment(f)
		if err != nil {
			return "", err
		}
		texts = append(texts, s)
	}

	return strings.Join(texts, "\n"), nil
}

// decodeOr returns the decoded translation of raw, or fallback with the
// reason decoding failed.
func decodeOr(raw, fallback string) (string, error) {
	s, err := attemptDecode(raw)
	if err != nil {
		return fallback, err
	}
	return s, nil
}
