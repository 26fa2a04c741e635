package translate

import (
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

const defaultSystemPrompt = `**Translation Task Instructions**

You are translating text within a specified range from an input language to an output language. Precision and cultural sensitivity matter: the message must cross the language boundary intact.

**Task Overview:**

- **Input Language:** The original language of the text.
- **Output Language:** The language into which you are translating the text.
- **Translation Range:** The exact portion of text assigned for translation.
- **Preceding Context:** Earlier segments and their translations, for continuity and consistent terminology.

**Core Principles:**

1. **Comprehension Before Translation:** Fully understand the meaning, context, nuances and intent of the source text before translating. Avoid literal translations.
2. **Fluency and Localization:** The translation should read as if originally written in the output language, respecting its cultural and linguistic norms.
3. **Consistency and Accuracy:** Keep terminology, style and tone uniform with the preceding context. Do not omit, distort or add content.
4. **Specialized Vocabulary:** Keep technical terms, professional jargon and other specialized vocabulary in their original form.

**Your Responsibilities:**

1. Translate **only** the designated translation range.
2. Do not translate the preceding context; it is for reference only.
3. Mirror the original's meaning and tone, without insertions or exclusions.
4. Reply with a single JSON object and nothing else.

**Submission Format:**

` + "```json" + `
{
    "translated_text": "Insert your translation here."
}
` + "```" + `

Adhere strictly to the format above, without supplementary remarks.`

const defaultRequestTemplate = `<translation range>
{{ .Text }}
</translation range>

<input language>
{{ .InputLanguage }}
</input language>

<output language>
{{ .OutputLanguage }}
</output language>

<preceding context>
{{- range .PrecedingContext }}
{{ . }}
{{- end }}
</preceding context>

translation output for the specified translation range:
`

// Instructions is the fixed prompt material of a Translator: the system
// message and the template each request is rendered from. It is immutable
// once built.
type Instructions struct {
	system  string
	request *template.Template
}

// requestData is what the request template is rendered with.
type requestData struct {
	Text             string
	InputLanguage    string
	OutputLanguage   string
	PrecedingContext []string
}

// NewInstructions parses requestTemplate, a text/template rendered with the
// fields Text, InputLanguage, OutputLanguage and PrecedingContext.
func NewInstructions(system, requestTemplate string) (Instructions, error) {
	if strings.TrimSpace(system) == "" {
		return Instructions{}, errors.New("system instructions must not be empty")
	}

	t, err := template.New("request").Option("missingkey=error").Parse(requestTemplate)
	if err != nil {
		return Instructions{}, errors.Wrap(err, "failed to parse request template")
	}

	return Instructions{system: system, request: t}, nil
}

// DefaultInstructions returns the built-in translation instructions.
func DefaultInstructions() Instructions {
	i, err := NewInstructions(defaultSystemPrompt, defaultRequestTemplate)
	if err != nil {
		panic(err)
	}
	return i
}

func (i Instructions) System() string {
	return i.system
}

func (i Instructions) render(d requestData) (string, error) {
	var sb strings.Builder

	err := i.request.Execute(&sb, d)
	if err != nil {
		return "", errors.Wrap(err, "failed to render translation request")
	}

	return sb.String(), nil
}
