package llms

import (
	"testing"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    LLMProvider
		wantErr bool
	}{
		{in: "ollama", want: ProviderOllama},
		{in: " ChatGPT ", want: ProviderChatGPT},
		{in: "openai", want: ProviderChatGPT},
		{in: "deepseek", want: ProviderDeepseek},
		{in: "gemini", want: ProviderGoogleGemini},
		{in: "claude", want: InvalidProvider, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(
			tt.in, func(t *testing.T) {
				got, err := ParseProvider(tt.in)
				if (err != nil) != tt.wantErr {
					t.Fatalf("ParseProvider() error = %v, wantErr %v", err, tt.wantErr)
				}
				if got != tt.want {
					t.Errorf("ParseProvider() got = %v, want %v", got, tt.want)
				}
			},
		)
	}
}

func TestModelConfig_validate(t *testing.T) {
	valid := RequestConfig{Temperature: 0.2, TopP: 1, MaxTokens: 10}

	tests := []struct {
		name    string
		mc      ModelConfig
		wantErr bool
	}{
		{
			name: "valid",
			mc:   ModelConfig{Provider: ProviderOllama, RequestConfig: valid},
		},
		{
			name:    "invalid provider",
			mc:      ModelConfig{Provider: InvalidProvider, RequestConfig: valid},
			wantErr: true,
		},
		{
			name: "temperature too high",
			mc: ModelConfig{
				Provider:      ProviderOllama,
				RequestConfig: RequestConfig{Temperature: 1.5, TopP: 1, MaxTokens: 10},
			},
			wantErr: true,
		},
		{
			name: "no tokens",
			mc: ModelConfig{
				Provider:      ProviderOllama,
				RequestConfig: RequestConfig{TopP: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				err := tt.mc.validate()
				if (err != nil) != tt.wantErr {
					t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			},
		)
	}
}

func TestWithDefaults_KeepsTemperature(t *testing.T) {
	mc := withDefaults(
		ModelConfig{Provider: ProviderDeepseek, Temperature: 0.4},
		defaultDeepseekRequestConfig,
	)

	if mc.RequestConfig.Temperature != 0.4 {
		t.Errorf("Temperature = %v, want 0.4", mc.RequestConfig.Temperature)
	}

	if mc.MaxTokens != defaultDeepseekRequestConfig.MaxTokens {
		t.Errorf("MaxTokens = %d, want default", mc.MaxTokens)
	}
}

func TestSetTemperature(t *testing.T) {
	tests := []struct {
		provider LLMProvider
		want     float64
	}{
		{ProviderOllama, 0.5},
		{ProviderChatGPT, 0.5},
		{ProviderDeepseek, 1.0},
		{ProviderGoogleGemini, 1.0},
	}

	for _, tt := range tests {
		l := &llm{model: tt.provider}
		if got := l.setTemperature(0.5); got != tt.want {
			t.Errorf("%s setTemperature(0.5) = %v, want %v", tt.provider, got, tt.want)
		}
	}
}

func TestCleanResponse(t *testing.T) {
	in := "<think>\nweighing options\n</think>\n  {\"translated_text\": \"hi\"}\n"
	want := `{"translated_text": "hi"}`

	if got := cleanResponse(in); got != want {
		t.Errorf("cleanResponse() = %q, want %q", got, want)
	}
}

func TestModelName(t *testing.T) {
	mc := ModelConfig{Provider: ProviderOllama}
	if got := mc.modelName(); got != ProviderOllama.String() {
		t.Errorf("modelName() = %q, want provider default", got)
	}

	mc.Name = "llama3"
	if got := mc.modelName(); got != "llama3" {
		t.Errorf("modelName() = %q, want llama3", got)
	}
}
