package llms

var defaultDeepseekRequestConfig = RequestConfig{
	Temperature: 0,
	Seed:        1,
	TopP:        1,
	MaxTokens:   4096,
}

var defaultChatGPTRequestConfig = RequestConfig{
	Temperature: 0,
	Seed:        1,
	TopP:        1,
	MaxTokens:   6144,
}

var defaultGeminiRequestConfig = RequestConfig{
	Temperature: 0,
	Seed:        1,
	TopP:        1,
	MaxTokens:   8192,
}

var defaultOllamaRequestConfig = RequestConfig{
	Temperature: 0,
	Seed:        1,
	TopP:        1,
	MaxTokens:   3000,
}
