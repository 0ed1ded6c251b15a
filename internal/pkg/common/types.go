package common

// ChatRequest OpenRouter chat completions 請求
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// ChatMessage 消息結構
type ChatMessage struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content 內容結構
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ChatResponse AI 響應結構
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// Usage 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TextMessage 建立單一文字內容的消息
func TextMessage(role, text string) ChatMessage {
	return ChatMessage{Role: role, Content: []Content{{Type: "text", Text: text}}}
}
