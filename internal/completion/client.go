// Package completion implements the text-completion collaborator: a thin
// client for the OpenAI chat-completions API that answers the utterances the
// command interpreter could not translate into structured actions.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	maxTokens   = 500
	temperature = 0.7
)

// financialSystemPrompt mirrors the production assistant persona. Unknown
// context tags fall back to it as well.
const financialSystemPrompt = `Você é MTN, um assistente financeiro pessoal especializado em ajudar usuários brasileiros com suas finanças. Suas principais funções incluem:

1. Ajudar com gastos e despesas
2. Criar e acompanhar metas financeiras
3. Gerenciar investimentos
4. Fornecer insights financeiros
5. Responder perguntas sobre finanças pessoais

Diretrizes:
- Seja amigável, profissional e útil
- Use português brasileiro
- Forneça respostas práticas e acionáveis
- Se não souber algo específico, seja honesto
- Mantenha foco em finanças pessoais
- Use emojis ocasionalmente para tornar as respostas mais amigáveis

Você pode executar comandos diretos quando o usuário pedir para:
- Adicionar gastos (ex: "adicionar 100 reais em gastos médicos")
- Criar metas (ex: "criar meta de economizar 1000 reais")
- Adicionar investimentos

Sempre confirme quando uma ação foi executada com sucesso.`

// systemPrompts selects the persona by context tag.
var systemPrompts = map[string]string{
	"financial_assistant": financialSystemPrompt,
}

// Client talks to an OpenAI-compatible chat-completions endpoint. One
// request per Complete call; no streaming, no retry.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests, proxies).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one prompt and returns the completion text. The context tag
// selects the system prompt; unknown tags use the financial persona.
func (c *Client) Complete(ctx context.Context, prompt, contextTag string) (string, error) {
	system, ok := systemPrompts[contextTag]
	if !ok {
		system = financialSystemPrompt
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "Completion API returned non-OK status",
			"status", resp.StatusCode,
			"model", c.model)
		return "", fmt.Errorf("completion api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("completion api error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return apiResp.Choices[0].Message.Content, nil
}
