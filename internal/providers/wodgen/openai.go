package wodgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

const (
	openAIDefaultTimeout = 30 * time.Second
	defaultOpenAIModel   = "gpt-3.5-turbo"

	// Sampling favors determinism over creativity; the ceiling is generous
	// enough for a full four-section plan.
	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAIGenerator produces workout plans through the OpenAI chat completions API.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIGenerator(opts OpenAIOptions) (*OpenAIGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAIGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Generate builds the instruction prompt, invokes the completion API and
// defensively parses its answer into a Plan.
func (o *OpenAIGenerator) Generate(ctx context.Context, params Params) (*Plan, error) {
	payload := openAIChatRequest{
		Model:       o.model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		Messages: []openAIMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: buildGeneratePrompt(params)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", domain.ErrUpstream, err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: openai status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", domain.ErrUpstream)
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("%w: empty completion content", domain.ErrUpstream)
	}

	return ParsePlan(text)
}

var _ Generator = (*OpenAIGenerator)(nil)
