package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/providers/http/client"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultModel       = "gpt-4o"
	DefaultLanguage    = "Japanese"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2000
)

// ErrEmptyResponse is returned when the API answers without a choice
var ErrEmptyResponse = errors.New("empty completion")

// Options configures the chat-completions translator
type Options struct {
	Endpoint    string
	APIKey      string
	Model       string
	Language    string
	Temperature float64
	MaxTokens   int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenAI translates with the chat completions endpoint
type OpenAI struct {
	client  *client.Client
	opts    Options
	prompt  string
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewOpenAI creates a translator on c. The endpoint and key from opts are
// applied to c.
func NewOpenAI(c *client.Client, opts Options, metrics *monitoring.Metrics, logger *zap.Logger) *OpenAI {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Endpoint != "" {
		c.SetBaseURL(strings.TrimRight(opts.Endpoint, "/"))
	}
	if opts.APIKey != "" {
		c.SetBearerAuth(opts.APIKey)
	}
	c.SetHeader("Content-Type", "application/json")

	return &OpenAI{
		client:  c,
		opts:    opts,
		prompt:  systemPrompt(opts.Language),
		metrics: metrics,
		logger:  logger,
	}
}

// Language returns the target language
func (o *OpenAI) Language() string {
	return o.opts.Language
}

func systemPrompt(language string) string {
	return fmt.Sprintf(`You are a professional technical translator specializing in IT and cloud security.
Translate the following English text to %s, maintaining:
1. Technical accuracy
2. Proper IT terminology in %s
3. Markdown formatting (keep links, images, code blocks as-is)
4. Natural %s expression

Important:
- Keep URLs, image links, and code blocks unchanged
- Translate alt text in images
- Maintain list formatting
- Keep product names and proper nouns in English`, language, language, language)
}

func (o *OpenAI) userPrompt(text, hint string) string {
	prompt := fmt.Sprintf("Translate to %s:\n\n%s", o.opts.Language, text)
	if hint != "" {
		prompt = fmt.Sprintf("Context: %s\n\n%s", hint, prompt)
	}
	return prompt
}

// Translate sends text to the model. Blank text is returned unchanged
// without a request.
func (o *OpenAI) Translate(ctx context.Context, text, hint string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	timer := monitoring.NewTimer()
	out, err := o.complete(ctx, text, hint)
	o.metrics.RecordTranslation(err == nil, timer.Elapsed())
	if err != nil {
		o.logger.Warn("translation failed", zap.Int("chars", len(text)), zap.Error(err))
		return "", err
	}
	return out, nil
}

func (o *OpenAI) complete(ctx context.Context, text, hint string) (string, error) {
	body, err := sonic.Marshal(chatRequest{
		Model: o.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: o.prompt},
			{Role: "user", Content: o.userPrompt(text, hint)},
		},
		Temperature: o.opts.Temperature,
		MaxTokens:   o.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	resp, err := o.client.Execute(ctx, http.MethodPost, "/chat/completions", func(r *resty.Request) {
		r.SetBody(body)
	})
	if err != nil {
		var se *client.StatusError
		if errors.As(err, &se) && resp != nil {
			if msg := apiMessage(resp.Body()); msg != "" {
				return "", fmt.Errorf("%w: %s", err, msg)
			}
		}
		return "", err
	}

	var out chatResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("chat completion: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func apiMessage(body []byte) string {
	var out chatResponse
	if err := sonic.Unmarshal(body, &out); err != nil || out.Error == nil {
		return ""
	}
	return out.Error.Message
}
