package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 10 * time.Second

	prompt = "Generate a short, engaging news article snippet or blog post about a mysterious " +
		"winter phenomenon or a cozy winter cabin retreat. Keep it under 200 words. Include a catchy headline."

	maxResponseBytes = 1 << 20
)

var (
	errNoAPIKey     = errors.New("content: no api key")
	errNoCandidates = errors.New("content: response has no candidates")
	errEmptyText    = errors.New("content: response text is empty")
	errNoHeadline   = errors.New("content: generated article has no headline")
)

// Client asks the Gemini generateContent endpoint for an article.
type Client struct {
	BaseURL string
	Model   string
	APIKey  string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

var _ Generator = (*Client)(nil)

func NewClient(apiKey, model string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		Model:   model,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

// Generate returns a fresh article, or Fallback if anything goes wrong.
func (c *Client) Generate(ctx context.Context) Content {
	out, err := c.generate(ctx)
	if err != nil {
		c.Log.WithError(err).WithField("model", c.Model).Warn("content generation failed, using fallback")
		return Fallback()
	}
	return out
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Items      *schema           `json:"items,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
		ResponseSchema   schema `json:"responseSchema"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func newRequest() generateRequest {
	var req generateRequest
	req.Contents = []struct {
		Parts []part `json:"parts"`
	}{{Parts: []part{{Text: prompt}}}}
	req.GenerationConfig.ResponseMimeType = "application/json"
	req.GenerationConfig.ResponseSchema = schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"headline": {Type: "STRING"},
			"body":     {Type: "STRING"},
			"tags":     {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		},
		Required: []string{"headline", "body", "tags"},
	}
	return req
}

func (c *Client) generate(ctx context.Context) (Content, error) {
	if c.APIKey == "" {
		return Content{}, errNoAPIKey
	}

	body, err := json.Marshal(newRequest())
	if err != nil {
		return Content{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.BaseURL, "/"), c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Content{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Content{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Content{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Content{}, fmt.Errorf("content: status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return Content{}, fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return Content{}, errNoCandidates
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return Content{}, errEmptyText
	}

	var out Content
	if err := json.Unmarshal([]byte(text.String()), &out); err != nil {
		return Content{}, fmt.Errorf("decode article: %w", err)
	}
	if strings.TrimSpace(out.Headline) == "" {
		return Content{}, errNoHeadline
	}
	return out, nil
}
