// Package openai talks to an OpenAI-compatible HTTP API for chat
// completions, image generation and speech synthesis.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nodeBoard/configs"
	"nodeBoard/internal/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxAudioBytes = 25 << 20

type Options struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	ImageModel  string
	SpeechModel string
	Timeout     time.Duration
}

func OptionsFromConfig(config *configs.Config) Options {
	return Options{
		APIKey:      config.Viper.GetString("openai.api_key"),
		BaseURL:     config.Viper.GetString("openai.base_url"),
		TextModel:   config.Viper.GetString("openai.text_model"),
		ImageModel:  config.Viper.GetString("openai.image_model"),
		SpeechModel: config.Viper.GetString("openai.speech_model"),
		Timeout:     config.Duration("openai.timeout", 120*time.Second),
	}
}

type Client struct {
	options    Options
	httpClient *http.Client
	tracer     trace.Tracer
}

func NewClient(options Options) *Client {
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")
	return &Client{
		options:    options,
		httpClient: &http.Client{Timeout: options.Timeout},
		tracer:     otel.Tracer("nodeBoard/openai"),
	}
}

// ProviderError is returned when the API answers with a non-200 status.
type ProviderError struct {
	StatusCode int
	Type       string
	Message    string
}

func (err *ProviderError) Error() string {
	if err.Type != "" {
		return fmt.Sprintf("openai: HTTP %d: %s: %s", err.StatusCode, err.Type, err.Message)
	}
	return fmt.Sprintf("openai: HTTP %d: %s", err.StatusCode, err.Message)
}

func (err *ProviderError) IsRateLimited() bool {
	return err.StatusCode == http.StatusTooManyRequests
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, system, prompt string) (text string, err error) {
	ctx, span := c.startSpan(ctx, "openai.complete", c.options.TextModel)
	defer func() { endSpan(span, err) }()

	request := chatRequest{Model: c.options.TextModel}
	if system != "" {
		request.Messages = append(request.Messages, chatMessage{Role: "system", Content: system})
	}
	request.Messages = append(request.Messages, chatMessage{Role: "user", Content: prompt})

	var response chatResponse
	if err := c.postJSON(ctx, "/chat/completions", request, &response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("openai: completion returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (data []byte, contentType string, err error) {
	ctx, span := c.startSpan(ctx, "openai.generate_image", c.options.ImageModel)
	defer func() { endSpan(span, err) }()

	request := imageRequest{
		Model:          c.options.ImageModel,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "b64_json",
	}
	var response imageResponse
	if err := c.postJSON(ctx, "/images/generations", request, &response); err != nil {
		return nil, "", err
	}
	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return nil, "", fmt.Errorf("openai: image generation returned no data")
	}
	data, err = base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, "", fmt.Errorf("openai: decoding image: %w", err)
	}
	return data, "image/png", nil
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

func (c *Client) Synthesize(ctx context.Context, text, voice string) (data []byte, contentType string, err error) {
	ctx, span := c.startSpan(ctx, "openai.synthesize", c.options.SpeechModel)
	defer func() { endSpan(span, err) }()

	httpResponse, err := c.post(ctx, "/audio/speech", speechRequest{
		Model:          c.options.SpeechModel,
		Input:          text,
		Voice:          voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, "", err
	}
	defer httpResponse.Body.Close()

	data, err = io.ReadAll(io.LimitReader(httpResponse.Body, maxAudioBytes))
	if err != nil {
		return nil, "", fmt.Errorf("openai: reading audio: %w", err)
	}
	contentType = httpResponse.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = "audio/mpeg"
	}
	return data, contentType, nil
}

func (c *Client) postJSON(ctx context.Context, path string, wireRequest any, wireResponse any) error {
	httpResponse, err := c.post(ctx, path, wireRequest)
	if err != nil {
		return err
	}
	defer httpResponse.Body.Close()

	if err := json.NewDecoder(httpResponse.Body).Decode(wireResponse); err != nil {
		return fmt.Errorf("openai: decoding response: %w", err)
	}
	return nil
}

// post sends wireRequest as JSON. On success the caller closes the body;
// on error it is already closed.
func (c *Client) post(ctx context.Context, path string, wireRequest any) (*http.Response, error) {
	if c.options.APIKey == "" {
		return nil, errs.ErrProviderNotConfigured
	}

	body, err := json.Marshal(wireRequest)
	if err != nil {
		return nil, fmt.Errorf("openai: marshaling request: %w", err)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: creating request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+c.options.APIKey)

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("openai: sending request: %w", err)
	}
	if httpResponse.StatusCode != http.StatusOK {
		defer httpResponse.Body.Close()
		return nil, readProviderError(httpResponse)
	}
	return httpResponse, nil
}

// readProviderError understands {"error":{"type":"...","message":"..."}}
// and falls back to the raw body.
func readProviderError(httpResponse *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 4096))

	var wireError struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Error.Message != "" {
		return &ProviderError{
			StatusCode: httpResponse.StatusCode,
			Type:       wireError.Error.Type,
			Message:    wireError.Error.Message,
		}
	}
	return &ProviderError{
		StatusCode: httpResponse.StatusCode,
		Message:    string(body),
	}
}

func (c *Client) startSpan(ctx context.Context, name, model string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("ai.model", model),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
