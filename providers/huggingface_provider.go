package providers

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"travelcast.app/config"
	"travelcast.app/errors"
)

// HuggingFaceProvider implements AdvisoryProvider against an OpenAI-compatible
// chat completions endpoint on the HuggingFace router. Calls run through a
// circuit breaker so a struggling model endpoint fails fast instead of
// eating the full timeout on every request.
type HuggingFaceProvider struct {
	model   string
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHuggingFaceProvider creates a new hosted-model advisory provider
func NewHuggingFaceProvider(config *config.AdvisoryConfig) *HuggingFaceProvider {
	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetAuthToken(config.APIToken).
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "advisory",
		Timeout: config.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerThreshold
		},
	})

	return &HuggingFaceProvider{
		model:   config.Model,
		client:  client,
		breaker: breaker,
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateAdvice sends the prompt to the hosted model and returns the first
// choice's text. No retries; an open breaker fails immediately.
func (p *HuggingFaceProvider) GenerateAdvice(prompt string) (string, error) {
	if prompt == "" {
		return "", errors.NewValidationError("prompt cannot be empty")
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.complete(prompt)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", errors.NewExternalAPIError("advisory service temporarily unavailable", err)
		}
		return "", err
	}

	return result.(string), nil
}

func (p *HuggingFaceProvider) complete(prompt string) (string, error) {
	body := chatCompletionRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	resp, err := p.client.R().
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", errors.NewExternalAPIError("failed to reach advisory service", err)
	}

	if resp.StatusCode() != 200 {
		return "", errors.NewExternalAPIError(fmt.Sprintf("advisory service returned status code %d", resp.StatusCode()), nil)
	}

	var payload chatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", errors.NewExternalAPIError("failed to decode advisory response", err)
	}

	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return "", errors.NewExternalAPIError("advisory response contained no choices", nil)
	}

	return payload.Choices[0].Message.Content, nil
}
