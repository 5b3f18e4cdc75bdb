// Package aiprovider wraps AI calls with retry, auth-error short-circuiting,
// and graceful degradation to an empty string — the single point every
// other component calls through rather than touching the SDK directly.
package aiprovider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cairnlog/cairnlog/internal/debug"
	"github.com/cairnlog/cairnlog/internal/obs"
)

const (
	maxAttempts    = 3
	retryDelay     = 1 * time.Second
	perAttemptTO   = 30 * time.Second
	defaultModel   = "claude-3-5-haiku-20241022"
)

var placeholderKeys = []string{
	"your-openai-api-key-here",
	"placeholder",
	"change-me",
	"your-key",
	"key-here",
	"your_openai_api_key_here",
	"change_me",
	"your_key",
	"key_here",
}

// Invoker calls an AI provider for the core pipeline's two AI-driven steps:
// boundary detection and section generation.
type Invoker struct {
	client    anthropic.Client
	model     string
	apiKey    string
	apiKeyEnv string

	warnOnce sync.Once
}

// New builds an Invoker from an API key (and the env var name it came from,
// used for auth-error matching) and an optional model override.
func New(apiKey, apiKeyEnvName, model string) *Invoker {
	if model == "" {
		model = defaultModel
	}
	return &Invoker{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		apiKey:    apiKey,
		apiKeyEnv: apiKeyEnvName,
	}
}

// isPlaceholder reports whether apiKey is missing or matches one of the
// known placeholder literals, case-insensitively, as a substring.
func isPlaceholder(apiKey string) bool {
	if apiKey == "" {
		return true
	}
	lower := strings.ToLower(apiKey)
	for _, p := range placeholderKeys {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// traceWriter is the optional verbose AI prompt/response log, created once
// CAIRN_DEBUG_AI is seen to be set. Unlike internal/obs's coarse span log,
// this records full prompt and response bodies, so it rotates by size
// rather than growing unbounded.
var (
	traceOnce   sync.Once
	traceWriter *lumberjack.Logger
)

func trace() *lumberjack.Logger {
	if os.Getenv("CAIRN_DEBUG_AI") == "" {
		return nil
	}
	traceOnce.Do(func() {
		traceWriter = &lumberjack.Logger{
			Filename:   "cairn-ai-trace.log",
			MaxSize:    10,
			MaxBackups: 3,
		}
	})
	return traceWriter
}

// Invoke sends system as the system prompt and user as the user message,
// retrying transient failures up to 3 times with a 1-second delay. Auth
// errors are never retried. Any unrecovered failure degrades to "".
func (inv *Invoker) Invoke(ctx context.Context, system, user string) (string, error) {
	span := obs.StartSpan("ai.invoke")
	defer span.End()
	callStart := time.Now()

	if isPlaceholder(inv.apiKey) {
		inv.warnOnce.Do(func() {
			debug.Logf("aiprovider: API key missing or placeholder, AI calls will return empty")
		})
		span.SetBool("ai.success", false)
		span.SetInt("ai.latency_ms", time.Since(callStart).Milliseconds())
		return "", nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		start := time.Now()
		text, err := inv.attempt(ctx, system, user)
		latency := time.Since(start)

		if w := trace(); w != nil {
			fmt.Fprintf(w, "=== attempt %d model=%s latency=%s err=%v ===\n--- system ---\n%s\n--- user ---\n%s\n--- response ---\n%s\n\n",
				attempt, inv.model, latency, err, system, user, text)
		}

		if err == nil {
			span.SetBool("ai.success", true)
			span.SetInt("ai.latency_ms", latency.Milliseconds())
			return text, nil
		}

		lastErr = err
		if !isRetryable(err, inv.apiKeyEnv) {
			break
		}
		if attempt < maxAttempts {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				lastErr = ctx.Err()
				attempt = maxAttempts
			}
		}
	}

	span.SetBool("ai.success", false)
	span.SetInt("ai.latency_ms", time.Since(callStart).Milliseconds())
	span.SetString("ai.error_type", errorType(lastErr))
	debug.Logf("aiprovider: invocation exhausted retries: %v", lastErr)
	return "", nil
}

func (inv *Invoker) attempt(ctx context.Context, system, user string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, perAttemptTO)
	defer cancel()

	message, err := inv.client.Messages.New(cctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(inv.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}

	if len(message.Content) == 0 {
		return "", nil
	}
	if message.Content[0].Type != "text" {
		return "", nil
	}
	return message.Content[0].Text, nil
}

// isRetryable classifies an error as retryable unless it's a context
// cancellation or looks like an authentication failure: either the
// stringified error contains "api key", or it contains the configured key's
// env var name. An *anthropic.Error is retried only for status 429 or 5xx;
// any other status (401, 400, ...) is not retried.
func isRetryable(err error, apiKeyEnvName string) bool {
	if err == nil {
		return false
	}
	if err == context.Canceled || err == context.DeadlineExceeded {
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api key") {
		return false
	}
	if apiKeyEnvName != "" && strings.Contains(msg, strings.ToLower(apiKeyEnvName)) {
		return false
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 || apiErr.StatusCode >= 500 {
			return true
		}
		return false
	}

	return true
}

func errorType(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return "anthropic.Error"
	}
	return "error"
}
