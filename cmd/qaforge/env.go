package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/qaforge/qaforge/pkg/redact"
	"github.com/qaforge/qaforge/pkg/rowgen"
	"github.com/qaforge/qaforge/pkg/textgen"
	"github.com/qaforge/qaforge/pkg/textgen/gemini"
	openaisvc "github.com/qaforge/qaforge/pkg/textgen/openai"
)

// loadService builds the text-generation capability from the environment.
//
// A missing credential is a degradation, not a failure: the returned service
// is textgen.Unavailable, which disables ai_text generation and the
// requirement-driven pipeline while leaving the deterministic fakers usable.
func loadService(ctx context.Context, logger *slog.Logger) textgen.Service {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("QAFORGE_PROVIDER")))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if apiKey == "" {
			logger.Warn("GEMINI_API_KEY not set; ai_text and plan generation disabled")
			return textgen.Unavailable{Reason: "GEMINI_API_KEY not set"}
		}
		svc, err := gemini.New(ctx, gemini.Config{
			APIKey:  apiKey,
			Model:   envString("GEMINI_MODEL", "gemini-1.5-flash"),
			BaseURL: strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		})
		if err != nil {
			logger.Warn("gemini client unavailable; ai_text and plan generation disabled",
				"error", redact.Secrets(err.Error()))
			return textgen.Unavailable{Reason: "gemini client construction failed"}
		}
		return svc
	case "openai":
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY not set; ai_text and plan generation disabled")
			return textgen.Unavailable{Reason: "OPENAI_API_KEY not set"}
		}
		svc, err := openaisvc.New(openaisvc.Config{
			APIKey:  apiKey,
			Model:   envString("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		})
		if err != nil {
			logger.Warn("openai client unavailable; ai_text and plan generation disabled",
				"error", redact.Secrets(err.Error()))
			return textgen.Unavailable{Reason: "openai client construction failed"}
		}
		return svc
	default:
		logger.Warn("unknown provider; ai_text and plan generation disabled", "provider", provider)
		return textgen.Unavailable{Reason: fmt.Sprintf("unknown provider %q", provider)}
	}
}

func loadScenarioOptionsFromEnv() (rowgen.ScenarioOptions, error) {
	workers, err := envInt("QAFORGE_WORKERS", 1)
	if err != nil {
		return rowgen.ScenarioOptions{}, err
	}
	maxRetries, err := envInt("QAFORGE_MAX_RETRIES", 3)
	if err != nil {
		return rowgen.ScenarioOptions{}, err
	}
	requestTimeout, err := envDuration("QAFORGE_REQUEST_TIMEOUT", 60*time.Second)
	if err != nil {
		return rowgen.ScenarioOptions{}, err
	}
	rateLimitRPS, err := envFloat("QAFORGE_RATE_LIMIT_RPS", 0)
	if err != nil {
		return rowgen.ScenarioOptions{}, err
	}

	return rowgen.ScenarioOptions{
		Workers:        workers,
		MaxRetries:     maxRetries,
		RequestTimeout: requestTimeout,
		RateLimitRPS:   rateLimitRPS,
	}, nil
}

func envString(varName, fallback string) string {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(varName string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envFloat(varName string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envDuration(varName string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}
