// qaforge generates synthetic tabular QA test data, either from a field
// schema or from a free-text requirement, and exports it to CSV.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "qaforge",
	Short: "Generate synthetic tabular test data",
	Long: `qaforge generates synthetic tabular test data and exports it to CSV.

Two pipelines are available:
  generate  schema-driven: deterministic fakers plus optional AI text fields
  plan      requirement-driven: AI-synthesized test plan expanded per scenario

Environment:
  QAFORGE_PROVIDER         Text provider: gemini (default) or openai
  GEMINI_API_KEY           Gemini API key (enables ai_text and plan mode)
  GEMINI_MODEL             Gemini model name (default gemini-1.5-flash)
  OPENAI_API_KEY           OpenAI-compatible API key
  OPENAI_MODEL             OpenAI model name (default gpt-4o-mini)
  QAFORGE_WORKERS          Concurrent scenario requests (default 1)
  QAFORGE_MAX_RETRIES      Retries per transient service failure (default 3)
  QAFORGE_REQUEST_TIMEOUT  Per-request timeout (default 60s)
  QAFORGE_RATE_LIMIT_RPS   Global request rate limit, 0 disables

A .env file in the working directory is loaded when present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Credentials may live in a local .env file; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
