// Package gen maps abstract field types and cases to concrete value
// producers: deterministic fakers for the built-in types, plus an AI-backed
// context-text type seeded with a per-field prompt.
package gen

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/qaforge/qaforge/pkg/redact"
	"github.com/qaforge/qaforge/pkg/textgen"
)

// TypeAIText is the context-text type: its positive case is produced by the
// text-generation capability seeded with the field's context prompt.
const TypeAIText = "ai_text"

const (
	// AIDisabled is the value produced for ai_text when no text service is
	// configured. Bound once at registry construction.
	AIDisabled = "AI_DISABLED"
	// AIGenerationError is the value recorded when a text service call
	// fails during generation. The failure never aborts the dataset.
	AIGenerationError = "AI_GENERATION_ERROR"
	// AIInvalidPrompt is the fixed negative case for ai_text; validity of
	// generated text is context-dependent, so there is no automated one.
	AIInvalidPrompt = "INVALID_AI_PROMPT"

	// DefaultAIContext is the prompt used for ai_text fields that carry no
	// context of their own.
	DefaultAIContext = "generate random text"
)

// Producer generates one value. The prompt argument is meaningful only for
// context-bearing types; faker producers ignore it.
type Producer func(ctx context.Context, prompt string) string

// Generator carries the positive and negative producers for one type name.
// A nil producer means the case is unavailable and resolves to the sentinel.
type Generator struct {
	Positive Producer
	Negative Producer
}

// Options tunes AI-backed producers.
type Options struct {
	// RequestTimeout bounds each text service call made by an ai_text
	// producer. Defaults to 30s.
	RequestTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	return o
}

// Registry resolves a type name and case to a value producer. The built-in
// table is fixed at construction; Register extends it.
type Registry struct {
	types map[string]Generator
}

// NewRegistry builds the registry with all built-in types. Whether svc is
// usable is decided here, once: with an unavailable service the ai_text
// positive case is bound to the AIDisabled value and never calls out.
func NewRegistry(svc textgen.Service, logger *slog.Logger, opts Options) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	r := &Registry{types: make(map[string]Generator)}

	niladic := func(f func() string) Producer {
		return func(context.Context, string) string { return f() }
	}

	r.Register("name", Generator{Positive: niladic(fakerFullName), Negative: niladic(negativeName)})
	r.Register("email", Generator{Positive: niladic(fakerEmail), Negative: niladic(negativeEmail)})
	r.Register("password", Generator{Positive: niladic(fakerPassword), Negative: niladic(negativePassword)})
	r.Register("integer", Generator{Positive: niladic(fakerInteger), Negative: niladic(negativeInteger)})
	r.Register("date", Generator{Positive: niladic(fakerDate), Negative: niladic(negativeDate)})
	r.Register("uuid", Generator{Positive: niladic(fakerUUID), Negative: niladic(negativeUUID)})

	aiPositive := Producer(func(context.Context, string) string { return AIDisabled })
	if textgen.Available(svc) {
		aiPositive = aiProducer(svc, logger, opts.RequestTimeout)
	}
	r.Register(TypeAIText, Generator{
		Positive: aiPositive,
		Negative: func(context.Context, string) string { return AIInvalidPrompt },
	})

	return r
}

// Register adds or replaces a generator for a type name.
func (r *Registry) Register(typeName string, g Generator) {
	r.types[typeName] = g
}

// Resolve returns the producer for the given type and case. The second
// return is false when the type is unknown or the case has no producer;
// callers substitute Sentinel(typeName, kase) instead of failing.
func (r *Registry) Resolve(typeName string, kase Case) (Producer, bool) {
	g, ok := r.types[typeName]
	if !ok {
		return nil, false
	}
	switch kase {
	case CasePositive:
		return g.Positive, g.Positive != nil
	case CaseNegative:
		return g.Negative, g.Negative != nil
	}
	return nil, false
}

// TypeNames returns all registered type names, sorted.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func aiProducer(svc textgen.Service, logger *slog.Logger, timeout time.Duration) Producer {
	return func(ctx context.Context, prompt string) string {
		if prompt == "" {
			prompt = DefaultAIContext
		}
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		text, err := svc.Generate(reqCtx, prompt)
		if err != nil {
			logger.Warn("ai_text generation failed", "error", redact.Secrets(err.Error()))
			return AIGenerationError
		}
		return text
	}
}
