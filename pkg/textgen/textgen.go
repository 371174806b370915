// Package textgen defines the generative-text capability used by the
// planning and generation pipelines, plus its error taxonomy.
package textgen

import "context"

// Service is the opaque text-generation capability. Implementations send the
// prompt to a model provider and return its raw text response.
type Service interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc adapts a function to the Service interface.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Unavailable is the Service variant used when no provider credential is
// configured. Every call fails with a ServiceError; components that can
// degrade (the ai_text generator) detect it once at construction via
// Available and never call it.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(context.Context, string) (string, error) {
	reason := u.Reason
	if reason == "" {
		reason = "text generation is not configured"
	}
	return "", &ServiceError{Op: "generate", Reason: reason}
}

// Available reports whether svc is a usable capability.
func Available(svc Service) bool {
	if svc == nil {
		return false
	}
	_, off := svc.(Unavailable)
	return !off
}

// ServiceError wraps a failed or malformed provider interaction.
type ServiceError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ServiceError) Error() string {
	msg := "textgen " + e.Op
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransientError marks a provider failure as retryable by the batch runner.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	if e == nil || e.Err == nil {
		return "transient error"
	}
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
