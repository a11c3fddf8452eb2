package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"auth error", &AuthenticationError{}, false},
		{"access denied", &AccessDeniedError{}, false},
		{"not found", &NotFoundError{}, false},
		{"invalid request", &InvalidRequestError{}, false},
		{"context length", &ContextLengthError{}, false},
		{"content filter", &ContentFilterError{}, false},
		{"abort", &AbortError{}, false},
		{"rate limit", &RateLimitError{ProviderError: ProviderError{Retryable: true}}, true},
		{"server error", &ServerError{ProviderError: ProviderError{Retryable: true}}, true},
		{"network error", &NetworkError{}, true},
		{"timeout error", &RequestTimeoutError{}, true},
		{"generic provider retryable", &ProviderError{Retryable: true}, true},
		{"generic provider non-retryable", &ProviderError{Retryable: false}, false},
		{"unknown error", errors.New("unknown"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRetryable(tt.err)
			if got != tt.retryable {
				t.Errorf("IsRetryable(%T) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &ClientError{Message: "wrapper", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected ClientError to unwrap to its cause")
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{
		ClientError: ClientError{Message: "rate limit exceeded"},
		Provider:    "openai",
		StatusCode:  429,
		Retryable:   true,
	}
	msg := err.Error()
	if !strings.Contains(msg, "openai") || !strings.Contains(msg, "rate limit") {
		t.Errorf("error message missing expected content: %q", msg)
	}
}

func TestTranslateError(t *testing.T) {
	c := &GollmClient{provider: "openai"}

	tests := []struct {
		msg       string
		wantType  error
		retryable bool
	}{
		{"API error 401 unauthorized", &AuthenticationError{}, false},
		{"request forbidden 403", &AccessDeniedError{}, false},
		{"model not found", &NotFoundError{}, false},
		{"429 rate limit reached", &RateLimitError{}, true},
		{"prompt exceeds context length", &ContextLengthError{}, false},
		{"500 internal server error", &ServerError{}, true},
		{"request timeout", &RequestTimeoutError{}, true},
		{"blocked by content filter", &ContentFilterError{}, false},
		{"something odd happened", &ProviderError{}, true},
	}
	for _, tt := range tests {
		got := c.translateError(errors.New(tt.msg))
		want := fmt.Sprintf("%T", tt.wantType)
		if gotType := fmt.Sprintf("%T", got); gotType != want {
			t.Errorf("%q: got %s, want %s", tt.msg, gotType, want)
		}
		if IsRetryable(got) != tt.retryable {
			t.Errorf("%q: retryable = %v, want %v", tt.msg, IsRetryable(got), tt.retryable)
		}
	}
}
