package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestExceptionMatchesKind(t *testing.T) {
	wrapped := fmt.Errorf("accept: %w", ErrNotPending)

	if !errors.Is(wrapped, KindConflict) {
		t.Fatal("expected wrapped ErrNotPending to match KindConflict")
	}
	if !errors.Is(wrapped, ErrNotPending) {
		t.Fatal("expected wrapped error to match its sentinel")
	}
	if errors.Is(wrapped, ErrDuplicateApplication) {
		t.Fatal("did not expect ErrNotPending to match ErrDuplicateApplication")
	}
	if errors.Is(wrapped, KindConcurrency) {
		t.Fatal("did not expect a conflict to match KindConcurrency")
	}
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("title is required"), http.StatusBadRequest},
		{ErrGigNotFound, http.StatusNotFound},
		{ErrNotGigOwner, http.StatusForbidden},
		{ErrGigNotOpen, http.StatusConflict},
		{fmt.Errorf("mutate: %w", ErrOptimisticLock), http.StatusConflict},
		{InvalidTransition("posted", "completed"), http.StatusUnprocessableEntity},
		{ErrStoreTimeout, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(ErrOptimisticLock) {
		t.Error("concurrency errors should be retryable")
	}
	if !Retryable(fmt.Errorf("find: %w", ErrStoreTimeout)) {
		t.Error("timeouts should be retryable")
	}
	if Retryable(ErrDuplicateApplication) {
		t.Error("conflicts should not be retryable")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("plain errors have no kind")
	}
}
