package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindAuth, "invalid_credentials", "invalid email or password")

	if msg := err.Error(); msg != "auth (invalid_credentials): invalid email or password" {
		t.Fatalf("unexpected error string: %q", msg)
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInternal, "hash_failed", "hash failed", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestWithMeta_AttachesMeta(t *testing.T) {
	err := ErrMissingField("email")

	if err.Meta["field"] != "email" {
		t.Fatalf("unexpected meta value: %+v", err.Meta)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrInvalidCredentials()

	if !Is(err, "invalid_credentials") {
		t.Fatalf("expected code match")
	}
	if Is(err, "something_else") {
		t.Fatalf("unexpected code match")
	}
	if Is(errors.New("plain error"), "invalid_credentials") {
		t.Fatalf("plain errors never match")
	}
}

func TestIs_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrUserNotFound())

	if !Is(err, "user_not_found") {
		t.Fatalf("expected wrapped domain error to match")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrKind
	}{
		{ErrInvalidCredentials(), KindAuth},
		{ErrAccountInactive(), KindForbidden},
		{ErrUserNotFound(), KindNotFound},
		{ErrEmailAlreadyExists(), KindConflict},
		{ErrDBUnavailable(errors.New("x")), KindInfrastructure},
		{errors.New("plain"), KindInternal},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Fatalf("KindOf(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestInvalidCredentials_SameMessageForEveryCause(t *testing.T) {
	a := ErrInvalidCredentials()
	b := ErrInvalidCredentials()

	if a.Message != b.Message || a.Code != b.Code || a.Kind != b.Kind {
		t.Fatalf("invalid credential errors must be indistinguishable")
	}
}
