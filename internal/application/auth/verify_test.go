package auth

import (
	"context"
	"testing"

	"github.com/baechuer/edusphere/internal/domain"
)

func TestVerify_Empty_TokenMissing(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	_, err := svc.Verify("  ")
	requireErrCode(t, err, "token_missing")
}

func TestVerify_Garbage_TokenInvalid(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	_, err := svc.Verify("not-a-token")
	requireErrCode(t, err, "token_invalid")
}

func TestVerify_Valid_ReturnsClaims(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	c, err := svc.Verify("tok|u1|t@x.test|TEACHER")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if c.UserID != "u1" || c.Email != "t@x.test" || c.Role != "TEACHER" {
		t.Fatalf("unexpected claims %+v", c)
	}
}

func TestResolveActor(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	ctx := context.Background()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"no header", "", domain.ActorSystem},
		{"bearer without token", "Bearer ", domain.ActorSystem},
		{"invalid token", "Bearer junk", domain.ActorUnknownAdmin},
		{"valid bearer", "Bearer tok|u1|admin@x.test|ADMIN", "admin@x.test"},
		{"valid bare token", "tok|u1|admin@x.test|ADMIN", "admin@x.test"},
		{"lowercase scheme", "bearer tok|u1|admin@x.test|ADMIN", "admin@x.test"},
		{"no email claim", "Bearer tok|u1||ADMIN", domain.ActorAdmin},
	}
	for _, tc := range cases {
		if got := svc.ResolveActor(ctx, tc.raw); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestMe_ReturnsStoredUser(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)
	seedAdmin(users, string(domain.StatusActive))

	u, err := svc.Me(context.Background(), "u-admin")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Email != "admin@x.test" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestMe_Missing_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	_, err := svc.Me(context.Background(), "gone")
	requireErrCode(t, err, "user_not_found")
}
