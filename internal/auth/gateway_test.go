package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernwave/chat-service/internal/config"
)

func TestShouldEvaluate(t *testing.T) {
	evaluated := []string{"/", "/chat/abc123", "/api/chat", "/api/auth/guest", "/login", "/register", "/ping"}
	for _, path := range evaluated {
		assert.True(t, ShouldEvaluate(path), "path %q", path)
	}

	skipped := []string{
		"/_next/static/chunks/main.js",
		"/_next/image?url=foo",
		"/favicon.ico",
		"/sitemap.xml",
		"/robots.txt",
	}
	for _, path := range skipped {
		assert.False(t, ShouldEvaluate(path), "path %q", path)
	}
}

func TestDecide(t *testing.T) {
	allOn := config.FeatureFlags{GuestMode: true, Registration: true}
	noGuest := config.FeatureFlags{GuestMode: false, Registration: true}
	noRegistration := config.FeatureFlags{GuestMode: true, Registration: false}

	alice := &Claim{Email: "alice@example.com"}
	guest := &Claim{Email: "guest-482913"}

	cases := []struct {
		name     string
		path     string
		original string
		claim    *Claim
		flags    config.FeatureFlags
		want     Action
	}{
		{
			name: "ping bypasses auth", path: "/ping", claim: nil, flags: noGuest,
			want: Respond(200, "pong"),
		},
		{
			name: "ping bypasses auth even with claim", path: "/ping", claim: alice, flags: allOn,
			want: Respond(200, "pong"),
		},
		{
			name: "ping prefix match", path: "/ping/ready", claim: nil, flags: noGuest,
			want: Respond(200, "pong"),
		},
		{
			name: "auth provider routes pass through", path: "/api/auth/guest", claim: nil, flags: allOn,
			want: Allow(),
		},
		{
			name: "auth provider routes pass through without guest mode", path: "/api/auth/login", claim: nil, flags: config.FeatureFlags{},
			want: Allow(),
		},
		{
			name: "unauthenticated may view login", path: "/login", claim: nil, flags: config.FeatureFlags{},
			want: Allow(),
		},
		{
			name: "unauthenticated may view register when enabled", path: "/register", claim: nil, flags: noGuest,
			want: Allow(),
		},
		{
			name: "unauthenticated register redirects to login when disabled", path: "/register", claim: nil, flags: noRegistration,
			want: Redirect("/login"),
		},
		{
			name: "unauthenticated home goes to guest issuance",
			path: "/", original: "http://localhost:3000/", claim: nil, flags: allOn,
			want: Redirect("/api/auth/guest?redirectUrl=http%3A%2F%2Flocalhost%3A3000%2F"),
		},
		{
			name: "guest issuance keeps the full original url",
			path: "/chat/abc", original: "http://localhost:3000/chat/abc?x=1", claim: nil, flags: allOn,
			want: Redirect("/api/auth/guest?redirectUrl=http%3A%2F%2Flocalhost%3A3000%2Fchat%2Fabc%3Fx%3D1"),
		},
		{
			name: "unauthenticated home goes to login without guest mode",
			path: "/", original: "http://localhost:3000/", claim: nil, flags: noGuest,
			want: Redirect("/login"),
		},
		{
			name: "unauthenticated api goes to login without guest mode",
			path: "/api/chat", original: "http://localhost:3000/api/chat", claim: nil, flags: noGuest,
			want: Redirect("/login"),
		},
		{
			name: "non-guest on login page goes home", path: "/login", claim: alice, flags: allOn,
			want: Redirect("/"),
		},
		{
			name: "non-guest on register page goes home", path: "/register", claim: alice, flags: allOn,
			want: Redirect("/"),
		},
		{
			name: "guest may view login page", path: "/login", claim: guest, flags: allOn,
			want: Allow(),
		},
		{
			name: "guest may view register page when enabled", path: "/register", claim: guest, flags: allOn,
			want: Allow(),
		},
		{
			name: "guest on register page goes to login when disabled", path: "/register", claim: guest, flags: noRegistration,
			want: Redirect("/login"),
		},
		{
			name: "authenticated request passes through", path: "/", claim: alice, flags: allOn,
			want: Allow(),
		},
		{
			name: "guest request passes through", path: "/chat/abc", claim: guest, flags: allOn,
			want: Allow(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.path, tc.original, tc.claim, tc.flags)
			assert.Equal(t, tc.want, got)
		})
	}
}
