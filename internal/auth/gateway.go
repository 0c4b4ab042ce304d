package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/domain"
	"github.com/fernwave/chat-service/internal/observability"
	apperrors "github.com/fernwave/chat-service/pkg/util"
)

// Well-known paths evaluated by the gateway.
const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathGuest    = "/api/auth/guest"

	pingPrefix = "/ping"
	authPrefix = "/api/auth"
)

const claimKey = "session_claim"

// ActionKind discriminates gateway decisions.
type ActionKind int

const (
	ActionAllow ActionKind = iota
	ActionRespond
	ActionRedirect
)

func (k ActionKind) String() string {
	switch k {
	case ActionAllow:
		return "allow"
	case ActionRespond:
		return "respond"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Action is the outcome of one access decision.
type Action struct {
	Kind     ActionKind
	Status   int
	Body     string
	Location string
}

// Allow passes the request through unchanged.
func Allow() Action {
	return Action{Kind: ActionAllow}
}

// Respond answers directly without reaching route logic.
func Respond(status int, body string) Action {
	return Action{Kind: ActionRespond, Status: status, Body: body}
}

// Redirect sends the caller to another location.
func Redirect(location string) Action {
	return Action{Kind: ActionRedirect, Status: fiber.StatusFound, Location: location}
}

// ShouldEvaluate implements the static route filter. Static assets, image
// optimization assets and well-known metadata files carry no identity
// semantics and are never evaluated.
func ShouldEvaluate(path string) bool {
	if strings.HasPrefix(path, "/_next/static") || strings.HasPrefix(path, "/_next/image") {
		return false
	}
	switch path {
	case "/favicon.ico", "/sitemap.xml", "/robots.txt":
		return false
	}
	return true
}

// Decide is the pure access decision function. It is evaluated in strict
// order; the first matching rule wins. A nil claim means the request carried
// no valid session token (decode failures are equivalent to no claim).
func Decide(path, originalURL string, claim *Claim, flags config.FeatureFlags) Action {
	if strings.HasPrefix(path, pingPrefix) {
		return Respond(fiber.StatusOK, "pong")
	}

	// Auth provider routes must stay reachable to establish a session.
	if strings.HasPrefix(path, authPrefix) {
		return Allow()
	}

	if claim == nil {
		if path == PathLogin {
			return Allow()
		}
		if path == PathRegister {
			if !flags.Registration {
				return Redirect(PathLogin)
			}
			return Allow()
		}
		if flags.GuestMode {
			return Redirect(PathGuest + "?redirectUrl=" + url.QueryEscape(originalURL))
		}
		return Redirect(PathLogin)
	}

	isGuest := domain.IsGuestEmail(claim.Email)

	// Authenticated non-guest users should not see the auth forms.
	if !isGuest && (path == PathLogin || path == PathRegister) {
		return Redirect(PathHome)
	}

	// Covers identities (e.g. guests) that got past the unauthenticated
	// branch while registration is disabled.
	if path == PathRegister && !flags.Registration {
		return Redirect(PathLogin)
	}

	return Allow()
}

// Gateway intercepts every request before route logic and applies Decide.
type Gateway struct {
	decoder ClaimDecoder
	flags   config.FeatureFlags
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGateway constructs the middleware.
func NewGateway(decoder ClaimDecoder, flags config.FeatureFlags, logger *zap.Logger, metrics *observability.Metrics) *Gateway {
	return &Gateway{decoder: decoder, flags: flags, logger: logger, metrics: metrics}
}

// Handle evaluates the access decision for one request. Stateless and
// non-retrying: a failed token decode is routed through the unauthenticated
// branches, never surfaced as an error.
func (g *Gateway) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if !ShouldEvaluate(path) {
		return c.Next()
	}

	claim, err := g.decoder.Decode(c)
	if err != nil {
		claim = nil
	}

	action := Decide(path, c.BaseURL()+c.OriginalURL(), claim, g.flags)
	g.metrics.RecordGatewayDecision(action.Kind.String())

	switch action.Kind {
	case ActionRespond:
		return c.Status(action.Status).SendString(action.Body)
	case ActionRedirect:
		g.logger.Debug("gateway redirect",
			zap.String("path", path),
			zap.String("location", action.Location))
		return c.Redirect(action.Location, action.Status)
	default:
		if claim != nil {
			c.Locals(claimKey, claim)
		}
		return c.Next()
	}
}

// ClaimFromContext retrieves the identity claim stashed by the gateway.
func ClaimFromContext(c *fiber.Ctx) (*Claim, bool) {
	val := c.Locals(claimKey)
	if val == nil {
		return nil, false
	}
	claim, ok := val.(*Claim)
	return claim, ok
}

// RequireClaim guards handlers that need an identity of any kind.
func RequireClaim() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ClaimFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
