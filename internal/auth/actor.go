package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/academic-admin-service/internal/domain"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

const actorKey = "actor"

// Actor identifies who performs a mutation. Tokens are issued by the upstream
// gateway; this service only verifies them to stamp updatedBy on history
// entries. There is no login or session handling here.
type Actor struct {
	ID   string
	Role domain.Role
}

// ActorClaims describes the gateway token payload.
type ActorClaims struct {
	Role domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates gateway-issued HS256 tokens.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier builds a verifier around the shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses the token and returns the actor it names.
func (v *TokenVerifier) Verify(tokenStr string) (*Actor, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*ActorClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}
	return &Actor{ID: claims.Subject, Role: claims.Role}, nil
}

// ActorMiddleware resolves the acting user for mutating routes.
type ActorMiddleware struct {
	verifier *TokenVerifier
}

// NewActorMiddleware constructs middleware.
func NewActorMiddleware(verifier *TokenVerifier) *ActorMiddleware {
	return &ActorMiddleware{verifier: verifier}
}

// Handle extracts the bearer token and stores the actor on the request.
func (m *ActorMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	actor, err := m.verifier.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(actorKey, actor)
	return c.Next()
}

// ActorFromContext retrieves the resolved actor.
func ActorFromContext(c *fiber.Ctx) (*Actor, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return nil, false
	}
	actor, ok := val.(*Actor)
	return actor, ok
}

// RequireAdministrator restricts a route to directory administrators.
func RequireAdministrator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("actor required")
		}
		if actor.Role != domain.RoleAdministrator {
			return apperrors.NewForbidden("administrator role required")
		}
		return c.Next()
	}
}
