package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"platformapi/internal/logging"
	"platformapi/internal/model"
)

// PrincipalLocalKey is the key under which Auth stores the authenticated Principal.
const PrincipalLocalKey = "principal"

// Principal is the caller identified by a verified bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   model.Role
}

// IsAdmin reports whether the caller may use the admin routes.
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// Claims is the token payload issued by the auth provider.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthOptions configures token verification.
type AuthOptions struct {
	Secret []byte
	// Issuer is checked against the iss claim when non-empty.
	Issuer string
}

var errMissingToken = errors.New("missing bearer token")

// Auth verifies an HS256 bearer token and stores the caller in locals and in the
// request context logger. Requests without a valid token get 401.
func Auth(opts AuthOptions) fiber.Handler {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	parser := jwt.NewParser(parserOpts...)
	keyFunc := func(*jwt.Token) (any, error) { return opts.Secret, nil }

	return func(c *fiber.Ctx) error {
		p, err := authenticate(c, parser, keyFunc)
		if err != nil {
			logging.FromContext(c.UserContext()).Debug("authentication failed", "error", err)
			return reject(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		c.Locals(PrincipalLocalKey, p)
		c.SetUserContext(logging.With(c.UserContext(), "user_id", p.UserID))
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, parser *jwt.Parser, keyFunc jwt.Keyfunc) (Principal, error) {
	raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return Principal{}, errMissingToken
	}

	var claims Claims
	if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
		return Principal{}, err
	}
	if claims.Subject == "" {
		return Principal{}, errors.New("token has no subject")
	}
	role := model.Role(claims.Role)
	if !role.Valid() {
		return Principal{}, errors.New("token has unknown role")
	}

	return Principal{UserID: claims.Subject, Email: claims.Email, Role: role}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// PrincipalFrom returns the caller stored by Auth.
func PrincipalFrom(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(Principal)
	return p, ok
}

// RequireAdmin rejects callers without the admin role with 403. It must run after Auth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return reject(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		if !p.IsAdmin() {
			return reject(c, fiber.StatusForbidden, "FORBIDDEN", "admin role required")
		}
		return c.Next()
	}
}

// reject writes the same error envelope as the handlers.
func reject(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"request_id": RequestIDFrom(c),
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
