package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
)

// ContextKeyUserID holds the authenticated user id (uint) in the gin context.
const ContextKeyUserID = "userID"

var (
	errMissingToken   = errors.New("Authentication credentials were not provided.")
	errMalformedToken = errors.New("Authorization header must be of the form 'Bearer <token>'")
)

type TokenParser interface {
	Parse(tokenString, wantType string) (*jwthelper.Claims, error)
}

type Authenticator struct {
	tokens TokenParser
}

func NewAuthenticator(tokens TokenParser) *Authenticator {
	return &Authenticator{
		tokens: tokens,
	}
}

// VerifyJWT rejects requests without a valid access token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := bearerToken(ctx)
		if err == nil && token == "" {
			err = errMissingToken
		}
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if !a.authenticate(ctx, token) {
			return
		}

		ctx.Next()
	}
}

// OptionalJWT lets anonymous requests through but still rejects invalid tokens.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := bearerToken(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if token != "" && !a.authenticate(ctx, token) {
			return
		}

		ctx.Next()
	}
}

func (a *Authenticator) authenticate(ctx *gin.Context, token string) bool {
	claims, err := a.tokens.Parse(token, jwthelper.TypeAccess)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))
		return false
	}

	userID, err := claims.UserID()
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
		return false
	}

	ctx.Set(ContextKeyUserID, userID)

	return true
}

// bearerToken reads the Authorization header, falling back to the access_token query
// parameter that browsers must use for websocket upgrades.
func bearerToken(ctx *gin.Context) (string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ctx.Query("access_token"), nil
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMalformedToken
	}

	return strings.TrimSpace(token), nil
}
