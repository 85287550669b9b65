package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeSSE = "sse"

	claimUserID = "user_id"
	claimType   = "type"
)

var ErrUserIDMissing = errors.New("user id not found in token claims")

// Service verifies identity provider tokens and issues the short-lived SSE
// tokens used by EventSource clients that cannot send headers.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
}

type JWTService struct {
	tokenAuth   *jwtauth.JWTAuth
	sseTokenTTL time.Duration
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, sseTokenTTL time.Duration) Service {
	if sseTokenTTL <= 0 {
		sseTokenTTL = 5 * time.Minute
	}
	return &JWTService{
		tokenAuth:   jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		sseTokenTTL: sseTokenTTL,
	}
}

// UserIDFromClaims reads "sub", falling back to "user_id".
func UserIDFromClaims(claims map[string]interface{}) (string, error) {
	if sub, ok := claims[jwt.SubjectKey].(string); ok && sub != "" {
		return sub, nil
	}
	if id, ok := claims[claimUserID].(string); ok && id != "" {
		return id, nil
	}
	return "", ErrUserIDMissing
}

// UserIDFromContext extracts the user id from the verified token on ctx.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	return UserIDFromClaims(claims)
}

// TokenType returns the "type" claim, empty for identity provider tokens.
func TokenType(claims map[string]interface{}) string {
	t, _ := claims[claimType].(string)
	return t
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expiresIn = int(j.sseTokenTTL.Seconds())
	expiresAt := time.Now().Add(j.sseTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		jwt.SubjectKey:    userID,
		claimType:         TokenTypeSSE,
		jwt.ExpirationKey: expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if TokenType(claims) != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}

	return UserIDFromClaims(claims)
}
