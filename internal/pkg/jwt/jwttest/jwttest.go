// Package jwttest builds authenticated contexts for tests.
package jwttest

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ContextWithUserID returns ctx carrying a verified token whose subject is
// userID, the same shape the verifier middleware leaves behind.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	token := jwt.New()
	_ = token.Set(jwt.SubjectKey, userID)
	return jwtauth.NewContext(ctx, token, nil)
}
