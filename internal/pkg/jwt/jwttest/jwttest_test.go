package jwttest

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithUserID(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), "auth-9")

	userID, err := jwt.UserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auth-9", userID)

	_, err = jwt.UserIDFromContext(context.Background())
	assert.Error(t, err)
}
