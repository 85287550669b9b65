package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
)

type userRepository struct {
	*Client
}

func NewUserRepository(c *Client) user.UserRepository {
	return &userRepository{Client: c}
}

// GetUser implements user.UserRepository.
func (r *userRepository) GetUser(ctx context.Context, userID string) (user.User, error) {
	data, err := r.do(ctx, http.MethodGet, "/users/userId/"+url.PathEscape(userID), nil, "")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Message = fetchUserMessage(apiErr.StatusCode)
		}
		return user.User{}, err
	}
	if data == nil {
		return user.User{}, user.ErrUserNotFound
	}

	var u user.User
	if err := json.Unmarshal(data, &u); err != nil {
		return user.User{}, fmt.Errorf("decode user %s: %w", userID, err)
	}
	return u, nil
}

func fetchUserMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Authentication failed - please log in again"
	case http.StatusForbidden:
		return "Access denied"
	case http.StatusNotFound:
		return "User not found in database"
	default:
		return fmt.Sprintf("Failed to fetch user: %d", status)
	}
}
