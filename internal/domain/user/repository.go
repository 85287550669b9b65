package user

import "context"

// UserRepository reads the user record from the backend.
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (User, error)
}
