package repository

import (
	"context"

	"platformapi/internal/model"
)

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Search        string
	Role          *model.Role
	EmailVerified *bool
	Page          PageQuery
}

// UserRepository reads the user table mirrored from the auth provider and
// updates the fields this API owns.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)

	// UpdateImage sets the profile image URL. It returns sql.ErrNoRows when the
	// user does not exist.
	UpdateImage(ctx context.Context, id, imageURL string) error

	List(ctx context.Context, f UserFilter) (*PageResult[model.User], error)
}
