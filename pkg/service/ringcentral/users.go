package ringcentral

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/ringsync/pkg/domain/model"
	"github.com/secmon-lab/ringsync/pkg/domain/types"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

const userPageSize = "1000"

// UserService synchronizes RingCentral user accounts
type UserService interface {
	// Create provisions a user: first the contact extension record, then the
	// SCIM user. Returns the created user as reported by the platform.
	Create(ctx context.Context, user *model.User) (*model.User, error)
	// Get fetches one user by id
	Get(ctx context.Context, id string) (*model.User, error)
	// Update merges the partial record over the current one (read-before-
	// write) and replaces the user
	Update(ctx context.Context, id string, partial *model.User) (*model.User, error)
	// Delete removes the user
	Delete(ctx context.Context, id string) error
	// List returns users, optionally filtered by exact userName
	List(ctx context.Context, userName string) ([]model.User, error)
}

type userService struct {
	client *Client
}

// Users returns the user synchronization service of this client
func (x *Client) Users() UserService {
	return &userService{client: x}
}

func (x *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	var firstName, lastName, email string
	if user.Name != nil {
		firstName = user.Name.GivenName
		lastName = user.Name.FamilyName
	}
	if primary := user.PrimaryEmail(); primary != nil {
		email = primary.Value
	}

	extension := model.NewContactExtension(firstName, lastName, email)
	if err := x.client.do(ctx, types.RateLimitHeavy, http.MethodPost, extensionPath, extension, nil); err != nil {
		return nil, goerr.Wrap(err, "failed to create contact extension")
	}

	var created model.User
	if err := x.client.do(ctx, types.RateLimitHeavy, http.MethodPost, scimPath+"Users", user, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create user")
	}
	if created.ID == "" {
		return nil, goerr.Wrap(ErrInvalidResponse, "response from user creation was invalid")
	}

	return &created, nil
}

func (x *userService) Get(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := x.client.do(ctx, types.RateLimitLight, http.MethodGet, scimPath+"Users/"+id, nil, &user); err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}
	return &user, nil
}

func (x *userService) Update(ctx context.Context, id string, partial *model.User) (*model.User, error) {
	current, err := x.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := mergeUser(partial, current)

	var updated model.User
	if err := x.client.do(ctx, types.RateLimitHeavy, http.MethodPut, scimPath+"Users/"+id, merged, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("id", id))
	}
	if updated.ID == "" {
		return nil, goerr.Wrap(ErrInvalidResponse, "response from user update was invalid", goerr.V("id", id))
	}

	return &updated, nil
}

func (x *userService) Delete(ctx context.Context, id string) error {
	if err := x.client.do(ctx, types.RateLimitHeavy, http.MethodDelete, scimPath+"Users/"+id, nil, nil); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("id", id))
	}
	return nil
}

func (x *userService) List(ctx context.Context, userName string) ([]model.User, error) {
	path := scimPath + "Users?count=" + userPageSize
	if userName != "" {
		path += "&filter=" + url.QueryEscape(`userName eq "`+userName+`"`)
	}

	var resp listUsersResponse
	if err := x.client.do(ctx, types.RateLimitLight, http.MethodGet, path, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			logging.From(ctx).Info("user listing returned no match", "userName", userName)
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to list users")
	}

	return resp.Resources, nil
}

// mergeUser fills every unset field of the partial record with the current
// one: userName, name sub-fields independently, emails, phones, addresses and
// the active flag. The result is what gets PUT back to the platform.
func mergeUser(partial, current *model.User) *model.User {
	merged := *partial

	if merged.UserName == "" {
		merged.UserName = current.UserName
	}

	if merged.Name == nil {
		merged.Name = current.Name
	} else if current.Name != nil {
		name := *merged.Name
		if name.FamilyName == "" {
			name.FamilyName = current.Name.FamilyName
		}
		if name.GivenName == "" {
			name.GivenName = current.Name.GivenName
		}
		if name.Formatted == "" {
			name.Formatted = current.Name.Formatted
		}
		merged.Name = &name
	}

	if len(merged.Emails) == 0 {
		merged.Emails = current.Emails
	}
	if len(merged.Addresses) == 0 {
		merged.Addresses = current.Addresses
	}
	if len(merged.PhoneNumbers) == 0 {
		merged.PhoneNumbers = current.PhoneNumbers
	}
	if merged.Active == nil {
		merged.Active = current.Active
	}

	return &merged
}
