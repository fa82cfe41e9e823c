package repository

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/devconnect/devconnect/internal/auth"
	"github.com/devconnect/devconnect/internal/models"
)

// UserLookup is the slice of the credential store the provider needs
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserProvider resolves identities against the credential store
type UserProvider struct {
	store  UserLookup
	logger auth.Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserLookup) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: nil,
	}
}

func (u *UserProvider) WithLogger(l auth.Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare to the password, and return identity
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			// same failure as a wrong password, callers cannot probe
			// for registered emails
			return nil, auth.ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, auth.ErrIdentityNotFound
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, auth.ErrMismatchedHashAndPassword
	}

	return IdentityFromUser(user), nil
}

func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, auth.ErrIdentityNotFound
	}

	return IdentityFromUser(user), nil
}

// IdentityFromUser adapts a stored user record to the auth identity contract
func IdentityFromUser(user *models.User) auth.Identity {
	return authIdentity{
		id:     user.ID.String(),
		name:   user.Name,
		email:  user.Email,
		avatar: user.Avatar,
	}
}

type authIdentity struct {
	id     string
	name   string
	email  string
	avatar string
}

func (a authIdentity) ID() string     { return a.id }
func (a authIdentity) Name() string   { return a.name }
func (a authIdentity) Email() string  { return a.email }
func (a authIdentity) Avatar() string { return a.avatar }

var _ auth.Identity = authIdentity{}
