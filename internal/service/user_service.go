package service

import (
	"context"
	"errors"
	"fmt"

	"attendance-server/internal/domain"
	"attendance-server/internal/repository"
)

const (
	defaultAdminUsername = "Admin"
	defaultAdminPassword = "Admin"
	defaultAdminDisplay  = "Administrator"
)

// CreateUserParams carries the fields accepted at user creation.
type CreateUserParams struct {
	Username      string
	Password      string
	DisplayName   string
	BiometricData string
	Image         string
}

// UpdateUserParams carries the mutable user fields. Username and password
// cannot change after creation.
type UpdateUserParams struct {
	DisplayName   string
	BiometricData string
	Image         string
}

// UserService is the data-access surface for user records and login.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, params CreateUserParams) (domain.CreateOutcome, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (domain.MutationOutcome, error)
	Delete(ctx context.Context, id int64) (domain.MutationOutcome, error)
	Authenticate(ctx context.Context, username, password string) (domain.AuthOutcome, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

type userService struct {
	users  repository.UserRepository
	scheme CredentialScheme
}

func NewUserService(users repository.UserRepository, scheme CredentialScheme) UserService {
	return &userService{
		users:  users,
		scheme: scheme,
	}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) (domain.CreateOutcome, error) {
	encoded, err := s.scheme.Encode(params.Password)
	if err != nil {
		return domain.CreateOutcome{}, err
	}

	user := &domain.User{
		Username:      params.Username,
		Password:      encoded,
		DisplayName:   params.DisplayName,
		BiometricData: params.BiometricData,
		Image:         params.Image,
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.CreateOutcome{Success: false, Message: "Username already exists"}, nil
		}
		return domain.CreateOutcome{}, err
	}

	return domain.CreateOutcome{Success: true, ID: id, Message: "User created successfully"}, nil
}

func (s *userService) Update(ctx context.Context, id int64, params UpdateUserParams) (domain.MutationOutcome, error) {
	aff, err := s.users.Update(ctx, id, params.DisplayName, params.BiometricData, params.Image)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "No changes made or user not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "User updated successfully"}, nil
}

func (s *userService) Delete(ctx context.Context, id int64) (domain.MutationOutcome, error) {
	aff, err := s.users.Delete(ctx, id)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "User not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "User deleted successfully"}, nil
}

// Authenticate matches the username case-insensitively but compares the
// password exactly through the configured credential scheme.
func (s *userService) Authenticate(ctx context.Context, username, password string) (domain.AuthOutcome, error) {
	user, err := s.users.LookupByUsername(ctx, username)
	if err != nil {
		return domain.AuthOutcome{}, err
	}
	if user == nil {
		return domain.AuthOutcome{Success: false, Message: "User not found"}, nil
	}
	if !s.scheme.Verify(user.Password, password) {
		return domain.AuthOutcome{Success: false, Message: "Invalid password"}, nil
	}
	return domain.AuthOutcome{
		Success: true,
		Message: "Authentication successful",
		User:    user.WithoutPassword(),
	}, nil
}

// EnsureDefaultAdmin seeds the Admin account on first boot. Safe to call on
// every start; a concurrent seeder losing the insert race is tolerated.
func (s *userService) EnsureDefaultAdmin(ctx context.Context) error {
	existing, err := s.users.GetByUsername(ctx, defaultAdminUsername)
	if err != nil {
		return fmt.Errorf("check default admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	encoded, err := s.scheme.Encode(defaultAdminPassword)
	if err != nil {
		return err
	}
	_, err = s.users.Insert(ctx, &domain.User{
		Username:    defaultAdminUsername,
		Password:    encoded,
		DisplayName: defaultAdminDisplay,
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("seed default admin: %w", err)
	}
	return nil
}
