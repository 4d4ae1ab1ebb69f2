package service

import (
	"GophSign/internal/model"
	"GophSign/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService — регистрация и вход пользователей.
type UserService struct {
	users    repo.UserRepository
	accounts repo.AccountRepository
}

func NewUserService(users repo.UserRepository, accounts repo.AccountRepository) *UserService {
	return &UserService{users: users, accounts: accounts}
}

// AuthMethod — способ входа: Credentials или Federated.
type AuthMethod interface {
	authMethod()
}

// Credentials — вход по email и паролю.
type Credentials struct {
	Email    string
	Password string
}

// Federated — вход через внешнего провайдера (Google и т.п.), уже подтверждённый им.
type Federated struct {
	Provider   string
	ExternalID string
	Email      string
	Name       string
}

func (Credentials) authMethod() {}
func (Federated) authMethod()   {}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.CreateUser(ctx, &model.User{Name: name, Email: email, Password: string(hash)})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SignIn сводит любой способ входа к одному пользователю.
func (s *UserService) SignIn(ctx context.Context, method AuthMethod) (*model.User, error) {
	switch m := method.(type) {
	case Credentials:
		return s.signInCredentials(ctx, m)
	case Federated:
		return s.signInFederated(ctx, m)
	default:
		return nil, fmt.Errorf("unsupported auth method %T", method)
	}
}

func (s *UserService) signInCredentials(ctx context.Context, c Credentials) (*model.User, error) {
	email := normalizeEmail(c.Email)
	if email == "" || c.Password == "" {
		return nil, ErrMissingFields
	}
	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// у аккаунтов внешнего провайдера пароля нет
	if user == nil || user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(c.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) signInFederated(ctx context.Context, f Federated) (*model.User, error) {
	email := normalizeEmail(f.Email)
	if f.Provider == "" || f.ExternalID == "" || email == "" {
		return nil, ErrMissingFields
	}
	if s.accounts == nil {
		return nil, errors.New("federated sign-in is not configured")
	}

	acc, err := s.accounts.GetAccount(ctx, f.Provider, f.ExternalID)
	switch {
	case err == nil && acc.User != nil:
		return acc.User, nil
	case err == nil:
		return s.GetByID(ctx, acc.UserID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("get account: %w", err)
	}

	// первый вход через провайдера: привязываем к существующему email или создаём пользователя
	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &model.User{Email: email, Name: strings.TrimSpace(f.Name)}
	}
	linked, err := s.accounts.LinkAccount(ctx, user, f.Provider, f.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("link account: %w", err)
	}
	return linked, nil
}

// GetByID возвращает владельца сессии.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user == nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// lookupByEmail возвращает nil без ошибки, если пользователя нет.
func (s *UserService) lookupByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}
