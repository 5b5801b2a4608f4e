package service

import (
	"database/sql"
	"errors"
	"fmt"

	"eats-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  UserRepository
	signer TokenSigner
}

func NewUserService(users UserRepository, signer TokenSigner) *UserService {
	return &UserService{users: users, signer: signer}
}

func (s *UserService) CreateAccount(email, password string, role domain.UserRole) error {
	existing, err := s.users.GetUserByEmail(email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.CreateUser(user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserService) Login(email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("lookup email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrWrongPassword
	}
	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *UserService) Profile(userID int) (*domain.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *UserService) EditProfile(userID int, email, password string) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}

	if email != "" {
		user.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.UpdateUser(user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

var _ UserServiceInterface = (*UserService)(nil)
