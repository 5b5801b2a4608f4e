package tests

import (
	"database/sql"
	"testing"

	"eats-backend/internal/domain"
	"eats-backend/internal/mocks"
	"eats-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateAccount(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		prepareMocks  func(users *mocks.UserRepository)
		expectedError error
	}{
		{
			name:  "success_hashes_password",
			email: "client@eats.dev",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("GetUserByEmail", "client@eats.dev").Return(nil, sql.ErrNoRows).Once()
				users.On("CreateUser", mock.MatchedBy(func(user *domain.User) bool {
					if user.Email != "client@eats.dev" || user.Role != domain.RoleClient {
						return false
					}
					return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")) == nil
				})).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name:  "error_email_taken",
			email: "taken@eats.dev",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("GetUserByEmail", "taken@eats.dev").Return(&domain.User{ID: 1, Email: "taken@eats.dev"}, nil).Once()
			},
			expectedError: service.ErrEmailTaken,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserRepository(t)
			svc := service.NewUserService(users, mocks.NewTokenSigner(t))

			testCase.prepareMocks(users)
			err := svc.CreateAccount(testCase.email, "secret", domain.RoleClient)
			assert.ErrorIs(t, err, testCase.expectedError)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	stored := &domain.User{ID: 1, Email: "client@eats.dev", PasswordHash: string(hash), Role: domain.RoleClient}

	tests := []struct {
		name          string
		password      string
		prepareMocks  func(users *mocks.UserRepository, signer *mocks.TokenSigner)
		expectedToken string
		expectedError error
	}{
		{
			name:     "success_returns_token",
			password: "secret",
			prepareMocks: func(users *mocks.UserRepository, signer *mocks.TokenSigner) {
				users.On("GetUserByEmail", "client@eats.dev").Return(stored, nil).Once()
				signer.On("Sign", 1).Return("signed-token", nil).Once()
			},
			expectedToken: "signed-token",
		},
		{
			name:     "error_wrong_password",
			password: "nope",
			prepareMocks: func(users *mocks.UserRepository, signer *mocks.TokenSigner) {
				users.On("GetUserByEmail", "client@eats.dev").Return(stored, nil).Once()
			},
			expectedError: service.ErrWrongPassword,
		},
		{
			name:     "error_unknown_email",
			password: "secret",
			prepareMocks: func(users *mocks.UserRepository, signer *mocks.TokenSigner) {
				users.On("GetUserByEmail", "client@eats.dev").Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: service.ErrUserNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserRepository(t)
			signer := mocks.NewTokenSigner(t)
			svc := service.NewUserService(users, signer)

			testCase.prepareMocks(users, signer)
			token, err := svc.Login("client@eats.dev", testCase.password)
			assert.ErrorIs(t, err, testCase.expectedError)
			assert.Equal(t, testCase.expectedToken, token)
		})
	}
}

func TestUserService_EditProfile(t *testing.T) {
	users := mocks.NewUserRepository(t)
	svc := service.NewUserService(users, mocks.NewTokenSigner(t))

	stored := func() *domain.User {
		return &domain.User{ID: 1, Email: "old@eats.dev", PasswordHash: "old-hash", Role: domain.RoleClient}
	}

	t.Run("email_only_keeps_hash", func(t *testing.T) {
		users.On("GetUserByID", 1).Return(stored(), nil).Once()
		users.On("UpdateUser", mock.MatchedBy(func(user *domain.User) bool {
			return user.Email == "new@eats.dev" && user.PasswordHash == "old-hash"
		})).Return(nil).Once()

		assert.NoError(t, svc.EditProfile(1, "new@eats.dev", ""))
	})

	t.Run("password_change_rehashes", func(t *testing.T) {
		users.On("GetUserByID", 1).Return(stored(), nil).Once()
		users.On("UpdateUser", mock.MatchedBy(func(user *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("fresh")) == nil
		})).Return(nil).Once()

		assert.NoError(t, svc.EditProfile(1, "", "fresh"))
	})
}
