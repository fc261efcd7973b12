package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voyage/internal/domain/entity"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/repository"
	"voyage/internal/domain/service"
	"voyage/internal/usecase"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockUserRepository
	authRepo     *mockAuthRepository
	hasher       *mockPasswordHasher
	policy       *mockPasswordPolicy
	tokenService *mockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	userRepo := &mockUserRepository{}
	authRepo := &mockAuthRepository{}
	hasher := &mockPasswordHasher{}
	policy := &mockPasswordPolicy{}
	tokenService := &mockTokenService{}

	txManager := &fakeTxManager{factory: &fakeRepositoryFactory{
		userRepo: userRepo,
		authRepo: authRepo,
	}}

	svc := NewAuthService(AuthServiceParams{
		TxManager:      txManager,
		UserRepo:       userRepo,
		AuthRepo:       authRepo,
		Hasher:         hasher,
		PasswordPolicy: policy,
		TokenService:   tokenService,
		Logger:         newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		authRepo:     authRepo,
		hasher:       hasher,
		policy:       policy,
		tokenService: tokenService,
	}
}

func TestAuthService_SignUp_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.policy.On("Validate", "Password123!").Return(nil)
	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("FindByEmail", ctx, "test@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = uuid.New()
		}).
		Return(nil)
	fx.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.Provider == entity.ProviderEmail &&
			auth.ProviderUserID == "test@example.com" &&
			auth.PasswordHash == "hashed_password"
	})).Return(nil)
	fx.tokenService.On("Issue", mock.AnythingOfType("service.Identity")).Return("session_token", nil)

	output, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Name:     "Test User",
		Email:    "Test@Example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "session_token", output.Token)
	assert.Equal(t, "test@example.com", output.User.Email)
	fx.authRepo.AssertExpectations(t)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.policy.On("Validate", "Password123!").Return(nil)
	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("FindByEmail", ctx, "taken@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

	output, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_SignUp_WeakPassword(t *testing.T) {
	fx := createTestAuthService(t)

	fx.policy.On("Validate", "short").Return(domainerrors.ErrPasswordStrength)

	output, err := fx.service.SignUp(context.Background(), usecase.SignUpInput{
		Email:    "test@example.com",
		Password: "short",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderEmail, "test@example.com").
		Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderEmail, PasswordHash: "stored_hash"}, nil)
	fx.hasher.On("Check", "Password123!", "stored_hash").Return(true)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com", Name: "Test User"}, nil)
	fx.tokenService.On("Issue", service.Identity{UserID: userID, Email: "test@example.com", Name: "Test User"}).
		Return("session_token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "session_token", output.Token)
	assert.Equal(t, userID, output.User.ID)
}

// Every login failure collapses into the same error so responses cannot be
// used to probe which addresses are registered.
func TestAuthService_Login_UniformFailures(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name  string
		setup func(fx authServiceFixtures, ctx context.Context)
	}{
		{
			name: "unknown email",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.authRepo.On("FindAuthentication", ctx, entity.ProviderEmail, "test@example.com").
					Return(nil, repository.ErrAuthNotFound)
			},
		},
		{
			name: "google-only account without password",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.authRepo.On("FindAuthentication", ctx, entity.ProviderEmail, "test@example.com").
					Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderEmail}, nil)
			},
		},
		{
			name: "wrong password",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.authRepo.On("FindAuthentication", ctx, entity.ProviderEmail, "test@example.com").
					Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderEmail, PasswordHash: "stored_hash"}, nil)
				fx.hasher.On("Check", "wrong", "stored_hash").Return(false)
			},
		},
		{
			name: "credential without account",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.authRepo.On("FindAuthentication", ctx, entity.ProviderEmail, "test@example.com").
					Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderEmail, PasswordHash: "stored_hash"}, nil)
				fx.hasher.On("Check", "wrong", "stored_hash").Return(true)
				fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			tt.setup(fx, ctx)

			output, err := fx.service.Login(ctx, usecase.LoginInput{
				Email:    "test@example.com",
				Password: "wrong",
			})

			assert.Nil(t, output)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		})
	}
}

func TestAuthService_LoginWithGoogle_ExistingLink(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderGoogle, "google-sub-1").
		Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderGoogle, ProviderUserID: "google-sub-1"}, nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com", Name: "Test User"}, nil)
	fx.userRepo.On("Update", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.ID == userID && user.EmailVerified
	})).Return(nil)
	fx.tokenService.On("Issue", mock.AnythingOfType("service.Identity")).Return("session_token", nil)

	output, err := fx.service.LoginWithGoogle(ctx, &service.OAuthProfile{
		ID:            "google-sub-1",
		Email:         "test@example.com",
		Name:          "Test User",
		EmailVerified: true,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	fx.userRepo.AssertExpectations(t)
}

// A Google login whose address already belongs to a password account links
// the credential instead of creating a second account.
func TestAuthService_LoginWithGoogle_AttachesToExistingAccount(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderGoogle, "google-sub-1").
		Return(nil, repository.ErrAuthNotFound)
	fx.userRepo.On("FindByEmail", ctx, "test@example.com").
		Return(&entity.User{ID: userID, Email: "test@example.com", Name: "Existing", EmailVerified: true}, nil)
	fx.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.UserID == userID &&
			auth.Provider == entity.ProviderGoogle &&
			auth.ProviderUserID == "google-sub-1"
	})).Return(nil)
	fx.tokenService.On("Issue", mock.AnythingOfType("service.Identity")).Return("session_token", nil)

	output, err := fx.service.LoginWithGoogle(ctx, &service.OAuthProfile{
		ID:            "google-sub-1",
		Email:         "Test@Example.com",
		Name:          "Google Name",
		EmailVerified: true,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "Existing", output.User.Name)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.authRepo.AssertExpectations(t)
}

func TestAuthService_LoginWithGoogle_CreatesPasswordlessAccount(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderGoogle, "google-sub-1").
		Return(nil, repository.ErrAuthNotFound)
	fx.userRepo.On("FindByEmail", ctx, "fresh@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.Email == "fresh@example.com" && user.Name == "Google user" && user.EmailVerified
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = uuid.New()
	}).Return(nil)
	fx.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.Provider == entity.ProviderGoogle && auth.PasswordHash == ""
	})).Return(nil)
	fx.tokenService.On("Issue", mock.AnythingOfType("service.Identity")).Return("session_token", nil)

	output, err := fx.service.LoginWithGoogle(ctx, &service.OAuthProfile{
		ID:            "google-sub-1",
		Email:         "fresh@example.com",
		EmailVerified: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "session_token", output.Token)
	fx.userRepo.AssertExpectations(t)
}

func TestAuthService_LoginWithGoogle_IncompleteProfile(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	for _, profile := range []*service.OAuthProfile{
		nil,
		{Email: "test@example.com"},
		{ID: "google-sub-1"},
	} {
		output, err := fx.service.LoginWithGoogle(ctx, profile)

		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrOAuthFailed))
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com"}, nil)

	user, err := fx.service.CurrentUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestAuthService_CurrentUser_DeletedAccount(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.CurrentUser(ctx, userID)

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}
