package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"voyage/internal/domain/entity"
	"voyage/internal/domain/repository"
	"voyage/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the transactional function directly against a fixed
// factory, standing in for a real database transaction.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeRepositoryFactory hands out the same repository doubles the test
// already holds, so expectations set outside the transaction apply inside it.
type fakeRepositoryFactory struct {
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	bookmarkRepo     repository.BookmarkRepository
	verificationRepo repository.VerificationRepository
}

func (f *fakeRepositoryFactory) NewUserRepository() repository.UserRepository { return f.userRepo }
func (f *fakeRepositoryFactory) NewAuthRepository() repository.AuthRepository { return f.authRepo }
func (f *fakeRepositoryFactory) NewBookmarkRepository() repository.BookmarkRepository {
	return f.bookmarkRepo
}

func (f *fakeRepositoryFactory) NewVerificationRepository() repository.VerificationRepository {
	return f.verificationRepo
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockAuthRepository struct{ mock.Mock }

func (m *mockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *mockAuthRepository) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthRepository) FindByResetTokenHash(ctx context.Context, hash string) (*entity.Authentication, error) {
	args := m.Called(ctx, hash)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthRepository) UpdateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

type mockBookmarkRepository struct{ mock.Mock }

func (m *mockBookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	return m.Called(ctx, bookmark).Error(0)
}

func (m *mockBookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error) {
	args := m.Called(ctx, userID)
	if bookmarks, ok := args.Get(0).([]*entity.Bookmark); ok {
		return bookmarks, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockBookmarkRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type mockVerificationRepository struct{ mock.Mock }

func (m *mockVerificationRepository) Create(ctx context.Context, code *entity.EmailVerificationCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *mockVerificationRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.EmailVerificationCode, error) {
	args := m.Called(ctx, email)
	if code, ok := args.Get(0).(*entity.EmailVerificationCode); ok {
		return code, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockVerificationRepository) FindUsable(ctx context.Context, email, code string, now time.Time) (*entity.EmailVerificationCode, error) {
	args := m.Called(ctx, email, code, now)
	if record, ok := args.Get(0).(*entity.EmailVerificationCode); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockVerificationRepository) MarkConsumed(ctx context.Context, id uuid.UUID, consumedAt time.Time) error {
	return m.Called(ctx, id, consumedAt).Error(0)
}

func (m *mockVerificationRepository) InvalidateForEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockPasswordHasher struct{ mock.Mock }

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockPasswordPolicy struct{ mock.Mock }

func (m *mockPasswordPolicy) Validate(password string) error {
	return m.Called(password).Error(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) Issue(identity service.Identity) (string, error) {
	args := m.Called(identity)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(raw string) (*service.SessionClaims, error) {
	args := m.Called(raw)
	if claims, ok := args.Get(0).(*service.SessionClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	return m.Called(ctx, to, name, code).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	return m.Called(ctx, to, name, resetURL).Error(0)
}
