package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DebitBalanceIfEnough(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Error(1)
}

// =====================
// Helper
// =====================

// テストは常に固定時刻で動かす
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// 固定のトークンを返すだけの発行器
type stubIssuer struct {
	token string
	ttl   time.Duration
	err   error
}

func (s stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token, now.Add(s.ttl), nil
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}

// =====================
// Register
// =====================

func TestRegisterUser_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	email := "user@test.com"
	pass := "CorrectHorseBattery"

	userRepo.On("FindByEmail", mock.Anything, email).Return(nil, repository.ErrUserNotFound)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 保存されるユーザーが最低限正しい形かを見る
		return u.Email == email &&
			u.IsActive &&
			u.Role == model.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != pass &&
			u.CreatedAt.Equal(now)
	})).Return(nil)

	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), fixedClock{now})

	out, err := uc.Execute(ctx, auth.RegisterUserInput{Email: email, Password: pass, Name: "Test User"})
	assert.NoError(t, err)
	assert.Equal(t, email, out.User.Email)
	// hashはレスポンスに漏らさない
	assert.Empty(t, out.User.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), fixedClock{time.Now()})

	for _, email := range []string{"", "not-an-email", "a@"} {
		_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
			Email:    email,
			Password: "CorrectHorseBattery",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat, "email=%q", email)
	}

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_PasswordTooShort(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), fixedClock{time.Now()})

	// 11文字はNG、12文字から通る
	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "user@test.com",
		Password: "elevenchars",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_WeakPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), fixedClock{time.Now()})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "user@test.com",
		Password: "123456789012",
	})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)

	email := "taken@test.com"
	userRepo.On("FindByEmail", mock.Anything, email).Return(&model.User{ID: 1, Email: email}, nil)

	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), fixedClock{time.Now()})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    email,
		Password: "CorrectHorseBattery",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBcryptHasherVerifier_RoundTrip(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	verifier := auth.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("CorrectHorseBattery")
	assert.NoError(t, err)
	assert.NotEqual(t, "CorrectHorseBattery", hashed)

	assert.True(t, verifier.Verify("CorrectHorseBattery", hashed))
	assert.False(t, verifier.Verify("WrongPassword", hashed))
}

// =====================
// Login
// =====================

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	email := "user@test.com"
	pass := "CorrectHorseBattery"

	userRepo.On("FindByEmail", mock.Anything, email).Return(&model.User{
		ID:           1,
		Email:        email,
		PasswordHash: mustHash(t, pass),
		Role:         model.RoleUser,
		IsActive:     true,
	}, nil)

	// last_login が now になっているか
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.LastLoginAt != nil && u.LastLoginAt.Equal(now)
	})).Return(nil)

	uc := auth.NewLoginUsecase(
		userRepo,
		auth.NewBcryptPasswordVerifier(),
		stubIssuer{token: "signed-token", ttl: 15 * time.Minute},
		fixedClock{now},
	)

	out, err := uc.Execute(ctx, auth.LoginInput{Email: email, Password: pass})
	assert.NoError(t, err)

	assert.Equal(t, "signed-token", out.Token.AccessToken)
	assert.Equal(t, 900, out.Token.ExpiresIn)
	assert.Equal(t, email, out.User.Email)
	assert.Empty(t, out.User.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)

	email := "user@test.com"

	// DB上のhashは正しいパスワードのもの
	userRepo.On("FindByEmail", mock.Anything, email).Return(&model.User{
		ID:           1,
		Email:        email,
		PasswordHash: mustHash(t, "CorrectHorseBattery"),
		Role:         model.RoleUser,
		IsActive:     true,
	}, nil)

	uc := auth.NewLoginUsecase(
		userRepo,
		auth.NewBcryptPasswordVerifier(),
		stubIssuer{token: "signed-token", ttl: 15 * time.Minute},
		fixedClock{time.Now()},
	)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: email, Password: "WrongPassword"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)

	// 存在しないemailでもパスワード違いと同じエラーを返す
	userRepo.On("FindByEmail", mock.Anything, "nobody@test.com").Return(nil, repository.ErrUserNotFound)

	uc := auth.NewLoginUsecase(
		userRepo,
		auth.NewBcryptPasswordVerifier(),
		stubIssuer{token: "signed-token", ttl: 15 * time.Minute},
		fixedClock{time.Now()},
	)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "nobody@test.com", Password: "whatever12345"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(MockUserRepository)

	email := "user@test.com"
	pass := "CorrectHorseBattery"

	userRepo.On("FindByEmail", mock.Anything, email).Return(&model.User{
		ID:           1,
		Email:        email,
		PasswordHash: mustHash(t, pass),
		Role:         model.RoleUser,
		IsActive:     false,
	}, nil)

	uc := auth.NewLoginUsecase(
		userRepo,
		auth.NewBcryptPasswordVerifier(),
		stubIssuer{token: "signed-token", ttl: 15 * time.Minute},
		fixedClock{time.Now()},
	)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: email, Password: pass})
	assert.ErrorIs(t, err, auth.ErrUserInactive)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
