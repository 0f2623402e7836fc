package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	auth "github.com/TuanDoan14112003/storebuilder-backend/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type stubIssuer struct{}

func (i *stubIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	return "token", now.Add(15 * time.Minute), nil
}

func newClock() *fixedClock {
	return &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	uc := auth.NewRegisterUserUsecase(new(UserRepoMock), auth.NewBcryptPasswordHasher(4), newClock())

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "not-an-email",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	uc := auth.NewRegisterUserUsecase(new(UserRepoMock), auth.NewBcryptPasswordHasher(4), newClock())

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "a@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	userRepo := new(UserRepoMock)
	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(4), newClock())

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{ID: 1}, nil)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "a@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

// 登録成功。平文は保存せず、返すときはハッシュも伏せる。
func TestRegisterUser_Success(t *testing.T) {
	userRepo := new(UserRepoMock)
	uc := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(4), newClock())

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "a@example.com" && u.PasswordHash != "" && u.PasswordHash != "longenough"
	})).Return(nil)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "a@example.com",
		Name:     "Alice",
		Password: "longenough",
	})
	assert.NoError(t, err)
	assert.Equal(t, "", out.User.PasswordHash)
	assert.Equal(t, "Alice", out.User.Name)

	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(UserRepoMock)
	hasher := auth.NewBcryptPasswordHasher(4)
	hashed, _ := hasher.Hash("correct-password")

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(
		&model.User{ID: 1, Email: "a@example.com", PasswordHash: hashed}, nil)

	uc := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), &stubIssuer{}, newClock())

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "a@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	uc := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), &stubIssuer{}, newClock())

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(UserRepoMock)
	hasher := auth.NewBcryptPasswordHasher(4)
	hashed, _ := hasher.Hash("correct-password")

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(
		&model.User{ID: 1, Email: "a@example.com", PasswordHash: hashed}, nil)

	uc := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), &stubIssuer{}, newClock())

	out, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "a@example.com",
		Password: "correct-password",
	})
	assert.NoError(t, err)
	assert.Equal(t, "token", out.Token.AccessToken)
	assert.Equal(t, int(15*time.Minute/time.Second), out.Token.ExpiresIn)
	assert.Equal(t, "", out.User.PasswordHash)
}
