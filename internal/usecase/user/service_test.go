package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guyuepp/forum-comments/domain"
	"github.com/Guyuepp/forum-comments/domain/mocks"
	"github.com/Guyuepp/forum-comments/internal/usecase/user"
)

var secret = []byte("test-secret")

func TestRegister(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.TODO()
	username := faker.Username()
	repo.On("GetByUsername", ctx, username).Return(domain.User{}, domain.ErrNotFound).Once()
	repo.On("Insert", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 5
		}).Return(nil).Once()

	svc := user.NewService(repo, secret, time.Hour)
	u, err := svc.Register(ctx, "John Doe", username, "s3cret!")

	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.NotEqual(t, "s3cret!", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret!")))
	repo.AssertExpectations(t)
}

func TestRegisterConflict(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.TODO()
	repo.On("GetByUsername", ctx, "taken").Return(domain.User{ID: 1, Username: "taken"}, nil).Once()

	svc := user.NewService(repo, secret, time.Hour)
	_, err := svc.Register(ctx, "John Doe", "taken", "s3cret!")

	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegisterBadInput(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo, secret, time.Hour)

	_, err := svc.Register(context.TODO(), " ", "john", "pw")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	_, err = svc.Register(context.TODO(), "John", "john", "")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestRegisterRepoFailure(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.TODO()
	repo.On("GetByUsername", ctx, "john").Return(domain.User{}, errors.New("bad connection")).Once()

	svc := user.NewService(repo, secret, time.Hour)
	_, err := svc.Register(ctx, "John", "john", "pw")

	assert.EqualError(t, err, "bad connection")
}

func TestLogin(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.TODO()
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByUsername", ctx, "john").Return(domain.User{ID: 9, Username: "john", Password: string(hashed)}, nil)

	svc := user.NewService(repo, secret, time.Hour)

	token, err := svc.Login(ctx, "john", "s3cret!")
	require.NoError(t, err)

	claims := &domain.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, "9", claims.Subject)

	_, err = svc.Login(ctx, "john", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.TODO()
	repo.On("GetByUsername", ctx, "ghost").Return(domain.User{}, domain.ErrNotFound).Once()

	svc := user.NewService(repo, secret, time.Hour)
	_, err := svc.Login(ctx, "ghost", "pw")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
