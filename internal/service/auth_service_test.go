package service

import (
	"context"
	"testing"

	"locallens/internal/models"
	"locallens/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func testIssuer() *token.Issuer {
	return token.NewIssuer("test-secret-for-service-tests")
}

func TestAuthService_Register(t *testing.T) {
	var created *models.User
	users := noopUserRepo()
	users.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 7
		created = u
		return nil
	}
	svc := NewAuthService(users, testIssuer())

	tok, user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	require.NotNil(t, created)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, models.DefaultAvatar, user.Avatar)

	// Stored secret is a bcrypt hash of the input, never the input itself.
	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(noopUserRepo(), testIssuer())
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing fields", RegisterInput{Username: "alice"}},
		{"short username", RegisterInput{Username: "ab", Email: "a@x.com", Password: "secret123"}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret123"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@x.com", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 1, Email: "a@x.com"}, nil
	}
	svc := NewAuthService(users, testIssuer())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret123",
	})
	assertValidationError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "a@x.com" {
			return &models.User{ID: 1, Email: email, Password: string(hashed)}, nil
		}
		return nil, nil
	}
	svc := NewAuthService(users, testIssuer())
	ctx := context.Background()

	tok, user, err := svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, uint(1), user.ID)

	// Unknown email and wrong password fail with the same error.
	_, _, unknownErr := svc.Login(ctx, "nobody@x.com", "secret123")
	assertValidationError(t, unknownErr)
	_, _, wrongErr := svc.Login(ctx, "a@x.com", "wrongpass")
	assertValidationError(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_VerifySession(t *testing.T) {
	iss := testIssuer()
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 1 {
			return &models.User{ID: 1, Username: "alice"}, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewAuthService(users, iss)
	ctx := context.Background()

	tok, err := iss.Issue(1)
	require.NoError(t, err)

	user, err := svc.VerifySession(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.VerifySession(ctx, "not-a-token")
	assertUnauthorizedError(t, err)

	// Token for a user that no longer exists is unauthorized, not 404.
	goneTok, err := iss.Issue(99)
	require.NoError(t, err)
	_, err = svc.VerifySession(ctx, goneTok)
	assertUnauthorizedError(t, err)
}
