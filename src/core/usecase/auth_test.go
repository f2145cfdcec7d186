package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports/mocks"
)

// stubIssuer is a deterministic token issuer for tests.
type stubIssuer struct{}

func (stubIssuer) Generate(userID int64, role string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func TestSignupCustomer(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewAuthService(repo, stubIssuer{}, testLogger())

	result, err := svc.Signup(context.Background(), SignupInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, result.User.Role)
	assert.Nil(t, result.Profile)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "correct-horse", result.User.PasswordHash, "password must be hashed")
}

func TestSignupVendorRequiresBusinessName(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewAuthService(repo, stubIssuer{}, testLogger())
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{
		Username: "shop",
		Password: "correct-horse",
		IsVendor: true,
	})
	assert.True(t, domain.IsValidationError(err))

	result, err := svc.Signup(ctx, SignupInput{
		Username:     "shop",
		Password:     "correct-horse",
		IsVendor:     true,
		BusinessName: "Ada's Wares",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVendor, result.User.Role)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "Ada's Wares", result.Profile.BusinessName)
}

func TestSignupValidation(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewAuthService(repo, stubIssuer{}, testLogger())
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "", Password: "correct-horse"})
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.Signup(ctx, SignupInput{Username: "ada", Password: "short"})
	assert.True(t, domain.IsValidationError(err))
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewAuthService(repo, stubIssuer{}, testLogger())
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "ada", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Username: "ada", Password: "other-password"})
	assert.True(t, domain.IsConflict(err))
}

func TestLogin(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewAuthService(repo, stubIssuer{}, testLogger())
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "ada", Password: "correct-horse"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "ada", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(ctx, "ada", "wrong-password")
	assert.True(t, domain.IsUnauthorized(err))

	// Unknown users get the same answer as wrong passwords.
	_, err = svc.Login(ctx, "nobody", "correct-horse")
	assert.True(t, domain.IsUnauthorized(err))
}

func TestMe(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewAuthService(repo, stubIssuer{}, testLogger())
	ctx := context.Background()

	result, err := svc.Signup(ctx, SignupInput{
		Username:     "shop",
		Password:     "correct-horse",
		IsVendor:     true,
		BusinessName: "Ada's Wares",
	})
	require.NoError(t, err)

	user, profile, err := svc.Me(ctx, domain.Actor{UserID: result.User.ID, Role: domain.RoleVendor})
	require.NoError(t, err)
	assert.Equal(t, "shop", user.Username)
	require.NotNil(t, profile)
	assert.Equal(t, "Ada's Wares", profile.BusinessName)

	_, _, err = svc.Me(ctx, domain.Guest())
	assert.True(t, domain.IsUnauthorized(err))
}
