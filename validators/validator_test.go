package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nft-maker-one/twitter-clone/internal/models"
)

func TestValidatePostRequest(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&models.CreatePostRequest{Content: strings.Repeat("a", 280)}))

	err := v.Validate(&models.CreatePostRequest{Content: "   "})
	require.Error(t, err)
	assert.Equal(t, "content is required", err.Error())

	err = v.Validate(&models.CreatePostRequest{Content: strings.Repeat("a", 281)})
	require.Error(t, err)
	assert.Equal(t, "content must be at most 280 characters", err.Error())
}

func TestValidateContentCountsNormalizedRunes(t *testing.T) {
	v := NewValidator()

	// Surrounding whitespace is trimmed before counting.
	require.NoError(t, v.Validate(&models.CreatePostRequest{Content: "  " + strings.Repeat("a", 280) + "\n"}))
	// "e" + combining acute composes to a single rune.
	require.NoError(t, v.Validate(&models.CreatePostRequest{Content: strings.Repeat("e\u0301", 200)}))
	require.NoError(t, v.Validate(&models.CreateCommentRequest{Content: strings.Repeat("e\u0301", 500)}))
	require.Error(t, v.Validate(&models.CreateCommentRequest{Content: strings.Repeat("e\u0301", 501)}))

	require.NoError(t, v.Validate(&models.CreateRetweetRequest{}))
	require.Error(t, v.Validate(&models.CreateRetweetRequest{Content: strings.Repeat("b", 281)}))
}

func TestValidateCreateUserRequest(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&models.CreateUserRequest{Username: "go_pher", Password: "password1"}))

	err := v.Validate(&models.CreateUserRequest{Username: "no spaces", Email: "bad", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username must be 3-30 letters")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestValidateWalletLogin(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&models.WalletLoginRequest{WalletAddress: "0xAbCdEf0123456789abcdef0123456789ABCDEF01"}))
	require.Error(t, v.Validate(&models.WalletLoginRequest{WalletAddress: "0x1234"}))
}
