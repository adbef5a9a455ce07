package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/testutil"
)

func TestFollowLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, repo.Follow(ctx, alice.ID, bob.ID))

	ok, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok, "follow edges are directed")

	err = repo.Follow(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, apperrors.ErrAlreadyFollowing)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualValues(t, 1, countRows(t, db, &models.Follow{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &models.Notification{}, "type = ?", models.NotificationFollow))

	require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))
	err = repo.Unfollow(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFollowing)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFollowRejectsSelfAndUnknown(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")

	err := repo.Follow(ctx, alice.ID, alice.ID)
	require.ErrorIs(t, err, apperrors.ErrSelfFollow)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	err = repo.Follow(ctx, alice.ID, 12345)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Zero(t, countRows(t, db, &models.Follow{}, ""))
}

func TestFollowersAndFollowing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	require.NoError(t, repo.Follow(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.Follow(ctx, carol.ID, alice.ID))
	require.NoError(t, repo.Follow(ctx, alice.ID, carol.ID))

	followers, err := repo.GetFollowers(ctx, alice.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "carol", followers[0].Username, "most recent follower first")
	assert.Equal(t, "bob", followers[1].Username)

	following, err := repo.GetFollowing(ctx, alice.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, carol.ID, following[0].ID)

	n, err := repo.GetFollowersCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = repo.GetFollowingCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
