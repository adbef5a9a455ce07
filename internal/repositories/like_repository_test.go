package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/testutil"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "like me")

	res, err := repo.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeResult{Liked: true, LikeCount: 1}, res)
	assert.EqualValues(t, 1, countRows(t, db, &models.Notification{}, "recipient_id = ? AND type = ?", alice.ID, models.NotificationLike))

	res, err = repo.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeResult{Liked: false, LikeCount: 0}, res)

	assert.Zero(t, countRows(t, db, &models.Like{}, ""))
	assert.Zero(t, reloadPost(t, db, post.ID).LikesCount)
}

func TestToggleLikeMissingPost(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	bob := testutil.CreateUser(t, db, "bob")

	_, err := repo.ToggleLike(context.Background(), 31337, bob.ID)
	require.ErrorIs(t, err, apperrors.ErrPostNotFound)
	assert.Zero(t, countRows(t, db, &models.Like{}, ""))
}

func TestToggleLikeCounterMatchesRows(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	post := testutil.CreatePost(t, db, author.ID, "popular")

	const fans = 8
	users := make([]*models.User, fans)
	for i := range users {
		users[i] = testutil.CreateUser(t, db, fmt.Sprintf("fan_%d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, fans*3)
	for _, u := range users {
		wg.Add(1)
		go func(uid uint) {
			defer wg.Done()
			// like, unlike, like: every fan ends up liking the post
			for i := 0; i < 3; i++ {
				if _, err := repo.ToggleLike(ctx, post.ID, uid); err != nil {
					errs <- err
				}
			}
		}(u.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows := countRows(t, db, &models.Like{}, "post_id = ?", post.ID)
	assert.EqualValues(t, fans, rows)
	assert.Equal(t, rows, reloadPost(t, db, post.ID).LikesCount)
}

func TestGetLikeInfo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "p")
	_, err := repo.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)

	info, err := repo.GetLikeInfo(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeInfo{PostID: post.ID, LikeCount: 1, Liked: true}, info)

	info, err = repo.GetLikeInfo(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.False(t, info.Liked, "anonymous viewers never see liked")
	assert.EqualValues(t, 1, info.LikeCount)

	_, err = repo.GetLikeInfo(ctx, 404, bob.ID)
	require.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestLikedPostIDsAndEnrich(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	p1 := testutil.CreatePost(t, db, alice.ID, "one")
	p2 := testutil.CreatePost(t, db, alice.ID, "two")
	_, err := repo.ToggleLike(ctx, p2.ID, alice.ID)
	require.NoError(t, err)

	liked, err := repo.LikedPostIDs(ctx, alice.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{p2.ID: true}, liked)

	feed := []models.FeedPost{
		{ID: p1.ID, OriginalPostID: &p2.ID, OriginalPost: &models.FeedPost{ID: p2.ID}},
		{ID: p2.ID},
	}
	require.NoError(t, repo.EnrichLikes(ctx, feed, alice.ID))
	assert.False(t, feed[0].Liked)
	assert.True(t, feed[0].OriginalPost.Liked)
	assert.True(t, feed[1].Liked)

	require.NoError(t, repo.EnrichLikes(ctx, feed[1:], 0))
	assert.True(t, feed[1].Liked, "anonymous enrichment leaves the batch untouched")
}
