package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/testutil"
)

type feedFixture struct {
	db      *gorm.DB
	feed    *PostgresFeedRepository
	posts   *PostgresPostRepository
	likes   *PostgresLikeRepository
	follows *PostgresFollowRepository
}

func newFeedFixture(t *testing.T) feedFixture {
	t.Helper()
	db := testutil.NewDB(t)
	likes := NewPostgresLikeRepository(db)
	return feedFixture{
		db:      db,
		feed:    NewPostgresFeedRepository(db, likes),
		posts:   NewPostgresPostRepository(db),
		likes:   likes,
		follows: NewPostgresFollowRepository(db),
	}
}

func feedIDs(posts []models.FeedPost) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestTimelineWithoutFollowsIsOwnPosts(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	own := testutil.CreatePost(t, f.db, alice.ID, "mine")
	testutil.CreatePost(t, f.db, bob.ID, "not mine")

	timeline, err := f.feed.GetTimeline(ctx, alice.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint{own.ID}, feedIDs(timeline))

	empty := testutil.CreateUser(t, f.db, "carol")
	timeline, err = f.feed.GetTimeline(ctx, empty.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	assert.NotNil(t, timeline)
	assert.Empty(t, timeline)
}

func TestTimelineIncludesFollowees(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	carol := testutil.CreateUser(t, f.db, "carol")
	p1 := testutil.CreatePost(t, f.db, bob.ID, "bob says")
	testutil.CreatePost(t, f.db, carol.ID, "carol says")
	p3 := testutil.CreatePost(t, f.db, alice.ID, "alice says")
	require.NoError(t, f.follows.Follow(ctx, alice.ID, bob.ID))

	timeline, err := f.feed.GetTimeline(ctx, alice.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint{p3.ID, p1.ID}, feedIDs(timeline))

	page, err := f.feed.GetTimeline(ctx, alice.ID, models.NewPage(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []uint{p1.ID}, feedIDs(page))
}

func TestGetAllPostsFlatShape(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	original := testutil.CreatePost(t, f.db, alice.ID, "original")
	rt, err := f.posts.CreateRetweet(ctx, bob.ID, original.ID, "")
	require.NoError(t, err)
	_, err = f.likes.ToggleLike(ctx, original.ID, bob.ID)
	require.NoError(t, err)

	posts, err := f.feed.GetAllPosts(ctx, 0, bob.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, posts, 2)

	got := posts[0]
	assert.Equal(t, rt.ID, got.ID)
	assert.Equal(t, "bob", got.Username)
	assert.True(t, got.IsRetweet)
	assert.False(t, got.Liked)
	require.NotNil(t, got.OriginalPost)
	assert.Equal(t, original.ID, got.OriginalPost.ID)
	assert.Equal(t, "alice", got.OriginalPost.Username)
	assert.True(t, got.OriginalPost.Liked)
	assert.EqualValues(t, 1, got.OriginalPost.Likes)
	assert.EqualValues(t, 1, got.OriginalPost.Retweets)

	orig := posts[1]
	assert.False(t, orig.IsRetweet)
	assert.Nil(t, orig.OriginalPost)
	assert.True(t, orig.Liked)
	assert.Equal(t, orig.LikesCount, orig.Likes)
	assert.Equal(t, orig.RetweetsCount, orig.Retweets)

	anon, err := f.feed.GetAllPosts(ctx, alice.ID, 0, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.False(t, anon[0].Liked)
}

func TestGetAllPostsOrderingAndAuthorFilter(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	p1 := testutil.CreatePost(t, f.db, alice.ID, "one")
	p2 := testutil.CreatePost(t, f.db, bob.ID, "two")
	p3 := testutil.CreatePost(t, f.db, alice.ID, "three")

	all, err := f.feed.GetAllPosts(ctx, 0, 0, models.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, feedIDs(all))

	mine, err := f.feed.GetAllPosts(ctx, alice.ID, 0, models.NewPage(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []uint{p1.ID}, feedIDs(mine))
}

func TestFeedPostJSONShape(t *testing.T) {
	wallet := "0xabcdef0123456789abcdef0123456789abcdef01"
	origID := uint(1)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	original := models.FeedPost{
		ID: 1, Content: "gm", UserID: 7, Username: "alice", WalletAddress: &wallet,
		LikesCount: 3, RetweetsCount: 1, CreatedAt: created,
	}
	original.Flatten()
	post := models.FeedPost{
		ID: 2, Content: "gm", UserID: 8, Username: "bob", AvatarURL: "https://cdn.example.com/bob.png",
		OriginalPostID: &origID, OriginalPost: &original, Liked: true, CreatedAt: created.Add(time.Minute),
	}
	post.Flatten()

	raw, err := json.MarshalIndent(post, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "feed_post", raw)
}

func TestSearchPosts(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice")
	hit := testutil.CreatePost(t, f.db, alice.ID, "Learning zymurgy with friends")
	testutil.CreatePost(t, f.db, alice.ID, "nothing to see here")
	both := testutil.CreatePost(t, f.db, alice.ID, "zymurgy and golang together")

	tests := []struct {
		name  string
		query string
		want  []uint
	}{
		{name: "token in exactly one post", query: "friends", want: []uint{hit.ID}},
		{name: "shared token", query: "ZYMURGY", want: []uint{both.ID, hit.ID}},
		{name: "all tokens required", query: "zymurgy golang", want: []uint{both.ID}},
		{name: "prefix", query: "zymur", want: []uint{both.ID, hit.ID}},
		{name: "operators stripped", query: `zymurgy & !(golang) | "x"`, want: []uint{}},
		{name: "colon and quotes degrade to tokens", query: `learning:zymurgy "friends"`, want: []uint{hit.ID}},
		{name: "quoted single token", query: `"golang"`, want: []uint{both.ID}},
		{name: "special characters only", query: `&|!()<>*:'"\`, want: []uint{}},
		{name: "punctuation only", query: "% -- ...", want: []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.feed.Search(ctx, tt.query, 0, models.NewPage(0, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.want, feedIDs(got))
		})
	}
}
