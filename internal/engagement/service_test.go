package engagement

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bbs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{1, 20, 1, 20},
		{0, 20, 1, 20},
		{-3, 20, 1, 20},
		{2, 0, 2, 1},
		{2, -5, 2, 1},
		{3, 100, 3, 100},
		{3, 101, 3, 100},
		{3, 5000, 3, 100},
	}
	for _, tc := range cases {
		page, size := ClampPage(tc.page, tc.size)
		assert.Equal(t, tc.wantPage, page, "page(%d,%d)", tc.page, tc.size)
		assert.Equal(t, tc.wantSize, size, "size(%d,%d)", tc.page, tc.size)
	}
}

func TestServiceValidation(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewService(gdb, Options{})
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"toggle zero id", func() error { _, err := svc.ToggleLike(ctx, 1, 0); return err }, "post_id"},
		{"toggle negative id", func() error { _, err := svc.ToggleLike(ctx, 1, -4); return err }, "post_id"},
		{"reply zero post", func() error { _, err := svc.CreateReply(ctx, 1, 0, "hi"); return err }, "post_id"},
		{"reply blank", func() error { _, err := svc.CreateReply(ctx, 1, 1, "   "); return err }, "content"},
		{"reply too long", func() error { _, err := svc.CreateReply(ctx, 1, 1, strings.Repeat("a", 1001)); return err }, "content"},
		{"delete reply zero id", func() error { return svc.DeleteReply(ctx, 1, 0) }, "reply_id"},
		{"post title short", func() error { _, err := svc.CreatePost(ctx, 1, "abcd", "0123456789"); return err }, "title"},
		{"post title long", func() error { _, err := svc.CreatePost(ctx, 1, strings.Repeat("t", 201), "0123456789"); return err }, "title"},
		{"post content short", func() error { _, err := svc.CreatePost(ctx, 1, "title", "short"); return err }, "content"},
		{"post blank", func() error { _, err := svc.CreatePost(ctx, 1, " ", " "); return err }, "title"},
		{"detail zero id", func() error { _, err := svc.PostDetail(ctx, 0); return err }, "id"},
		{"delete post zero id", func() error { return svc.DeletePost(ctx, 1, 0) }, "post_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestLengthCountsCharacters(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb, "writer")
	svc := NewService(gdb, Options{})

	// 5 个汉字是 15 个字节，按字符算刚好满足最小长度
	id, err := svc.CreatePost(context.Background(), user.ID, "校园论坛帖", "这是一段足够长的正文内容啊")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = svc.CreateReply(context.Background(), user.ID, int64(id), strings.Repeat("好", 1000))
	assert.NoError(t, err)
}

func TestServiceToggleScenario(t *testing.T) {
	gdb := newTestDB(t)
	post := seedPost(t, gdb, seedUser(t, gdb, "author").ID)
	svc := NewService(gdb, Options{UnlikePolicy: UnlikeConflict})
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, 7, int64(post.ID))
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Liked: true, LikeCount: 1}, *res)

	res, err = svc.ToggleLike(ctx, 7, int64(post.ID))
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Liked: false, LikeCount: 0}, *res)

	_, err = svc.ToggleLike(ctx, 7, int64(post.ID)+50)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPosts(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb, "lister")
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 5; i++ {
		ids = append(ids, seedPostAt(t, gdb, user.ID, base.Add(time.Duration(i)*time.Minute)).ID)
	}
	svc := NewService(gdb, Options{})
	ctx := context.Background()

	page, err := svc.ListPosts(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, ids[4], page.Posts[0].ID)
	assert.Equal(t, ids[3], page.Posts[1].ID)
	assert.Equal(t, "lister", page.Posts[0].Author)
	assert.Equal(t, user.ID, page.Posts[0].AuthorID)

	page, err = svc.ListPosts(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, ids[0], page.Posts[0].ID)

	page, err = svc.ListPosts(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxPageSize, page.Size)
	assert.Len(t, page.Posts, 5)
}

func TestListPostsEmpty(t *testing.T) {
	svc := NewService(newTestDB(t), Options{})

	page, err := svc.ListPosts(context.Background(), 4, 20)
	require.NoError(t, err)
	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.EqualValues(t, 0, page.Total)
}

func TestPostDetail(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "author")
	replier := seedUser(t, gdb, "replier")
	post := seedPost(t, gdb, author.ID)
	svc := NewService(gdb, Options{})
	ctx := context.Background()

	first, err := svc.CreateReply(ctx, replier.ID, int64(post.ID), "first reply")
	require.NoError(t, err)
	second, err := svc.CreateReply(ctx, author.ID, int64(post.ID), "second reply")
	require.NoError(t, err)

	detail, err := svc.PostDetail(ctx, int64(post.ID))
	require.NoError(t, err)
	assert.Equal(t, post.ID, detail.Post.ID)
	assert.Equal(t, post.Content, detail.Post.Content)
	assert.Equal(t, "author", detail.Post.Author)
	assert.Equal(t, 1, detail.Post.ViewCount)
	assert.Equal(t, 2, detail.Post.ReplyCount)
	require.Len(t, detail.Replies, 2)
	assert.Equal(t, first, detail.Replies[0].ID)
	assert.Equal(t, "replier", detail.Replies[0].Author)
	assert.Equal(t, second, detail.Replies[1].ID)

	detail, err = svc.PostDetail(ctx, int64(post.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Post.ViewCount)
}

func TestPostDetailMissing(t *testing.T) {
	svc := NewService(newTestDB(t), Options{})
	_, err := svc.PostDetail(context.Background(), 77)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "author")
	other := seedUser(t, gdb, "other")
	post := seedPost(t, gdb, author.ID)
	svc := NewService(gdb, Options{})
	ctx := context.Background()

	_, err := svc.CreateReply(ctx, other.ID, int64(post.ID), "nice")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, other.ID, int64(post.ID))
	require.NoError(t, err)

	err = svc.DeletePost(ctx, other.ID, int64(post.ID))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.EqualValues(t, 1, countRows(t, gdb, &models.Post{}, "id = ?", post.ID))

	require.NoError(t, svc.DeletePost(ctx, author.ID, int64(post.ID)))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Post{}, "id = ?", post.ID))
	assert.EqualValues(t, 0, replyRows(t, gdb, post.ID))
	assert.EqualValues(t, 0, likeRows(t, gdb, post.ID))

	err = svc.DeletePost(ctx, author.ID, int64(post.ID))
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestStorageErrorCarriesID(t *testing.T) {
	gdb := newTestDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = NewService(gdb, Options{}).ToggleLike(context.Background(), 1, 1)
	var se *StorageError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Regexp(t, `^ERR-\d+-[0-9A-F]{4}$`, se.ID)
	assert.Equal(t, "check post", se.Op)
}

func TestParseUnlikePolicy(t *testing.T) {
	assert.Equal(t, UnlikeReconcile, ParseUnlikePolicy("reconcile"))
	assert.Equal(t, UnlikeConflict, ParseUnlikePolicy("conflict"))
	assert.Equal(t, UnlikeConflict, ParseUnlikePolicy(""))
}

func TestCountPostsIgnoresCallerCancel(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb, "counter")
	seedPost(t, gdb, user.ID)
	seedPost(t, gdb, user.ID)
	svc := NewService(gdb, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	total, err := svc.countPosts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
