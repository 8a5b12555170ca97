package engagement

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"bbs/internal/infra/db"
	"bbs/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的 SQLite 文件
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bbs.db")
	gdb, err := gorm.Open(sqlite.Open(db.SQLiteDSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{Username: name, PasswordHash: "x", Email: name + "@example.com"}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func seedPost(t *testing.T, gdb *gorm.DB, authorID uint) models.Post {
	t.Helper()
	return seedPostAt(t, gdb, authorID, time.Now())
}

func seedPostAt(t *testing.T, gdb *gorm.DB, authorID uint, at time.Time) models.Post {
	t.Helper()
	p := models.Post{
		UserID:    authorID,
		Title:     fmt.Sprintf("post by %d", authorID),
		Content:   "some content long enough",
		CreatedAt: at,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

func loadPost(t *testing.T, gdb *gorm.DB, id uint) models.Post {
	t.Helper()
	var p models.Post
	require.NoError(t, gdb.Take(&p, id).Error)
	return p
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func likeRows(t *testing.T, gdb *gorm.DB, postID uint) int64 {
	return countRows(t, gdb, &models.PostLike{}, "post_id = ?", postID)
}

func replyRows(t *testing.T, gdb *gorm.DB, postID uint) int64 {
	return countRows(t, gdb, &models.Reply{}, "post_id = ?", postID)
}
