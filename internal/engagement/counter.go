package engagement

import (
	"context"
	"errors"

	"bbs/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CounterWriter 把回复行的增删和 posts.reply_count 的增减放进同一个事务，
// 另外负责浏览数的自增。
type CounterWriter struct {
	db *gorm.DB
}

func NewCounterWriter(db *gorm.DB) *CounterWriter {
	return &CounterWriter{db: db}
}

func (w *CounterWriter) CreateReply(ctx context.Context, postID, userID uint, content string) (uint, error) {
	ok, err := postExists(ctx, w.db, postID)
	if err != nil {
		return 0, storageErr("check post", err)
	}
	if !ok {
		return 0, ErrPostNotFound
	}

	reply := models.Reply{PostID: postID, UserID: userID, Content: content}
	err = w.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("reply_count", gorm.Expr("reply_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		// 存在性检查之后帖子被删了，不能留下孤儿回复
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
	if errors.Is(err, ErrPostNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, storageErr("create reply", err)
	}
	return reply.ID, nil
}

func (w *CounterWriter) DeleteReply(ctx context.Context, replyID, userID uint) error {
	var reply models.Reply
	err := w.db.WithContext(ctx).Select("id", "user_id", "post_id").
		Where("id = ?", replyID).Take(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReplyNotFound
	}
	if err != nil {
		return storageErr("find reply", err)
	}
	if reply.UserID != userID {
		return ErrForbidden
	}

	err = w.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", replyID).Delete(&models.Reply{})
		if res.Error != nil {
			return res.Error
		}
		// 被并发删除过，计数已经由那个请求减过了
		if res.RowsAffected == 0 {
			return ErrReplyNotFound
		}
		return tx.Model(&models.Post{}).Where("id = ? AND reply_count > 0", reply.PostID).
			Update("reply_count", gorm.Expr("reply_count - 1")).Error
	})
	if errors.Is(err, ErrReplyNotFound) {
		return err
	}
	if err != nil {
		return storageErr("delete reply", err)
	}
	return nil
}

// IncrementView 失败只记日志，不影响详情读取。浏览数不要求和点赞、回复一样精确。
func (w *CounterWriter) IncrementView(ctx context.Context, postID uint) {
	err := w.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		zap.L().Warn("increment view count failed", zap.Uint("post_id", postID), zap.Error(err))
	}
}
