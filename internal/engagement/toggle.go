package engagement

import (
	"context"
	"errors"

	"bbs/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UnlikePolicy 决定取消点赞时 DELETE 影响 0 行的处理方式
type UnlikePolicy int

const (
	// UnlikeConflict 返回 ErrLikeConflict
	UnlikeConflict UnlikePolicy = iota
	// UnlikeReconcile 与点赞的插入冲突一样处理：回滚后读一次当前计数，当作已取消
	UnlikeReconcile
)

func ParseUnlikePolicy(s string) UnlikePolicy {
	if s == "reconcile" {
		return UnlikeReconcile
	}
	return UnlikeConflict
}

type ToggleResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

var errAlreadyLiked = errors.New("like row already exists")

// LikeToggler 切换 (post, user) 的点赞状态并维护 posts.like_count。
//
// 是否已点赞的预查询只用来选择走 INSERT 还是 DELETE；真正判断本次请求
// 有没有改变状态的是写语句的影响行数，唯一索引 uk_post_user 是最终仲裁。
// 返回的计数总是在事务结束后重新从库里读出。
type LikeToggler struct {
	db     *gorm.DB
	policy UnlikePolicy
	probe  func(ctx context.Context, postID, userID uint) (bool, error)
}

func NewLikeToggler(db *gorm.DB, policy UnlikePolicy) *LikeToggler {
	t := &LikeToggler{db: db, policy: policy}
	t.probe = t.hasLiked
	return t
}

func (t *LikeToggler) Toggle(ctx context.Context, postID, userID uint) (*ToggleResult, error) {
	ok, err := postExists(ctx, t.db, postID)
	if err != nil {
		return nil, storageErr("check post", err)
	}
	if !ok {
		return nil, ErrPostNotFound
	}

	liked, err := t.probe(ctx, postID, userID)
	if err != nil {
		return nil, storageErr("check like", err)
	}

	// 事务开始后必须走到提交或回滚，客户端断开也不能中途放弃
	txCtx := context.WithoutCancel(ctx)
	if liked {
		return t.unlike(txCtx, postID, userID)
	}
	return t.like(txCtx, postID, userID)
}

func (t *LikeToggler) like(ctx context.Context, postID, userID uint) (*ToggleResult, error) {
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.PostLike{PostID: postID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyLiked
		}
		res = tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("like_count", gorm.Expr("like_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		// 存在性检查之后帖子被删了，回滚掉刚插入的点赞行
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})

	if errors.Is(err, ErrPostNotFound) {
		return nil, err
	}
	if errors.Is(err, errAlreadyLiked) {
		// 并发请求已经插入了同一行，本事务已回滚，计数没动
		zap.L().Debug("like insert raced, reconciling",
			zap.Uint("post_id", postID), zap.Uint("user_id", userID))
	} else if err != nil {
		return nil, storageErr("insert like", err)
	}

	return t.result(ctx, postID, true)
}

func (t *LikeToggler) unlike(ctx context.Context, postID, userID uint) (*ToggleResult, error) {
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLikeConflict
		}
		return tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})

	if errors.Is(err, ErrLikeConflict) {
		if t.policy == UnlikeReconcile {
			return t.result(ctx, postID, false)
		}
		zap.L().Warn("unlike deleted no rows",
			zap.Uint("post_id", postID), zap.Uint("user_id", userID))
		return nil, ErrLikeConflict
	}
	if err != nil {
		return nil, storageErr("delete like", err)
	}

	return t.result(ctx, postID, false)
}

func (t *LikeToggler) result(ctx context.Context, postID uint, liked bool) (*ToggleResult, error) {
	count, err := readLikeCount(ctx, t.db, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Liked: liked, LikeCount: count}, nil
}

func (t *LikeToggler) hasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&n).Error
	return n > 0, err
}

func postExists(ctx context.Context, db *gorm.DB, postID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&n).Error
	return n > 0, err
}

func readLikeCount(ctx context.Context, db *gorm.DB, postID uint) (int, error) {
	var post models.Post
	err := db.WithContext(ctx).Select("like_count").Where("id = ?", postID).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, storageErr("read like count", err)
	}
	return post.LikeCount, nil
}
