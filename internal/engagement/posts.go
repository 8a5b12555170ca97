package engagement

import (
	"context"
	"errors"
	"strings"
	"time"

	"bbs/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	countTimeout = 5 * time.Second

	postColumns = "p.id, p.title, p.view_count, p.like_count, p.reply_count, p.created_at, " +
		"u.id AS author_id, u.username AS author"
)

func (s *Service) CreatePost(ctx context.Context, userID uint, title, content string) (uint, error) {
	ctx, span := s.tracer.Start(ctx, "engagement.CreatePost")
	defer span.End()

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return 0, invalid("title", "标题和内容不能为空")
	}
	if !lengthBetween(title, titleMin, titleMax) {
		return 0, invalid("title", "标题长度必须在5-200字之间")
	}
	if !lengthBetween(content, postContentMin, postContentMax) {
		return 0, invalid("content", "内容长度必须在10-10000字之间")
	}

	post := models.Post{UserID: userID, Title: title, Content: content}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return 0, record(span, storageErr("create post", err))
	}
	span.SetAttributes(attribute.Int64("post_id", int64(post.ID)))
	return post.ID, nil
}

func (s *Service) ListPosts(ctx context.Context, page, size int) (*models.PostPage, error) {
	ctx, span := s.tracer.Start(ctx, "engagement.ListPosts")
	defer span.End()

	page, size = ClampPage(page, size)

	total, err := s.countPosts(ctx)
	if err != nil {
		return nil, record(span, storageErr("count posts", err))
	}

	posts := make([]models.PostBrief, 0, size)
	err = s.db.WithContext(ctx).Table("posts AS p").
		Select(postColumns).
		Joins("JOIN users u ON p.user_id = u.id").
		Order("p.created_at DESC, p.id DESC").
		Limit(size).Offset((page - 1) * size).
		Scan(&posts).Error
	if err != nil {
		return nil, record(span, storageErr("list posts", err))
	}

	return &models.PostPage{Posts: posts, Total: total, Page: page, Size: size}, nil
}

// countPosts 让并发的列表请求共用同一次 COUNT(*)。共享的查询不跟随任何一个调用方的取消，
// 只受 countTimeout 限制。
func (s *Service) countPosts(ctx context.Context) (int64, error) {
	v, err := s.group.Do("posts:total", func() (interface{}, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), countTimeout)
		defer cancel()
		var total int64
		err := s.db.WithContext(qctx).Model(&models.Post{}).Count(&total).Error
		return total, err
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// PostDetail 先把浏览数加一，再读详情。两条语句不在一个事务里，
// 返回的 view_count 已经包含这次浏览。
func (s *Service) PostDetail(ctx context.Context, postID int64) (*models.PostDetail, error) {
	ctx, span := s.start(ctx, "PostDetail", postID)
	defer span.End()

	if postID <= 0 {
		return nil, invalid("id", "帖子ID格式错误")
	}
	id := uint(postID)

	s.writer.IncrementView(ctx, id)

	var post models.PostView
	res := s.db.WithContext(ctx).Table("posts AS p").
		Select(postColumns+", p.content").
		Joins("JOIN users u ON p.user_id = u.id").
		Where("p.id = ?", id).
		Limit(1).
		Scan(&post)
	if res.Error != nil {
		return nil, record(span, storageErr("get post", res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, record(span, ErrPostNotFound)
	}

	replies := make([]models.ReplyView, 0)
	err := s.db.WithContext(ctx).Table("replies AS r").
		Select("r.id, r.content, r.created_at, u.id AS author_id, u.username AS author").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.post_id = ?", id).
		Order("r.created_at ASC, r.id ASC").
		Scan(&replies).Error
	if err != nil {
		return nil, record(span, storageErr("list replies", err))
	}

	return &models.PostDetail{Post: post, Replies: replies}, nil
}

// DeletePost 只有作者能删，点赞和回复在同一个事务里一起删掉
func (s *Service) DeletePost(ctx context.Context, userID uint, postID int64) error {
	ctx, span := s.start(ctx, "DeletePost", postID)
	defer span.End()

	if postID <= 0 {
		return invalid("post_id", "帖子ID无效")
	}
	id := uint(postID)

	var post models.Post
	err := s.db.WithContext(ctx).Select("id", "user_id").Where("id = ?", id).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record(span, ErrPostNotFound)
	}
	if err != nil {
		return record(span, storageErr("find post", err))
	}
	if post.UserID != userID {
		return record(span, ErrForbidden)
	}

	err = s.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
	if errors.Is(err, ErrPostNotFound) {
		return record(span, err)
	}
	if err != nil {
		return record(span, storageErr("delete post", err))
	}
	return nil
}
