package engagement

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/golang/groupcache/singleflight"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	titleMin        = 5
	titleMax        = 200
	postContentMin  = 10
	postContentMax  = 10000
	replyContentMin = 1
	replyContentMax = 1000

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Options struct {
	UnlikePolicy UnlikePolicy
}

// Service 按接口编排点赞、回复、帖子的读写：参数校验、存在性与归属检查在
// 开事务之前完成，计数相关的写入交给 LikeToggler 和 CounterWriter。
type Service struct {
	db     *gorm.DB
	likes  *LikeToggler
	writer *CounterWriter
	group  *singleflight.Group
	tracer trace.Tracer
}

func NewService(db *gorm.DB, opts Options) *Service {
	return &Service{
		db:     db,
		likes:  NewLikeToggler(db, opts.UnlikePolicy),
		writer: NewCounterWriter(db),
		group:  &singleflight.Group{},
		tracer: otel.Tracer("bbs/engagement"),
	}
}

func (s *Service) ToggleLike(ctx context.Context, userID uint, postID int64) (*ToggleResult, error) {
	ctx, span := s.start(ctx, "ToggleLike", postID)
	defer span.End()

	if postID <= 0 {
		return nil, invalid("post_id", "帖子ID无效")
	}
	res, err := s.likes.Toggle(ctx, uint(postID), userID)
	if err != nil {
		return nil, record(span, err)
	}
	span.SetAttributes(attribute.Bool("liked", res.Liked), attribute.Int("like_count", res.LikeCount))
	return res, nil
}

func (s *Service) CreateReply(ctx context.Context, userID uint, postID int64, content string) (uint, error) {
	ctx, span := s.start(ctx, "CreateReply", postID)
	defer span.End()

	if postID <= 0 {
		return 0, invalid("post_id", "帖子ID无效")
	}
	if strings.TrimSpace(content) == "" {
		return 0, invalid("content", "回复内容不能为空")
	}
	if !lengthBetween(content, replyContentMin, replyContentMax) {
		return 0, invalid("content", "回复内容长度必须在1-1000字之间")
	}

	id, err := s.writer.CreateReply(ctx, uint(postID), userID, content)
	if err != nil {
		return 0, record(span, err)
	}
	return id, nil
}

func (s *Service) DeleteReply(ctx context.Context, userID uint, replyID int64) error {
	ctx, span := s.tracer.Start(ctx, "engagement.DeleteReply",
		trace.WithAttributes(attribute.Int64("reply_id", replyID)))
	defer span.End()

	if replyID <= 0 {
		return invalid("reply_id", "回复ID无效")
	}
	if err := s.writer.DeleteReply(ctx, uint(replyID), userID); err != nil {
		return record(span, err)
	}
	return nil
}

func (s *Service) start(ctx context.Context, op string, postID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "engagement."+op, trace.WithAttributes(attribute.Int64("post_id", postID)))
}

func record(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// 按字符数而不是字节数计算长度
func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// ClampPage 把分页参数收敛到合法范围
func ClampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}
