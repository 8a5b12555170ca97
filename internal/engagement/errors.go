package engagement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrReplyNotFound = errors.New("reply not found")
	ErrForbidden     = errors.New("not the owner")
	// ErrLikeConflict 取消点赞时删除了 0 行：另一个请求抢先删掉了这条点赞
	ErrLikeConflict = errors.New("like was removed concurrently")
)

// ValidationError 参数不合法，不会触达数据库
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError 包装任意一步数据库失败。ID 是给用户看的关联号，
// 原始错误只写日志，不返回给调用方。
type StorageError struct {
	Op  string
	ID  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.ID, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewErrorID 生成形如 ERR-1700000000-3FA2 的错误 ID
func NewErrorID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ERR-%d-%s", time.Now().Unix(), suffix)
}

// NewStorageError 生成错误 ID 并记录日志，engagement 之外的数据库失败也走这里
func NewStorageError(op string, err error) error {
	return storageErr(op, err)
}

func storageErr(op string, err error) error {
	se := &StorageError{Op: op, ID: NewErrorID(), Err: err}
	zap.L().Error("database error",
		zap.String("error_id", se.ID),
		zap.String("op", op),
		zap.Error(err),
	)
	return se
}
