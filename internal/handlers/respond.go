package handlers

import (
	"errors"
	"fmt"

	"bbs/internal/engagement"
	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError 把 engagement 的错误翻译成统一的响应结构。
// 数据库错误只带错误 ID，不暴露 SQL 或表名。
func RespondError(c *gin.Context, err error) {
	var ve *engagement.ValidationError
	var se *engagement.StorageError

	switch {
	case errors.As(err, &ve):
		utils.Error(c, utils.CodeParamError, ve.Reason)
	case errors.Is(err, engagement.ErrPostNotFound):
		utils.Error(c, utils.CodePostNotFound, "")
	case errors.Is(err, engagement.ErrReplyNotFound):
		utils.Error(c, utils.CodeReplyNotFound, "")
	case errors.Is(err, engagement.ErrForbidden):
		utils.Error(c, utils.CodeNoPermission, "")
	case errors.Is(err, engagement.ErrLikeConflict):
		utils.Error(c, utils.CodeLikeConflict, "")
	case errors.As(err, &se):
		_ = c.Error(err)
		utils.Error(c, utils.CodeDBError, fmt.Sprintf("数据库错误（错误ID: %s）", se.ID))
	default:
		_ = c.Error(err)
		utils.Error(c, utils.CodeServerError, "")
	}
}
