package post

import (
	"strconv"

	"bbs/internal/handlers"
	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetDetail 帖子详情，顺带浏览数 +1
func (h *PostHandler) GetDetail(c *gin.Context) {
	raw, ok := c.GetQuery("id")
	if !ok || raw == "" {
		utils.Error(c, utils.CodeParamError, "缺少帖子ID")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.Error(c, utils.CodeParamError, "帖子ID格式错误")
		return
	}

	detail, err := h.svc.Engagement.PostDetail(c.Request.Context(), id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	utils.Success(c, detail)
}
