package post

import (
	"strconv"

	"bbs/internal/engagement"
	"bbs/internal/handlers"
	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *PostHandler) GetList(c *gin.Context) {
	page := queryInt(c, "page", engagement.DefaultPage)
	size := queryInt(c, "size", engagement.DefaultPageSize)

	result, err := h.svc.Engagement.ListPosts(c.Request.Context(), page, size)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	utils.Success(c, result)
}

// 解析失败时回落到默认值
func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
