package like

import (
	"bbs/internal/handlers"
	"bbs/internal/utils"
	"bbs/internal/validators"

	"github.com/gin-gonic/gin"
)

// Toggle 点赞 / 取消点赞
func (h *LikeHandler) Toggle(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	var req validators.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "帖子ID无效")
		return
	}

	res, err := h.svc.Engagement.ToggleLike(c.Request.Context(), userID, req.PostID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	utils.Success(c, res)
}
