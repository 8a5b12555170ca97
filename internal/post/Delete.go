package post

import (
	"bbs/internal/handlers"
	"bbs/internal/utils"
	"bbs/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	var req validators.DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "帖子ID无效")
		return
	}

	if err := h.svc.Engagement.DeletePost(c.Request.Context(), userID, req.PostID); err != nil {
		handlers.RespondError(c, err)
		return
	}

	zap.L().Info("post deleted", zap.Int64("post_id", req.PostID), zap.Uint("user_id", userID))
	utils.SuccessMsg(c, nil, "删除成功")
}
