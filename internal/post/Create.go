package post

import (
	"bbs/internal/handlers"
	"bbs/internal/utils"
	"bbs/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	var req validators.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "请求体格式错误")
		return
	}

	postID, err := h.svc.Engagement.CreatePost(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	zap.L().Info("post created", zap.Uint("post_id", postID), zap.Uint("user_id", userID))
	utils.SuccessMsg(c, gin.H{"post_id": postID}, "发帖成功")
}
