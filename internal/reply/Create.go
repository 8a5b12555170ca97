package reply

import (
	"bbs/internal/handlers"
	"bbs/internal/utils"
	"bbs/internal/validators"

	"github.com/gin-gonic/gin"
)

func (h *ReplyHandler) CreateReply(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	var req validators.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "帖子ID无效")
		return
	}

	replyID, err := h.svc.Engagement.CreateReply(c.Request.Context(), userID, req.PostID, req.Content)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	utils.SuccessMsg(c, gin.H{"reply_id": replyID}, "回复成功")
}
