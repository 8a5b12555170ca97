package reply

import (
	"bbs/internal/handlers"
	"bbs/internal/utils"
	"bbs/internal/validators"

	"github.com/gin-gonic/gin"
)

func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	var req validators.DeleteReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "回复ID无效")
		return
	}

	if err := h.svc.Engagement.DeleteReply(c.Request.Context(), userID, req.ReplyID); err != nil {
		handlers.RespondError(c, err)
		return
	}

	utils.SuccessMsg(c, nil, "删除成功")
}
