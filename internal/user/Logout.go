package user

import (
	"fmt"

	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *UserHandler) Logout(c *gin.Context) {
	claims, ok := utils.GetClaims(c)
	if !ok {
		utils.Error(c, utils.CodeTokenInvalid, "")
		return
	}

	if h.svc.Cache == nil {
		utils.Error(c, utils.CodeServerError, "登出服务暂不可用")
		return
	}

	if err := utils.AddTokenToBlacklist(c.Request.Context(), h.svc.Cache, claims); err != nil {
		zap.L().Error("failed to add token to blacklist", zap.Error(err), zap.Uint("user_id", claims.UserID))
		utils.Error(c, utils.CodeServerError, "")
		return
	}
	_ = h.svc.Cache.Del(c.Request.Context(), fmt.Sprintf("user:session:%d", claims.UserID))

	utils.SuccessMsg(c, nil, "已退出登录")
}
