package user

import (
	"encoding/json"
	"errors"
	"fmt"

	"bbs/internal/engagement"
	"bbs/internal/handlers"
	"bbs/internal/models"
	"bbs/internal/utils"
	"bbs/internal/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (h *UserHandler) Login(c *gin.Context) {
	var req validators.LoginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "用户名和密码不能为空")
		return
	}

	var user models.User
	err := h.svc.DB.WithContext(c.Request.Context()).
		Where("username = ?", req.Username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, utils.CodeUserNotFound, "")
		return
	}
	if err != nil {
		handlers.RespondError(c, engagement.NewStorageError("query user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.Error(c, utils.CodeWrongPassword, "")
		return
	}

	token, err := utils.GenerateToken(h.svc.Config, user.ID, user.Username)
	if err != nil {
		zap.L().Error("generate token failed", zap.Error(err))
		utils.Error(c, utils.CodeServerError, "")
		return
	}

	h.cacheSession(c, &user)

	utils.SuccessMsg(c, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"token":    token,
	}, "登录成功")
}

// cacheSession 缓存键格式: user:session:{userID}，过期时间与 JWT 一致
func (h *UserHandler) cacheSession(c *gin.Context, user *models.User) {
	if h.svc.Cache == nil {
		return
	}

	body, err := json.Marshal(gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	})
	if err != nil {
		zap.L().Warn("failed to marshal user session", zap.Error(err), zap.Uint("user_id", user.ID))
		return
	}

	key := fmt.Sprintf("user:session:%d", user.ID)
	if err := h.svc.Cache.SetWithRandomTTL(c.Request.Context(), key, string(body), h.svc.Config.JWTExpirationTime); err != nil {
		zap.L().Warn("failed to cache user session", zap.Error(err), zap.Uint("user_id", user.ID))
	}
}
