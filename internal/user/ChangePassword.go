package user

import (
	"errors"

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

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	var req validators.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "密码长度必须在6-20之间")
		return
	}

	db := h.svc.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Select("id", "password_hash").Take(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, utils.CodeUserNotFound, "")
		} else {
			handlers.RespondError(c, engagement.NewStorageError("query user", err))
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		utils.Error(c, utils.CodeWrongPassword, "原密码错误")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("hash password failed", zap.Error(err))
		utils.Error(c, utils.CodeServerError, "")
		return
	}

	if err := db.Model(&user).Update("password_hash", string(newHash)).Error; err != nil {
		handlers.RespondError(c, engagement.NewStorageError("update password", err))
		return
	}

	utils.SuccessMsg(c, nil, "密码修改成功")
}
