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

func (h *UserHandler) Register(c *gin.Context) {
	var req validators.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeParamError, "请求体格式错误")
		return
	}
	if msg := req.Validate(); msg != "" {
		utils.Error(c, utils.CodeParamError, msg)
		return
	}

	db := h.svc.DB.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		handlers.RespondError(c, engagement.NewStorageError("check username", err))
		return
	}
	if count > 0 {
		utils.Error(c, utils.CodeUserExists, "")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("hash password failed", zap.Error(err))
		utils.Error(c, utils.CodeServerError, "")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Email:        req.Email,
	}
	if err := db.Create(&user).Error; err != nil {
		// 两个请求同时注册同名用户，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, utils.CodeUserExists, "")
			return
		}
		handlers.RespondError(c, engagement.NewStorageError("create user", err))
		return
	}

	utils.SuccessMsg(c, gin.H{"user_id": user.ID}, "注册成功")
}
