package user

import (
	"errors"

	"bbs/internal/engagement"
	"bbs/internal/handlers"
	"bbs/internal/models"
	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetInfo 当前用户信息，发帖数和回复数实时统计
func (h *UserHandler) GetInfo(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, utils.CodeTokenInvalid, err.Error())
		return
	}

	db := h.svc.DB.WithContext(c.Request.Context())

	var user models.User
	err = db.Select("id", "username", "email", "avatar_url", "created_at").
		Where("id = ?", userID).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, utils.CodeUserNotFound, "")
		} else {
			handlers.RespondError(c, engagement.NewStorageError("query user", err))
		}
		return
	}

	info := models.UserInfo{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
	if err := db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&info.PostCount).Error; err != nil {
		handlers.RespondError(c, engagement.NewStorageError("count user posts", err))
		return
	}
	if err := db.Model(&models.Reply{}).Where("user_id = ?", userID).Count(&info.ReplyCount).Error; err != nil {
		handlers.RespondError(c, engagement.NewStorageError("count user replies", err))
		return
	}

	utils.Success(c, info)
}
