package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxClaims   = "claims"
)

func GetUserID(c *gin.Context) (uint, error) {
	uidRaw, exists := c.Get(CtxUserID)
	if !exists {
		return 0, errors.New("未登录")
	}

	uid, ok := uidRaw.(uint)
	if !ok || uid == 0 {
		return 0, errors.New("用户ID类型错误")
	}

	return uid, nil
}

func GetClaims(c *gin.Context) (*Claims, bool) {
	raw, exists := c.Get(CtxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*Claims)
	return claims, ok
}
