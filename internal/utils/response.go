package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码，HTTP 响应体里的 code 字段
const (
	CodeSuccess         = 0
	CodeParamError      = 1001
	CodeUserExists      = 1002
	CodeUserNotFound    = 1003
	CodeWrongPassword   = 1004
	CodeTokenInvalid    = 1005
	CodeNoPermission    = 1006
	CodePostNotFound    = 1007
	CodeReplyNotFound   = 1008
	CodeDBError         = 1009
	CodeServerError     = 1010
	CodeLikeConflict    = 1011
	CodeTooManyRequests = 1012
)

var codeMessages = map[int]string{
	CodeSuccess:         "success",
	CodeParamError:      "参数错误",
	CodeUserExists:      "用户名已存在",
	CodeUserNotFound:    "用户不存在",
	CodeWrongPassword:   "密码错误",
	CodeTokenInvalid:    "Token无效或过期",
	CodeNoPermission:    "无权限操作",
	CodePostNotFound:    "帖子不存在",
	CodeReplyNotFound:   "回复不存在",
	CodeDBError:         "数据库错误",
	CodeServerError:     "服务器内部错误",
	CodeLikeConflict:    "操作冲突，请重试",
	CodeTooManyRequests: "操作太频繁，请稍后再试",
}

var codeStatus = map[int]int{
	CodeSuccess:         http.StatusOK,
	CodeParamError:      http.StatusBadRequest,
	CodeUserExists:      http.StatusConflict,
	CodeUserNotFound:    http.StatusNotFound,
	CodeWrongPassword:   http.StatusUnauthorized,
	CodeTokenInvalid:    http.StatusUnauthorized,
	CodeNoPermission:    http.StatusForbidden,
	CodePostNotFound:    http.StatusNotFound,
	CodeReplyNotFound:   http.StatusNotFound,
	CodeDBError:         http.StatusInternalServerError,
	CodeServerError:     http.StatusInternalServerError,
	CodeLikeConflict:    http.StatusConflict,
	CodeTooManyRequests: http.StatusTooManyRequests,
}

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func Message(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return "未知错误"
}

func HTTPStatus(code int) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func Success(c *gin.Context, data interface{}) {
	SuccessMsg(c, data, "success")
}

func SuccessMsg(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, Response{Code: CodeSuccess, Msg: msg, Data: data})
}

// Error 写出错误响应并终止后续 handler。msg 为空时使用错误码的默认消息。
func Error(c *gin.Context, code int, msg string) {
	if msg == "" {
		msg = Message(code)
	}
	c.AbortWithStatusJSON(HTTPStatus(code), Response{Code: code, Msg: msg, Data: nil})
}
