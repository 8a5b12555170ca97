package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessMsg(c, gin.H{"post_id": 3}, "发帖成功")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "发帖成功", resp.Msg)
	assert.Equal(t, map[string]interface{}{"post_id": float64(3)}, resp.Data)
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		code       int
		msg        string
		wantStatus int
		wantMsg    string
	}{
		{CodeParamError, "缺少帖子ID", http.StatusBadRequest, "缺少帖子ID"},
		{CodeNoPermission, "", http.StatusForbidden, "无权限操作"},
		{CodeLikeConflict, "", http.StatusConflict, "操作冲突，请重试"},
		{CodeTooManyRequests, "", http.StatusTooManyRequests, "操作太频繁，请稍后再试"},
		{4242, "", http.StatusInternalServerError, "未知错误"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, tc.code, tc.msg)

		assert.True(t, c.IsAborted())
		assert.Equal(t, tc.wantStatus, w.Code, "code %d", tc.code)
		resp := decode(t, w)
		assert.Equal(t, tc.code, resp.Code)
		assert.Equal(t, tc.wantMsg, resp.Msg)
		assert.Nil(t, resp.Data)
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := GetUserID(c)
	assert.Error(t, err)

	c.Set(CtxUserID, "7")
	_, err = GetUserID(c)
	assert.Error(t, err)

	c.Set(CtxUserID, uint(7))
	uid, err := GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(7), uid)
}
