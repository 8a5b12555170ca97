package validators

import "regexp"

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Validate 返回给用户看的错误消息，空串表示通过
func (r *RegisterUserRequest) Validate() string {
	if r.Username == "" || r.Password == "" || r.Email == "" {
		return "用户名、密码和邮箱不能为空"
	}
	if !usernamePattern.MatchString(r.Username) {
		return "用户名只能包含字母、数字、下划线，长度3-50"
	}
	if n := len([]rune(r.Password)); n < 6 || n > 20 {
		return "密码长度必须在6-20之间"
	}
	if !emailPattern.MatchString(r.Email) {
		return "邮箱格式不正确"
	}
	return ""
}

type LoginUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=20"`
}
