package validators

// 长度等业务规则在 engagement.Service 里校验，这里只负责绑定
type ToggleLikeRequest struct {
	PostID int64 `json:"post_id" binding:"required"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type DeletePostRequest struct {
	PostID int64 `json:"post_id" binding:"required"`
}

type CreateReplyRequest struct {
	PostID  int64  `json:"post_id" binding:"required"`
	Content string `json:"content"`
}

type DeleteReplyRequest struct {
	ReplyID int64 `json:"reply_id" binding:"required"`
}
