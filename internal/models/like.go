package models

import "time"

// PostLike 同一用户对同一帖子最多一行，由 (post_id, user_id) 唯一索引保证
type PostLike struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"not null;uniqueIndex:uk_post_user"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_post_user;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
