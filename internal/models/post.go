package models

import "time"

// Post 的三个计数字段都是冗余数据，只能通过 engagement 包里的事务修改
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"author_id" gorm:"index;not null"`
	Title      string    `json:"title" gorm:"size:200;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	ViewCount  int       `json:"view_count" gorm:"not null;default:0"`
	LikeCount  int       `json:"like_count" gorm:"not null;default:0"`
	ReplyCount int       `json:"reply_count" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// PostBrief 列表页的一行
type PostBrief struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	AuthorID   uint      `json:"author_id"`
	ViewCount  int       `json:"view_count"`
	LikeCount  int       `json:"like_count"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostView struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorID   uint      `json:"author_id"`
	ViewCount  int       `json:"view_count"`
	LikeCount  int       `json:"like_count"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostDetail struct {
	Post    PostView    `json:"post"`
	Replies []ReplyView `json:"replies"`
}

type PostPage struct {
	Posts []PostBrief `json:"posts"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}
