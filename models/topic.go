package models

import "time"

// Topic 话题结构体
// 话题及其全部回复作为一个整体持久化，回复不单独存储
type Topic struct {
	ID            int64     `json:"id,string"`
	CategoryID    string    `json:"category_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Author        Author    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Views         int64     `json:"views"`
	Likes         int64     `json:"likes"`
	Replies       []*Reply  `json:"replies"`
	IsPinned      bool      `json:"is_pinned"`
	IsHighlighted bool      `json:"is_highlighted"`
}

// Reply 回复结构体
// 归属于其所在话题，按插入顺序保存
type Reply struct {
	ID        int64     `json:"id,string"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int64     `json:"likes"`
}

// Author 话题/回复中内嵌的作者快照
// 创建时从当前用户信息复制，之后不随用户资料变化
type Author struct {
	UserID   int64  `json:"user_id,string"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
}

// FindReply 在话题中按 ID 查找回复，不存在时返回 nil
func (t *Topic) FindReply(replyID int64) *Reply {
	for _, r := range t.Replies {
		if r.ID == replyID {
			return r
		}
	}
	return nil
}
