package models

import "time"

// Post 新版帖子结构，由旧版 Topic 迁移而来
// ID 保留旧话题的 ID，Legacy 标记该帖子来自迁移
type Post struct {
	ID        int64     `json:"id,string"`
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id,string"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Stats     PostStats `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsPinned  bool      `json:"is_pinned"`
	Legacy    bool      `json:"legacy"`
}

// PostStats 帖子的统计计数
type PostStats struct {
	Likes     int64 `json:"likes"`
	Comments  int64 `json:"comments"`
	Reposts   int64 `json:"reposts"`
	Views     int64 `json:"views"`
	Bookmarks int64 `json:"bookmarks"`
}

// Comment 新版评论结构，由旧版 Reply 迁移而来
// PostID 指向所属帖子(即旧话题的 ID)
type Comment struct {
	ID        int64     `json:"id,string"`
	PostID    int64     `json:"post_id,string"`
	UserID    int64     `json:"user_id,string"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}
