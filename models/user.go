package models

// User 用户模型(对外形态)
// API 响应直接序列化该结构体，不携带任何口令信息
type User struct {
	UserID   int64  `json:"user_id,string"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
}

// UserRecord 用户的持久化形态
// 用户表走 JSON 序列化落盘，口令哈希必须带真实的 json tag 才会被保存；
// 对外只暴露内嵌的 User，哈希仅在存储和口令校验时出现
type UserRecord struct {
	User
	Password string `json:"password"`
}

// AsAuthor 生成写入话题/回复的作者快照
func (u *User) AsAuthor() Author {
	return Author{
		UserID:   u.UserID,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		Level:    u.Level,
	}
}
