package models

// ParamSignUp 注册请求参数
// binding:"required" 表示该字段必填，为空时 Gin 直接报参数错误
type ParamSignUp struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	// re_password 用于确认密码，结构体级校验中检查两次输入是否一致
	RePassword string `json:"re_password" binding:"required"`
}

// ParamLogin 登录请求参数
type ParamLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ParamOAuthLogin 模拟第三方登录请求参数
type ParamOAuthLogin struct {
	Provider string `json:"provider" binding:"required"`
}

// ParamCreateTopic 发布话题请求参数
type ParamCreateTopic struct {
	CategoryID string `json:"category_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// ParamReply 回复话题请求参数
type ParamReply struct {
	Content string `json:"content" binding:"required"`
}

// ParamTopicList 话题列表查询参数
// 通过 form 标签从 URL 查询参数绑定 (例如 /api/v1/topics?category=training&sort=hot)
type ParamTopicList struct {
	Category string `json:"category" form:"category"`
	Search   string `json:"search" form:"search"`
	Sort     string `json:"sort" form:"sort"`
}

// 排序规则常量
const (
	// SortLatest 按创建时间倒序
	SortLatest = "latest"
	// SortHot 按浏览量倒序
	SortHot = "hot"
	// SortReplies 按回复数倒序
	SortReplies = "replies"
)
