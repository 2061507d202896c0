package models

// Category 话题分类
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories 固定的分类注册表，顺序即展示顺序
var Categories = []Category{
	{ID: "training", Name: "训练打卡", Icon: "💪"},
	{ID: "nutrition", Name: "饮食营养", Icon: "🥗"},
	{ID: "gear", Name: "装备器材", Icon: "🏋️"},
	{ID: "experience", Name: "经验分享", Icon: "📖"},
	{ID: "qa", Name: "问答求助", Icon: "❓"},
}

// CategoryByID 按 ID 查找分类，第二个返回值表示是否存在
func CategoryByID(id string) (Category, bool) {
	for _, cat := range Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
