package logic

import (
	"time"

	"fitforum/models"
	"fitforum/pkg/snowflake"
)

// seedTopics 返回内置的示例话题
// 首次启动且存储中没有任何话题时写入，给新实例一个非空的社区首页
func seedTopics() []*models.Topic {
	now := time.Now()

	coach := models.Author{UserID: snowflake.GenID(), Nickname: "铁馆教练", Avatar: "/avatars/coach.png", Level: 6}
	runner := models.Author{UserID: snowflake.GenID(), Nickname: "晨跑小王", Avatar: "/avatars/runner.png", Level: 3}
	newbie := models.Author{UserID: snowflake.GenID(), Nickname: "健身萌新", Avatar: "/avatars/newbie.png", Level: 1}

	t1 := &models.Topic{
		ID:         snowflake.GenID(),
		CategoryID: "training",
		Title:      "新手三分化训练计划分享",
		Content:    "练了半年总结出来的三分化计划：胸肩三头、背二头、腿，每周各练两次。附上每个动作的组数和次数安排，欢迎指正。",
		Author:     coach,
		CreatedAt:  now.Add(-72 * time.Hour),
		UpdatedAt:  now.Add(-10 * time.Hour),
		Views:      326,
		Likes:      45,
		IsPinned:   true,
		Replies: []*models.Reply{
			{
				ID:        snowflake.GenID(),
				Author:    newbie,
				Content:   "感谢分享！请问深蹲重量怎么安排递增？",
				CreatedAt: now.Add(-48 * time.Hour),
				Likes:     3,
			},
			{
				ID:        snowflake.GenID(),
				Author:    runner,
				Content:   "收藏了，下周开始照着练。",
				CreatedAt: now.Add(-10 * time.Hour),
			},
		},
	}

	t2 := &models.Topic{
		ID:         snowflake.GenID(),
		CategoryID: "nutrition",
		Title:      "减脂期一天吃多少蛋白质合适？",
		Content:    "体重 70kg，目前每天大概 100g 蛋白质，总感觉恢复不过来，是不是该加量？大家减脂期都怎么吃的？",
		Author:     runner,
		CreatedAt:  now.Add(-36 * time.Hour),
		UpdatedAt:  now.Add(-36 * time.Hour),
		Views:      158,
		Likes:      12,
		Replies:    make([]*models.Reply, 0),
	}

	t3 := &models.Topic{
		ID:         snowflake.GenID(),
		CategoryID: "qa",
		Title:      "硬拉后下背酸痛正常吗？",
		Content:    "昨天第一次硬拉 60kg，今天下背有点酸，不确定是泵感还是拉伤，有经验的朋友帮忙看看。",
		Author:     newbie,
		CreatedAt:  now.Add(-5 * time.Hour),
		UpdatedAt:  now.Add(-2 * time.Hour),
		Views:      47,
		Likes:      2,
		Replies: []*models.Reply{
			{
				ID:        snowflake.GenID(),
				Author:    coach,
				Content:   "单纯酸胀一般是正常的延迟性酸痛，如果有刺痛或放射痛要尽快就医。",
				CreatedAt: now.Add(-2 * time.Hour),
				Likes:     8,
			},
		},
	}

	return []*models.Topic{t1, t2, t3}
}
