package snowflake

import (
	"time"

	// 起别名 sf，防止和自己的包名 snowflake 冲突
	sf "github.com/bwmarrin/snowflake"
)

// 包级别的全局节点
// 雪花算法需要维护序列号状态，全局单例节点保证 ID 唯一
var node *sf.Node

// Init 初始化雪花算法节点
// startTime 格式为 "2006-01-02"，作为生成 ID 的起始纪元
// 话题/回复的 ID 由此派生自创建时间，天然按时间递增
func Init(startTime string, machineID int64) (err error) {
	var st time.Time
	st, err = time.Parse("2006-01-02", startTime)
	if err != nil {
		return
	}
	// Epoch 单位是毫秒
	sf.Epoch = st.UnixNano() / 1000000

	node, err = sf.NewNode(machineID)
	if err != nil {
		return
	}
	return
}

// GenID 生成全局唯一 ID
func GenID() int64 {
	return node.Generate().Int64()
}
