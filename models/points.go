package models

import "time"

// PointsEntry 一次积分变动记录
type PointsEntry struct {
	Points    int64     `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// PointsAccount 单个用户的积分账户
// 不变式: Total 恒等于 History 中所有 Points 之和
type PointsAccount struct {
	Total   int64         `json:"total"`
	History []PointsEntry `json:"history"`
}
