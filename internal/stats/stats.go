// Package stats 記錄每個路由群組的請求數量。
package stats

import (
	"context"
	"time"
)

// Event 是一筆已完成的請求
type Event struct {
	Group  string
	Method string
	Status int
	At     time.Time
}

type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Nop 不做任何記錄，未設定 Redis 時使用
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }
