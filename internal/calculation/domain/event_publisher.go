package domain

import "context"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishCalculationCreated 发布计算记录已保存事件
	PublishCalculationCreated(ctx context.Context, event CalculationCreatedEvent) error
}
