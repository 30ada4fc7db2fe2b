// Package messaging 计算事件的发布实现
package messaging

import (
	"context"
	"strconv"

	"github.com/wyfcoding/blackscholes/internal/calculation/domain"
)

// DefaultTopic 计算记录已保存事件的默认主题
const DefaultTopic = "blackscholes.calculation.created"

// MessageSender 发送 JSON 消息，由 mq.KafkaProducer 实现
type MessageSender interface {
	SendMessage(ctx context.Context, topic string, key string, value interface{}) error
}

// KafkaEventPublisher 实现 EventPublisher 接口，消息 key 为记录 ID
type KafkaEventPublisher struct {
	sender MessageSender
	topic  string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布者，topic 为空时使用 DefaultTopic
func NewKafkaEventPublisher(sender MessageSender, topic string) *KafkaEventPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaEventPublisher{sender: sender, topic: topic}
}

// PublishCalculationCreated 发布计算记录已保存事件
func (p *KafkaEventPublisher) PublishCalculationCreated(ctx context.Context, event domain.CalculationCreatedEvent) error {
	return p.sender.SendMessage(ctx, p.topic, strconv.FormatUint(uint64(event.ID), 10), event)
}

// NopEventPublisher 未启用消息队列时使用，丢弃所有事件
type NopEventPublisher struct{}

// PublishCalculationCreated 不做任何事
func (NopEventPublisher) PublishCalculationCreated(context.Context, domain.CalculationCreatedEvent) error {
	return nil
}

var (
	_ domain.EventPublisher = (*KafkaEventPublisher)(nil)
	_ domain.EventPublisher = NopEventPublisher{}
)
