package domain

import "time"

const (
	CalculationCreatedEventType = "CalculationCreated"
)

// CalculationCreatedEvent 计算记录已保存事件
type CalculationCreatedEvent struct {
	ID          uint      `json:"id"`
	S           Float     `json:"S"`
	K           Float     `json:"K"`
	T           Float     `json:"T"`
	R           Float     `json:"r"`
	Sigma       Float     `json:"sigma"`
	Q           Float     `json:"q"`
	CallPrice   Float     `json:"call_price"`
	PutPrice    Float     `json:"put_price"`
	DateCreated time.Time `json:"date_created"`
	OccurredOn  time.Time `json:"occurred_on"`
}

// NewCalculationCreatedEvent 由已保存的记录构造事件
func NewCalculationCreatedEvent(c *Calculation, occurredOn time.Time) CalculationCreatedEvent {
	return CalculationCreatedEvent{
		ID:          c.ID,
		S:           c.S,
		K:           c.K,
		T:           c.T,
		R:           c.R,
		Sigma:       c.Sigma,
		Q:           c.Q,
		CallPrice:   c.CallPrice,
		PutPrice:    c.PutPrice,
		DateCreated: c.DateCreated,
		OccurredOn:  occurredOn,
	}
}
