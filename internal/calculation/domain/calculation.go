// Package domain 期权计算服务的领域模型
package domain

import (
	"context"
	"time"
)

// Calculation 一次定价请求的记录
// 输入按请求原样保存（百分数），记录创建后不可修改
type Calculation struct {
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
}

// NewCalculation 对输入定价并构造记录，ID 与创建时间由仓储填充
func NewCalculation(in PricingInput) *Calculation {
	call, put := Price(in)
	return &Calculation{
		S:         Float(in.S),
		K:         Float(in.K),
		T:         Float(in.T),
		R:         Float(in.R),
		Sigma:     Float(in.Sigma),
		Q:         Float(in.Q),
		CallPrice: Float(call),
		PutPrice:  Float(put),
	}
}

// Input 还原定价输入
func (c *Calculation) Input() PricingInput {
	return PricingInput{
		S:     float64(c.S),
		K:     float64(c.K),
		T:     float64(c.T),
		R:     float64(c.R),
		Sigma: float64(c.Sigma),
		Q:     float64(c.Q),
	}
}

// HasNonFinitePrice 任一价格为 NaN 或 ±Inf
func (c *Calculation) HasNonFinitePrice() bool {
	return !c.CallPrice.IsFinite() || !c.PutPrice.IsFinite()
}

// CalculationRepository 计算记录仓储接口
type CalculationRepository interface {
	// Save 插入记录并回填 ID 与 DateCreated
	Save(ctx context.Context, calc *Calculation) error
	// List 返回全部记录，按 date_created 倒序，相同时间按 id 倒序
	List(ctx context.Context) ([]*Calculation, error)
}
