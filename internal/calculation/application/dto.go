package application

import "github.com/wyfcoding/blackscholes/internal/calculation/domain"

// CalculateCommand 定价命令，利率、波动率、股息率为百分数
type CalculateCommand struct {
	S     float64
	K     float64
	T     float64
	R     float64
	Sigma float64
	Q     float64
}

func (c CalculateCommand) toInput() domain.PricingInput {
	return domain.PricingInput{S: c.S, K: c.K, T: c.T, R: c.R, Sigma: c.Sigma, Q: c.Q}
}

// CalculateResult 定价结果
type CalculateResult struct {
	CallPrice domain.Float `json:"call_price"`
	PutPrice  domain.Float `json:"put_price"`
	// 已保存记录的 ID，不对外输出
	CalculationID uint `json:"-"`
}
