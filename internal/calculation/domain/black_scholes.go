package domain

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PricingInput Black-Scholes 模型输入
// R、Sigma、Q 以百分数给出，例如 5 表示 5%
type PricingInput struct {
	S     float64 // 标的资产价格
	K     float64 // 执行价格
	T     float64 // 到期时间 (年)
	R     float64 // 无风险利率 (%)
	Sigma float64 // 波动率 (%)
	Q     float64 // 股息率 (%)
}

// rates 将百分数换算为小数
func (in PricingInput) rates() (r, sigma, q float64) {
	return in.R / 100, in.Sigma / 100, in.Q / 100
}

// Price 计算带连续股息率的欧式看涨、看跌价格
// 不做输入校验：波动率或期限为 0、S/K 非正时结果为 NaN 或 ±Inf，原样返回
func Price(in PricingInput) (call, put float64) {
	r, sigma, q := in.rates()

	sqrtT := math.Sqrt(in.T)
	d1 := (math.Log(in.S/in.K) + (r-q+0.5*sigma*sigma)*in.T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	spot := in.S * math.Exp(-q*in.T)
	strike := in.K * math.Exp(-r*in.T)

	call = spot*normCdf(d1) - strike*normCdf(d2)
	put = strike*normCdf(-d2) - spot*normCdf(-d1)
	return call, put
}

// ParityGap 看涨看跌平价的偏差 (C - P) - (S·e^(-qT) - K·e^(-rT))
func ParityGap(in PricingInput, call, put float64) float64 {
	r, _, q := in.rates()
	return (call - put) - (in.S*math.Exp(-q*in.T) - in.K*math.Exp(-r*in.T))
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
