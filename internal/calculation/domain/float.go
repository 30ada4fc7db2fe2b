package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	nanToken    = "NaN"
	posInfToken = "Infinity"
	negInfToken = "-Infinity"
)

// Float 可以表示 NaN 与 ±Inf 的 JSON 浮点数
// 有限值编码为数字，非有限值编码为字符串 "NaN"、"Infinity"、"-Infinity"
type Float float64

// Float64 返回原始 float64
func (f Float) Float64() float64 {
	return float64(f)
}

// IsFinite 是否为有限值
func (f Float) IsFinite() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON 实现 json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"` + nanToken + `"`), nil
	case math.IsInf(v, 1):
		return []byte(`"` + posInfToken + `"`), nil
	case math.IsInf(v, -1):
		return []byte(`"` + negInfToken + `"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON 实现 json.Unmarshaler，接受数字或三个非有限值字符串
func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case nanToken:
			*f = Float(math.NaN())
		case posInfToken:
			*f = Float(math.Inf(1))
		case negInfToken:
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid float literal %q", s)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
