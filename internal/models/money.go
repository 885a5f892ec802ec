package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 金额类型，按最小货币单位（分）整数存储，对外输出 2 位小数字符串。
// 整数存储保证购物车与订单的金额运算精确，无浮点误差。
type Money int64

// MoneyFromCents 从最小货币单位创建金额
func MoneyFromCents(cents int64) Money {
	return Money(cents)
}

// Cents 返回最小货币单位数值
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal 返回 2 位小数的 decimal 表示
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 解析金额（字符串或数字，均按元为单位）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		*m = Money(d.Shift(2).Round(0).IntPart())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Money(decimal.NewFromFloat(f).Shift(2).Round(0).IntPart())
	return nil
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v)
	case float64:
		*m = Money(decimal.NewFromFloat(v).Round(0).IntPart())
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return err
		}
		*m = Money(d.Round(0).IntPart())
	default:
		return fmt.Errorf("unsupported money source: %T", value)
	}
	return nil
}
