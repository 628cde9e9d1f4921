package measure

import (
	"fmt"
	"math"
	"strings"
)

// conversionToML 正規化單位到毫升的換算表
var conversionToML = map[string]float64{
	"ml":     1.0,
	"cl":     10.0,
	"l":      1000.0,
	"tsp":    5.0,
	"tbsp":   15.0,
	"oz":     30.0,
	"jigger": 45.0,
	"shot":   44.0,
	"cup":    240.0,
	"pt":     475.0,
	"qt":     946.0,
	"gal":    3785.0,
}

// metricUnits 已是公制的單位，WithMetric 不再附加換算
var metricUnits = map[string]struct{}{
	"ml": {},
	"cl": {},
	"l":  {},
}

// ToMetric 回傳份量字串的公制表示，例如 "2 oz" → "60 ml"。
// 無法解析或單位不在換算表時回傳 ok=false。
func ToMetric(raw string, units UnitCanonicalizer) (string, bool) {
	parsed := Parse(raw, units)
	if parsed == nil {
		return "", false
	}

	factor, ok := conversionToML[parsed.Unit]
	if !ok {
		return "", false
	}

	amount, _ := parsed.Amount.Float64()
	return formatMetric(amount * factor), true
}

// formatMetric 毫升值格式化：滿 1000 ml 以公升呈現，整數不帶小數
func formatMetric(ml float64) string {
	if ml >= 1000 {
		liters := ml / 1000
		if liters == math.Trunc(liters) {
			return fmt.Sprintf("%d l", int64(liters))
		}
		return fmt.Sprintf("%.1f l", liters)
	}
	if ml == math.Trunc(ml) {
		return fmt.Sprintf("%d ml", int64(ml))
	}
	return fmt.Sprintf("%.1f ml", ml)
}

// WithMetric 在原始份量後附加公制換算，例如 "2 oz" → "2 oz (60 ml)"。
// 已是公制單位或無法換算時，原樣回傳。
func WithMetric(raw string, units UnitCanonicalizer) string {
	parsed := Parse(raw, units)
	if parsed == nil {
		return raw
	}
	if _, metric := metricUnits[parsed.Unit]; metric {
		return raw
	}
	converted, ok := ToMetric(raw, units)
	if !ok {
		return raw
	}
	return strings.TrimSpace(raw) + " (" + converted + ")"
}
