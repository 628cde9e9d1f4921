package measure

import (
	"math/big"
	"strings"
)

// UnitCanonicalizer 單位名稱正規化介面
type UnitCanonicalizer interface {
	Canonicalize(raw string) string
}

// Measure 解析後的份量：數量（有理數）加正規化單位
type Measure struct {
	Amount *big.Rat
	Unit   string
}

// Parse 解析份量字串，例如 "2 oz"、"1/2 oz"、"1 1/2 cup"。
// 連續的數字 token（整數、小數、分數）累加為數量，遇到第一個非數字
// token 即停止，其餘 token 以單一空格連接後交給單位正規化器。
// 沒有數字或沒有單位時回傳 nil（解析失敗不是錯誤）。
func Parse(raw string, units UnitCanonicalizer) *Measure {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return nil
	}

	amount := new(big.Rat)
	idx := 0
	for idx < len(parts) {
		// big.Rat 同時接受 "1"、"0.5" 與 "1/2"
		r, ok := new(big.Rat).SetString(parts[idx])
		if !ok {
			break
		}
		amount.Add(amount, r)
		idx++
	}

	if idx == 0 || idx >= len(parts) {
		return nil
	}

	unit := strings.Join(parts[idx:], " ")
	return &Measure{
		Amount: amount,
		Unit:   units.Canonicalize(unit),
	}
}
