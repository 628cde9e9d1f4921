package macro

import (
	"os"
	"sort"
	"strings"

	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Lexicon 風味關鍵字表：macro 名稱 → 小寫關鍵字清單。
// 啟動時載入一次，程序存活期間不再變動。
type Lexicon map[string][]string

// LoadLexicon 從 YAML 檔載入關鍵字表，檔案不存在時回傳空表
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		common.LogWarn("風味關鍵字檔不存在", zap.String("path", path))
		return Lexicon{}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	lexicon := make(Lexicon, len(raw))
	for name, words := range raw {
		lowered := make([]string, len(words))
		for i, w := range words {
			lowered[i] = strings.ToLower(w)
		}
		lexicon[name] = lowered
	}

	common.LogInfo("風味關鍵字表已載入",
		zap.String("path", path),
		zap.Int("macro 數量", len(lexicon)),
	)
	return lexicon, nil
}

// Names 回傳所有 macro 名稱，依字母排序
func (l Lexicon) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
