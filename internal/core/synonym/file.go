package synonym

import (
	"encoding/json"
	"os"
	"path/filepath"

	"bar-manager/internal/pkg/common"
)

// FilePersistence JSON 檔案持久化：平面的 alias → canonical 物件
type FilePersistence struct {
	path     string
	defaults map[string]string
}

// NewFilePersistence 建立檔案持久化，檔案不存在時以預設內容建檔
func NewFilePersistence(path string, defaults map[string]string) *FilePersistence {
	return &FilePersistence{path: path, defaults: defaults}
}

// Load 載入別名映射
func (p *FilePersistence) Load() (map[string]string, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		// 確保預設檔案存在
		mapping := make(map[string]string, len(p.defaults))
		for k, v := range p.defaults {
			mapping[k] = v
		}
		if err := p.Save(mapping); err != nil {
			return nil, err
		}
		return mapping, nil
	}
	if err != nil {
		return nil, &common.StorageError{Op: "load", Err: err}
	}

	var mapping map[string]string
	if err := common.ParseJSONBytes(data, &mapping); err != nil {
		return nil, &common.StorageError{Op: "load", Err: err}
	}
	if mapping == nil {
		mapping = make(map[string]string)
	}
	return mapping, nil
}

// Save 寫出別名映射，先寫暫存檔再改名，避免寫到一半損毀
func (p *FilePersistence) Save(mapping map[string]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return &common.StorageError{Op: "save", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return &common.StorageError{Op: "save", Err: err}
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &common.StorageError{Op: "save", Err: err}
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return &common.StorageError{Op: "save", Err: err}
	}
	return nil
}

// DefaultIngredientAliases 原料別名預設內容
func DefaultIngredientAliases() map[string]string {
	return map[string]string{
		"dark rum":         "Rum",
		"white rum":        "Rum",
		"fresh lime juice": "Lime Juice",
	}
}

// DefaultUnitAliases 單位別名預設內容
func DefaultUnitAliases() map[string]string {
	return map[string]string{
		"ounce":       "oz",
		"ounces":      "oz",
		"milliliter":  "ml",
		"milliliters": "ml",
	}
}
