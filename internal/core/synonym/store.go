package synonym

import (
	"sort"
	"strings"
	"sync"

	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// Persistence 別名表持久化介面（JSON 平面映射，一個網域一個檔案）
type Persistence interface {
	Load() (map[string]string, error)
	Save(mapping map[string]string) error
}

// Store 別名對應表。alias（小寫）→ 正規名稱，多個別名可對應同一個正規名稱。
// 所有變更操作都持有同一把鎖，寫入成功後立即持久化。
type Store struct {
	mu      sync.Mutex
	entries map[string]string
	persist Persistence
	recase  func(string) string
}

// NewStore 建立別名表並載入既有內容
func NewStore(persist Persistence, recase func(string) string) (*Store, error) {
	entries, err := persist.Load()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]string)
	}

	common.LogInfo("別名表已載入", zap.Int("筆數", len(entries)))

	return &Store{
		entries: entries,
		persist: persist,
		recase:  recase,
	}, nil
}

// foldAlias 別名鍵一律修剪並轉小寫
func foldAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// Lookup 查詢別名，回傳正規名稱
func (s *Store) Lookup(alias string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, ok := s.entries[foldAlias(alias)]
	return canonical, ok
}

// Upsert 新增或更新一筆別名對應。
// 為保證單跳解析，正規名稱不得同時是別名鍵，別名也不得是其他項目的正規名稱。
func (s *Store) Upsert(alias, canonical string) (common.SynonymEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := foldAlias(alias)
	prev, existed := s.entries[key]

	entry, err := s.upsertLocked(alias, canonical)
	if err != nil {
		return common.SynonymEntry{}, err
	}

	if err := s.saveLocked(); err != nil {
		// 持久化失敗時回滾記憶體內容，避免與檔案不一致
		if existed {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return common.SynonymEntry{}, err
	}
	return entry, nil
}

// upsertLocked 驗證並寫入記憶體，呼叫端負責持久化與回滾
func (s *Store) upsertLocked(alias, canonical string) (common.SynonymEntry, error) {
	key := foldAlias(alias)
	canon := s.recase(strings.TrimSpace(canonical))
	if key == "" || canon == "" {
		return common.SynonymEntry{}, common.NewValidationError("alias and canonical must not be empty")
	}

	// 單跳解析檢查：自我對應（alias == canonical）除外
	canonKey := strings.ToLower(canon)
	if canonKey != key {
		// 正規名稱若已是別名鍵，只有該項目自我對應時才不會多一跳
		if target, exists := s.entries[canonKey]; exists && strings.ToLower(target) != canonKey {
			return common.SynonymEntry{}, common.NewValidationError("canonical name is already registered as an alias")
		}
		for existing, target := range s.entries {
			if existing == key {
				continue
			}
			if strings.ToLower(target) == key {
				return common.SynonymEntry{}, common.NewValidationError("alias is already used as a canonical name")
			}
		}
	}

	s.entries[key] = canon
	return common.SynonymEntry{Alias: key, Canonical: canon}, nil
}

// Remove 移除一筆別名，若不存在則不動作
func (s *Store) Remove(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := foldAlias(alias)
	prev, ok := s.entries[key]
	if !ok {
		return nil
	}
	delete(s.entries, key)

	if err := s.persist.Save(s.entries); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

// List 回傳所有別名對應，依別名排序
func (s *Store) List() []common.SynonymEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]common.SynonymEntry, 0, len(s.entries))
	for alias, canonical := range s.entries {
		out = append(out, common.SynonymEntry{Alias: alias, Canonical: canonical})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out
}

// BulkImport 批量匯入別名對應。同批次重複別名採用最後寫入，
// 任一筆驗證失敗時整批不寫入。
func (s *Store) BulkImport(mapping map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 先在副本上驗證整批，失敗不影響現有內容
	backup := s.entries
	staged := make(map[string]string, len(backup)+len(mapping))
	for k, v := range backup {
		staged[k] = v
	}
	s.entries = staged

	// 批量匯入依排序後的別名套用，確保同批次重複鍵行為可重現
	keys := make([]string, 0, len(mapping))
	for alias := range mapping {
		keys = append(keys, alias)
	}
	sort.Strings(keys)

	for _, alias := range keys {
		if _, err := s.upsertLocked(alias, mapping[alias]); err != nil {
			s.entries = backup
			return err
		}
	}

	if err := s.persist.Save(s.entries); err != nil {
		s.entries = backup
		return err
	}

	common.LogInfo("別名批量匯入完成", zap.Int("筆數", len(mapping)))
	return nil
}

// Len 回傳別名筆數
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// saveLocked 持久化目前內容，失敗時回傳可分辨的儲存錯誤
func (s *Store) saveLocked() error {
	return s.persist.Save(s.entries)
}
