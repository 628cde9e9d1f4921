package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 開啟 sqlite 資料庫並執行遷移
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	common.LogInfo("資料庫已開啟", zap.String("path", path))
	return db, nil
}

// Migrate 建立或更新資料表結構
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Ingredient{},
		&Tag{},
		&Category{},
		&Iba{},
		&Recipe{},
		&RecipeIngredient{},
		&InventoryItem{},
		&ShoppingListItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
