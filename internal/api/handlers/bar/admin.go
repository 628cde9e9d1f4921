package bar

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleExportDB 匯出 sqlite 資料庫檔案
func (h *Handler) HandleExportDB(c *gin.Context) {
	path := h.cfg.Database.Path
	if _, err := os.Stat(path); err != nil {
		respondError(c, common.ErrNotFound)
		return
	}

	common.LogInfo("資料庫匯出",
		zap.String("path", path),
		zap.String("client_ip", c.ClientIP()),
	)
	c.FileAttachment(path, filepath.Base(path))
}

// HandleImportDB 匯入 sqlite 資料庫：上傳內容先寫到同目錄的
// uuid 暫存檔，完整落地後用 rename 原子替換。匯入後既有的資料庫
// 連線仍指向舊 inode，需要重啟服務才會讀到新內容。
func (h *Handler) HandleImportDB(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "file is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	path := h.cfg.Database.Path
	tmpPath := filepath.Join(filepath.Dir(path), common.GenerateUUID()+".db.tmp")

	dst, err := os.Create(tmpPath)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		respondError(c, err)
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		respondError(c, err)
		return
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		respondError(c, err)
		return
	}

	common.LogInfo("資料庫匯入完成",
		zap.String("path", path),
		zap.Int64("size", file.Size),
	)
	c.JSON(http.StatusOK, gin.H{
		"status": "imported",
		"note":   "restart required for the new database to take effect",
	})
}
