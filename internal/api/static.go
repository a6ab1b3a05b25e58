package api

import (
	"log"
	"os"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// mountUploads 以唯讀方式提供上傳檔案。
// 目錄不存在或無法存取時只記錄警告，其他路由照常運作。
func mountUploads(r *gin.Engine, prefix, dir string) bool {
	info, err := os.Stat(dir)
	if err != nil {
		log.Printf("warning: could not serve uploads directory: %v", err)
		return false
	}
	if !info.IsDir() {
		log.Printf("warning: could not serve uploads directory: %s is not a directory", dir)
		return false
	}

	r.Use(static.Serve(prefix, static.LocalFile(dir, false)))
	return true
}
