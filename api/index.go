// Package handler 是 serverless 平台的進入點，
// 每個執行個體只組裝一次閘道，之後的請求共用同一個 engine。
package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	"codevimarsh/internal/app"
	"codevimarsh/pkg/config"
)

var (
	once    sync.Once
	gateway http.Handler
	initErr error
)

func load() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	a, err := app.Bootstrap(context.Background(), cfg)
	if err != nil {
		initErr = err
		return
	}
	gateway = a.Engine
}

// Handler 把請求交給已組裝好的閘道
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(load)
	if initErr != nil {
		log.Printf("gateway init failed: %v", initErr)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"server misconfigured"}`))
		return
	}
	gateway.ServeHTTP(w, r)
}
