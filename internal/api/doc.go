// Package api 組裝閘道的 HTTP 處理流程。
//
// 它建立 gin 引擎、依序掛上中間件（跨來源、安全標頭、大小限制、限流），
// 並依路由表把 /api 底下的前綴交給各個路由群組，
// 另外提供健康檢查與 /uploads 靜態檔案。
package api
