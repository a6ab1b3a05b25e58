// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含跨來源政策、請求大小限制、限流、安全標頭、
// 路由群組統計與 JWT 驗證等跨請求的功能。
package middleware
