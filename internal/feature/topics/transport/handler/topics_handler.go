// Package handler はライブトピック配信のHTTPハンドラーを提供します。
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Streamer はWebSocket接続を受け付ける配信ハブです。
type Streamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
	Clients() int
}

// UpstreamStatus は上流ストリームの接続状態です。上流が未設定の場合は nil です。
type UpstreamStatus interface {
	Connected() bool
	Attempts() int64
}

// TopicsHandler はトピック配信のHTTPリクエストを処理します。
type TopicsHandler struct {
	hub      Streamer
	upstream UpstreamStatus
}

// NewTopicsHandler は TopicsHandler を生成します。upstream は nil でもかまいません。
func NewTopicsHandler(hub Streamer, upstream UpstreamStatus) *TopicsHandler {
	return &TopicsHandler{hub: hub, upstream: upstream}
}

// Stream はWebSocketにアップグレードして配信を開始します。
//
// エンドポイント: GET /api/topics/stream
func (h *TopicsHandler) Stream(c *gin.Context) {
	if err := h.hub.ServeWS(c.Writer, c.Request); err != nil {
		slog.Warn("topic stream upgrade failed", "error", err, "remote_addr", c.ClientIP())
	}
}

// Status は配信の状態を返します。
//
// エンドポイント: GET /api/topics/status
func (h *TopicsHandler) Status(c *gin.Context) {
	body := gin.H{
		"clients":             h.hub.Clients(),
		"upstream_configured": h.upstream != nil,
		"upstream_connected":  false,
	}
	if h.upstream != nil {
		body["upstream_connected"] = h.upstream.Connected()
		body["upstream_attempts"] = h.upstream.Attempts()
	}
	c.JSON(http.StatusOK, body)
}
