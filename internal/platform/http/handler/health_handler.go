// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 依存先は確認せず、プロセスが応答できることだけを示します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// CheckFunc は依存先1つの疎通確認です。
type CheckFunc func(ctx context.Context) error

// Readiness は依存先（Redis、DB、上流API）の疎通を確認する /readyz を処理します。
type Readiness struct {
	checks  map[string]CheckFunc
	timeout time.Duration
}

// NewReadiness は Readiness を生成します。nil のチェックは登録されません。
func NewReadiness(timeout time.Duration, checks map[string]CheckFunc) *Readiness {
	r := &Readiness{checks: make(map[string]CheckFunc, len(checks)), timeout: timeout}
	for name, fn := range checks {
		if fn != nil {
			r.checks[name] = fn
		}
	}
	return r
}

// Ready は全チェックが成功すれば200、1つでも失敗すれば503を返します。
func (r *Readiness) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), r.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(r.checks))
	for name, fn := range r.checks {
		if err := fn(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := gin.H{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
