package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// APIServer 网关 HTTP 服务
type APIServer struct {
	server *http.Server
}

// NewAPIServer 创建网关服务
// 购物车事件走 SSE 长连接，因此不设写超时
func NewAPIServer(addr string, handler http.Handler) *APIServer {
	return &APIServer{server: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}}
}

func (s *APIServer) Name() string { return "api" }

// Start 监听直到 Stop
func (s *APIServer) Start(context.Context) error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 优雅关闭，等待进行中的请求
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
