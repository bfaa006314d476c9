package checkout

import (
	"strings"
	"sync"
	"time"

	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/metrics"
)

// Service 按会话管理结账流程
type Service struct {
	orders   OrderAPI
	recorder Recorder
	metrics  *metrics.Metrics
	timeout  time.Duration

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewService 创建结账服务
func NewService(orders OrderAPI, recorder Recorder, m *metrics.Metrics, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &Service{
		orders:   orders,
		recorder: recorder,
		metrics:  m,
		timeout:  timeout,
		flows:    make(map[string]*Flow),
	}
}

// Flow 获取会话的结账流程，购物车被重建时同步替换
func (s *Service) Flow(sessionID string, store *cart.Store) *Flow {
	sessionID = strings.TrimSpace(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[sessionID]; ok && flow.store == store {
		return flow
	}
	flow := &Flow{
		sessionID: sessionID,
		store:     store,
		orders:    s.orders,
		recorder:  s.recorder,
		metrics:   s.metrics,
		timeout:   s.timeout,
		now:       time.Now,
	}
	s.flows[sessionID] = flow
	return flow
}

// Drop 丢弃会话的结账流程
func (s *Service) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, strings.TrimSpace(sessionID))
}

// InFlight 会话是否有结账正在进行
func (s *Service) InFlight(sessionID string) bool {
	s.mu.Lock()
	flow, ok := s.flows[strings.TrimSpace(sessionID)]
	s.mu.Unlock()
	return ok && flow.InFlight()
}
