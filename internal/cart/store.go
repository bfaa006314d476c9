package cart

import (
	"errors"
	"sync"

	"github.com/kantin-next/internal/models"
)

// ErrNegativeQuantity 数量为负数
// 负数与 0 不同：0 表示移除，负数直接拒绝且购物车保持不变
var ErrNegativeQuantity = errors.New("cart quantity must not be negative")

// Item 加入购物车时的菜单快照
type Item struct {
	ID    uint
	Name  string
	Price models.Money
}

// Line 购物车中的一行
type Line struct {
	ItemID    uint         `json:"item_id"`
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
}

// Subtotal 行小计
func (l Line) Subtotal() models.Money {
	return l.UnitPrice.Times(l.Quantity)
}

// Snapshot 购物车只读快照
type Snapshot struct {
	Lines       []Line       `json:"lines"`
	IsOpen      bool         `json:"is_open"`
	ItemCount   int          `json:"item_count"`
	TotalAmount models.Money `json:"total_amount"`
}

// Observer 购物车变更回调
type Observer func(Snapshot)

// Store 单个会话的购物车状态
// 行按加入顺序排列，同一菜单只占一行；isOpen 只影响展示
type Store struct {
	mu        sync.Mutex
	lines     []Line
	isOpen    bool
	observers map[uint64]Observer
	order     []uint64
	nextID    uint64
}

// NewStore 创建空购物车
func NewStore() *Store {
	return &Store{observers: make(map[uint64]Observer)}
}

// AddItem 加入一件商品
func (s *Store) AddItem(item Item) {
	s.mutate(func() bool {
		if idx := s.indexOf(item.ID); idx >= 0 {
			s.lines[idx].Quantity++
			return true
		}
		s.lines = append(s.lines, Line{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  1,
		})
		return true
	})
}

// RemoveItem 移除一行，不存在时不做任何事
func (s *Store) RemoveItem(id uint) {
	s.mutate(func() bool {
		return s.removeAt(s.indexOf(id))
	})
}

// UpdateQuantity 设置数量，0 等同于 RemoveItem
func (s *Store) UpdateQuantity(id uint, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s.mutate(func() bool {
		idx := s.indexOf(id)
		if idx < 0 {
			return false
		}
		if quantity == 0 {
			return s.removeAt(idx)
		}
		if s.lines[idx].Quantity == quantity {
			return false
		}
		s.lines[idx].Quantity = quantity
		return true
	})
	return nil
}

// Clear 清空购物车
func (s *Store) Clear() {
	s.mutate(func() bool {
		s.lines = nil
		return true
	})
}

// Deduct 按菜单扣减已下单的数量，扣完的行移除
// 下单期间新加入的菜单或多加的数量保留在购物车中
func (s *Store) Deduct(ordered map[uint]int) {
	if len(ordered) == 0 {
		return
	}
	s.mutate(func() bool {
		changed := false
		kept := make([]Line, 0, len(s.lines))
		for _, line := range s.lines {
			if qty := ordered[line.ItemID]; qty > 0 {
				changed = true
				line.Quantity -= qty
				if line.Quantity <= 0 {
					continue
				}
			}
			kept = append(kept, line)
		}
		if changed {
			s.lines = kept
		}
		return changed
	})
}

// ToggleOpen 切换抽屉开关
func (s *Store) ToggleOpen() {
	s.mutate(func() bool {
		s.isOpen = !s.isOpen
		return true
	})
}

// Close 关闭抽屉
func (s *Store) Close() {
	s.mutate(func() bool {
		if !s.isOpen {
			return false
		}
		s.isOpen = false
		return true
	})
}

// TotalAmount 计算总金额
func (s *Store) TotalAmount() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.lines)
}

// Lines 返回行副本
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

// Len 行数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// IsOpen 抽屉是否打开
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Snapshot 返回当前快照
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Watchers 当前观察者数量
func (s *Store) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// Subscribe 注册观察者，返回取消函数
func (s *Store) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.observers, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// mutate 在锁内执行变更，释放锁后通知观察者
func (s *Store) mutate(change func() bool) {
	s.mu.Lock()
	if !change() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	observers := make([]Observer, 0, len(s.order))
	for _, id := range s.order {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (s *Store) indexOf(id uint) int {
	for i := range s.lines {
		if s.lines[i].ItemID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(idx int) bool {
	if idx < 0 || idx >= len(s.lines) {
		return false
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	return true
}

func (s *Store) snapshotLocked() Snapshot {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return Snapshot{
		Lines:       copyLines(s.lines),
		IsOpen:      s.isOpen,
		ItemCount:   count,
		TotalAmount: totalOf(s.lines),
	}
}

func totalOf(lines []Line) models.Money {
	total := models.ZeroMoney()
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
