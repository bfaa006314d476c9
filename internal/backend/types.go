package backend

import "github.com/kantin-next/internal/models"

// Kategori 菜单分类
type Kategori struct {
	KategoriID   uint   `json:"kategori_id"`
	NamaKategori string `json:"nama_kategori"`
	Icon         string `json:"icon"`
}

// Menu 后端菜单
type Menu struct {
	MenuID     uint         `json:"menu_id"`
	KategoriID uint         `json:"kategori_id"`
	NamaMenu   string       `json:"nama_menu"`
	Deskripsi  string       `json:"deskripsi"`
	Harga      models.Money `json:"harga"`
	Image      string       `json:"image"`
	Status     string       `json:"status"`
	CreateAt   string       `json:"create_at,omitempty"`
	Kategori   *Kategori    `json:"kategori,omitempty"`
}

// MenuInput 新增/修改菜单
type MenuInput struct {
	KategoriID uint         `json:"kategori_id"`
	NamaMenu   string       `json:"nama_menu"`
	Deskripsi  string       `json:"deskripsi"`
	Harga      models.Money `json:"harga"`
	Image      string       `json:"image"`
	Status     string       `json:"status"`
}

// KategoriInput 新增分类
type KategoriInput struct {
	NamaKategori string `json:"nama_kategori"`
	Icon         string `json:"icon"`
}

// Role 后端角色
type Role struct {
	RoleID   int    `json:"role_id"`
	RoleName string `json:"role_name"`
}

// User 后端用户
type User struct {
	UserID      uint   `json:"user_id"`
	RoleID      int    `json:"role_id"`
	NamaLengkap string `json:"nama_lengkap"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	CreateAt    string `json:"create_at,omitempty"`
	Role        *Role  `json:"role,omitempty"`
}

// LoginUser 登录返回的用户信息
type LoginUser struct {
	UserID      uint   `json:"user_id"`
	NamaLengkap string `json:"nama_lengkap"`
	Email       string `json:"email"`
	RoleID      int    `json:"role_id"`
	RoleName    string `json:"role_name"`
}

// LoginResult 登录结果
type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// RegisterInput 注册参数
type RegisterInput struct {
	NamaLengkap string `json:"nama_lengkap"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// OrderItem 下单条目
type OrderItem struct {
	MenuID uint `json:"menu_id"`
	Jumlah int  `json:"jumlah"`
}

// CreateOrderInput 下单参数
type CreateOrderInput struct {
	UserID     uint         `json:"user_id"`
	Items      []OrderItem  `json:"items"`
	Pembayaran string       `json:"pembayaran"`
	TotalHarga models.Money `json:"total_harga"`
}

// OrderDetail 订单明细
type OrderDetail struct {
	DetailID uint         `json:"detail_id"`
	OrderID  uint         `json:"order_id"`
	MenuID   uint         `json:"menu_id"`
	Jumlah   int          `json:"jumlah"`
	Subtotal models.Money `json:"subtotal"`
	Menu     *Menu        `json:"menu,omitempty"`
}

// Order 后端订单
type Order struct {
	OrderID      uint          `json:"order_id"`
	UserID       uint          `json:"user_id"`
	Status       string        `json:"status"`
	TotalHarga   models.Money  `json:"total_harga"`
	Pembayaran   string        `json:"pembayaran"`
	CreateAt     string        `json:"create_at,omitempty"`
	User         *User         `json:"user,omitempty"`
	OrderDetails []OrderDetail `json:"order_details"`
}

// CreateOrderResult 下单结果
type CreateOrderResult struct {
	Success    bool         `json:"success"`
	Order      Order        `json:"order"`
	TotalHarga models.Money `json:"total_harga"`
}
