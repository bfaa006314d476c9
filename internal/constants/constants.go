package constants

// 支付方式常量
const (
	PaymentMethodQRIS    = "qris"
	PaymentMethodEwallet = "ewallet"
	PaymentMethodCash    = "tunai"
)

// 电子钱包渠道常量
const (
	EwalletDana      = "Dana"
	EwalletShopeePay = "ShopeePay"
	EwalletGoPay     = "GoPay"
	EwalletOVO       = "OVO"
)

// 菜单库存状态（统一表示）
const (
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
)

// 用户角色常量
// customer/admin 来自后端会话，canteen_viewer/canteen_staff 由管理员分配
const (
	RoleCustomer      = "customer"
	RoleCanteenViewer = "canteen_viewer"
	RoleCanteenStaff  = "canteen_staff"
	RoleAdmin         = "admin"
)

// 会话事件常量
const (
	SessionEventLogin  = "login"
	SessionEventLogout = "logout"
)

// 结账尝试结果常量
const (
	CheckoutResultSuccess = "success"
	CheckoutResultFailed  = "failed"
)

// 后端订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// 队列名称与任务类型
const (
	QueueDefault             = "default"
	TaskCheckoutAttemptStore = "checkout:attempt:store"
)

// PaymentMethods 支持的支付方式（按展示顺序）
func PaymentMethods() []string {
	return []string{PaymentMethodQRIS, PaymentMethodEwallet, PaymentMethodCash}
}

// EwalletProviders 支持的电子钱包（按展示顺序）
func EwalletProviders() []string {
	return []string{EwalletDana, EwalletShopeePay, EwalletGoPay, EwalletOVO}
}

// OrderStatuses 管理端可设置的订单状态
func OrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled}
}
