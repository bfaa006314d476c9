package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kantin-next/internal/constants"
)

var (
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
	ErrEwalletIncomplete    = errors.New("ewallet provider and phone number are required")
	ErrPhoneNumberInvalid   = errors.New("phone number invalid")
)

var phonePattern = regexp.MustCompile(`^08[0-9]{8,12}$`)

// Payment 支付选择
type Payment struct {
	Method      string `json:"payment_method"`
	Provider    string `json:"ewallet_provider"`
	PhoneNumber string `json:"phone_number"`
}

// MethodOption 支付方式选项
type MethodOption struct {
	Method    string   `json:"method"`
	Providers []string `json:"providers,omitempty"`
}

// Methods 可选支付方式
func Methods() []MethodOption {
	methods := constants.PaymentMethods()
	out := make([]MethodOption, 0, len(methods))
	for _, method := range methods {
		option := MethodOption{Method: method}
		if method == constants.PaymentMethodEwallet {
			option.Providers = constants.EwalletProviders()
		}
		out = append(out, option)
	}
	return out
}

// Normalize 校验并返回规范化的支付选择
func (p Payment) Normalize() (Payment, error) {
	method := strings.ToLower(strings.TrimSpace(p.Method))
	switch method {
	case constants.PaymentMethodQRIS, constants.PaymentMethodCash:
		return Payment{Method: method}, nil
	case constants.PaymentMethodEwallet:
	default:
		return Payment{}, ErrPaymentMethodInvalid
	}

	provider := strings.TrimSpace(p.Provider)
	phone := strings.TrimSpace(p.PhoneNumber)
	if provider == "" || phone == "" {
		return Payment{}, ErrEwalletIncomplete
	}
	canonical := ""
	for _, candidate := range constants.EwalletProviders() {
		if strings.EqualFold(candidate, provider) {
			canonical = candidate
			break
		}
	}
	if canonical == "" {
		return Payment{}, ErrPaymentMethodInvalid
	}
	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return Payment{}, err
	}
	return Payment{Method: method, Provider: canonical, PhoneNumber: normalizedPhone}, nil
}

// WireValue 提交给后端的 pembayaran 字段
// 电子钱包提交渠道名，其他提交支付方式本身
func (p Payment) WireValue() string {
	if p.Method == constants.PaymentMethodEwallet {
		return p.Provider
	}
	return p.Method
}

// NormalizePhone 规范化印尼手机号，+62 前缀转为 0
func NormalizePhone(raw string) (string, error) {
	phone := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(phone, "+62"):
		phone = "0" + phone[3:]
	case strings.HasPrefix(phone, "62"):
		phone = "0" + phone[2:]
	}
	if !phonePattern.MatchString(phone) {
		return "", ErrPhoneNumberInvalid
	}
	return phone, nil
}
