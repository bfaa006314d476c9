package public

import (
	"errors"

	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/catalog"
	"github.com/kantin-next/internal/checkout"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartItemErrorRules = []mappedHandlerError{
	{target: catalog.ErrItemNotFound, code: response.CodeNotFound, key: "error.menu_not_found"},
	{target: catalog.ErrItemOutOfStock, code: response.CodeBadRequest, key: "error.menu_out_of_stock"},
	{target: cart.ErrNegativeQuantity, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: checkout.ErrSubmissionInFlight, code: response.CodeConflict, key: "error.checkout_in_flight"},
	{target: checkout.ErrUnauthenticated, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: checkout.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: checkout.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: checkout.ErrEwalletIncomplete, code: response.CodeBadRequest, key: "error.ewallet_incomplete"},
	{target: checkout.ErrPhoneNumberInvalid, code: response.CodeBadRequest, key: "error.phone_invalid"},
	{target: checkout.ErrOrderFailed, code: response.CodeBadGateway, key: "error.order_failed"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, key: "error.login_invalid"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrRegisterInvalid, code: response.CodeBadRequest, key: "error.register_invalid"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
}

// respondCheckoutError 后端拒绝订单时原样展示后端文案
func respondCheckoutError(c *gin.Context, err error) {
	if msg := checkout.ServerMessage(err); msg != "" {
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_failed")
}

// respondAuthError 本地校验错误走映射表，其余交给后端错误处理
func respondAuthError(c *gin.Context, err error, rules []mappedHandlerError, fallbackKey string) {
	if isMappedError(err, rules) {
		respondWithMappedError(c, err, rules, response.CodeBadRequest, fallbackKey)
		return
	}
	respondBackendError(c, err, fallbackKey)
}

func isMappedError(err error, rules []mappedHandlerError) bool {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return true
		}
	}
	return false
}
