package i18n

import (
	"fmt"
	"strings"

	"github.com/kantin-next/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// LocaleID 默认语言
	LocaleID = "id-ID"
	// LocaleEN 英文
	LocaleEN = "en-US"

	localeContextKey = "locale"
)

var (
	supported = []language.Tag{language.MustParse(LocaleID), language.MustParse(LocaleEN)}
	matcher   = language.NewMatcher(supported)
)

// ResolveLocale 解析请求语言
// 优先级：query lang > X-Locale > Accept-Language，均无效时使用印尼语
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return LocaleID
	}
	if cached, ok := c.Get(localeContextKey); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}
	locale := NormalizeLocale(c.Query("lang"))
	if locale == "" {
		locale = NormalizeLocale(c.GetHeader("X-Locale"))
	}
	if locale == "" {
		locale = matchAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	c.Set(localeContextKey, locale)
	return locale
}

// NormalizeLocale 规范化语言标识，不支持时返回空串
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence < language.High {
		return ""
	}
	return supported[idx].String()
}

func matchAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return LocaleID
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LocaleID
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LocaleID
	}
	return supported[idx].String()
}

// T 翻译文案，缺失时回退印尼语，再回退 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(LocaleID, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := catalog[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}

// FormatRupiah 按印尼格式输出金额，例如 Rp 45.000,00
func FormatRupiah(amount models.Money) string {
	printer := message.NewPrinter(language.Indonesian)
	value := amount.Round(2).InexactFloat64()
	return "Rp " + printer.Sprint(number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
