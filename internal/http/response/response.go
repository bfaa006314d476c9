package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 所有响应都以 HTTP 200 返回，业务结果看 status_code
type envelope struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

func write(c *gin.Context, body envelope) {
	c.JSON(http.StatusOK, body)
}

// Success 成功
func Success(c *gin.Context, data interface{}) {
	write(c, envelope{Msg: "success", Data: data})
}

// SuccessWithMsg 成功并带提示文案
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	write(c, envelope{Msg: msg, Data: data})
}

// Paged 列表分页响应
func Paged(c *gin.Context, items interface{}, pagination Pagination) {
	write(c, envelope{Msg: "success", Data: items, Pagination: &pagination})
}

// Error 失败，data 里附带 request_id 便于排查
func Error(c *gin.Context, code int, msg string) {
	ErrorWithData(c, code, msg, nil)
}

// ErrorWithData 失败并带附加数据
func ErrorWithData(c *gin.Context, code int, msg string, data gin.H) {
	if id := c.GetString("request_id"); id != "" {
		if data == nil {
			data = gin.H{}
		}
		if _, taken := data["request_id"]; !taken {
			data["request_id"] = id
		}
	}
	var payload interface{}
	if data != nil {
		payload = data
	}
	write(c, envelope{StatusCode: code, Msg: msg, Data: payload})
}

// Unauthorized 未登录
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 无权限
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}
