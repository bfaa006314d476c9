package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kantin-next/internal/config"
)

var (
	ErrRequestRejected = errors.New("backend request rejected")
	ErrRequestFailed   = errors.New("backend request failed")
	ErrResponseInvalid = errors.New("backend response invalid")
)

const defaultTimeout = 15 * time.Second

// APIError 后端返回的业务错误，Message 为后端 error 字段原文
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrRequestRejected, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRequestRejected, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrRequestRejected
}

// MessageOf 提取后端错误原文
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Client 食堂后端 HTTP 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient 创建后端客户端
func NewClient(cfg config.BackendConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: httpClient,
		timeout:    timeout,
	}
}

// BaseURL 后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Success *bool  `json:"success"`
}

// call 发送 JSON 请求并解析响应到 out
// 非 2xx 或 success=false 视为业务拒绝
func (c *Client) call(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
		}
		body = bytes.NewReader(payload)
	}
	respBody, status, err := c.doJSONRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	var head errorBody
	_ = json.Unmarshal(respBody, &head)
	if status < 200 || status >= 300 {
		return &APIError{Status: status, Message: firstNonEmpty(head.Error, head.Message)}
	}
	if head.Success != nil && !*head.Success {
		return &APIError{Status: status, Message: firstNonEmpty(head.Error, head.Message)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response failed: %v", ErrResponseInvalid, err)
	}
	return nil
}

func (c *Client) doJSONRequest(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := c.withDefaultTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: http request failed: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	return respBody, resp.StatusCode, nil
}

func (c *Client) withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
