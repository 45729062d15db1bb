package node

import (
	"context"
	"errors"
	"strings"
)

// IsResponseFormatUnsupportedError 判断错误是否由于提供商不支持
// response_format / json_schema 参数导致，用于降级为纯文本提示。
func IsResponseFormatUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "response_format"):
		return true
	case strings.Contains(msg, "json_schema"):
		return true
	case strings.Contains(msg, "unknown parameter") && strings.Contains(msg, "response"):
		return true
	case strings.Contains(msg, "invalid") && strings.Contains(msg, "response"):
		return true
	case strings.Contains(msg, "response_schema"):
		return true
	default:
		return false
	}
}

// IsAuthError 判断错误是否为认证/鉴权类错误，这类错误重试没有意义。
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401"):
		return true
	case strings.Contains(msg, "403"):
		return true
	case strings.Contains(msg, "unauthorized"):
		return true
	case strings.Contains(msg, "invalid api key"):
		return true
	case strings.Contains(msg, "incorrect api key"):
		return true
	case strings.Contains(msg, "permission denied"):
		return true
	default:
		return false
	}
}

// IsRetryableLLMError 判断错误是否值得重试：超时、限流、5xx 等瞬时错误。
// 认证错误与上下文取消不可重试。
func IsRetryableLLMError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsAuthError(err) {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return true
	case strings.Contains(msg, "429"):
		return true
	case strings.Contains(msg, "rate limit"):
		return true
	case strings.Contains(msg, "500"), strings.Contains(msg, "502"),
		strings.Contains(msg, "503"), strings.Contains(msg, "504"):
		return true
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "connection reset"):
		return true
	case strings.Contains(msg, "temporarily"):
		return true
	default:
		// 未知错误默认按瞬时处理，交给重试次数上限兜底
		return true
	}
}
