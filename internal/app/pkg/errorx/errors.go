package errorx

import (
	"errors"
	"fmt"
)

// Kind 错误分类
// 分类决定传播策略：NotFound/Upstream（目录）终止整次运行，
// Validation/Payment/Persistence 收敛到单条推荐范围内
type Kind string

const (
	KindNotFound    Kind = "NOT_FOUND"   // 地块/用户记录不存在
	KindUpstream    Kind = "UPSTREAM"    // 商家或咨询服务不可用
	KindValidation  Kind = "VALIDATION"  // AI 输出格式非法、类目无法匹配
	KindPayment     Kind = "PAYMENT"     // 签名凭证缺失、结算失败
	KindPersistence Kind = "PERSISTENCE" // 支付成功后落库失败
	KindConfig      Kind = "CONFIG"      // 本地配置错误（如未知类目）
)

// Error 业务错误结构
type Error struct {
	Kind    Kind
	Message string
	Err     error // 底层错误（可为 nil）
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is 按 Kind 匹配
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
	}
	return false
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound 创建记录不存在错误
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Upstream 创建上游不可用错误
func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

// Validation 创建校验错误
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Payment 创建支付错误
func Payment(message string, err error) *Error {
	return Wrap(KindPayment, message, err)
}

// Persistence 创建持久化错误
func Persistence(message string, err error) *Error {
	return Wrap(KindPersistence, message, err)
}

// KindOf 提取错误的分类；非业务错误返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
