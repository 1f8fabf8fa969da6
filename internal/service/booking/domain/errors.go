// internal/service/booking/domain/errors.go
package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind 对预订流程中的失败做分类，接口层据此映射 HTTP 状态码。
type Kind int

const (
	KindInternal   Kind = iota // 存储或其他基础设施故障
	KindNotFound               // 引用的用户或房间不存在
	KindValidation             // 输入不合法（日期区间颠倒等）
	KindConflict               // 房间在请求区间内不可用（含提交时发现的竞争）
)

// Error 携带错误分类的领域错误。
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// NotFoundf 构造一个 NotFound 错误。
func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Validationf 构造一个 Validation 错误。
func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// Conflictf 构造一个 Conflict 错误。
func Conflictf(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// WrapInternal 把基础设施错误包装为 Internal 领域错误。
func WrapInternal(cause error, msg string) error {
	return &Error{Kind: KindInternal, msg: msg, cause: errors.WithStack(cause)}
}

// KindOf 返回错误的分类；非领域错误一律视为 Internal。
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
