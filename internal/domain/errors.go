package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrDuplicate 由存储层在唯一约束冲突时返回
var ErrDuplicate = errors.New("duplicate key")

// Fields 字段 -> 错误信息，直接作为响应体
type Fields map[string]string

// Error 业务错误；Code 取 HTTP 状态码
type Error struct {
	Code   int
	Fields Fields
	Err    error
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	msg := fmt.Sprintf("%d %s", e.Code, strings.Join(parts, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code int, fields Fields, cause error) *Error {
	return &Error{Code: code, Fields: fields, Err: cause}
}

func Validation(fields map[string]string) error {
	return newError(http.StatusBadRequest, Fields(fields), nil)
}

func Invalid(field, msg string) error {
	return newError(http.StatusBadRequest, Fields{field: msg}, nil)
}

func Conflict(field, msg string) error {
	return newError(http.StatusBadRequest, Fields{field: msg}, nil)
}

func NotFound(field, msg string) error {
	return newError(http.StatusNotFound, Fields{field: msg}, nil)
}

// Unauthorized 凭证错误；cause 只用于 errors.Is，不会返回给客户端
func Unauthorized(code int, field, msg string, cause error) error {
	return newError(code, Fields{field: msg}, cause)
}

func Forbidden(field, msg string) error {
	return newError(http.StatusForbidden, Fields{field: msg}, nil)
}

// AsError 取出 *Error
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
