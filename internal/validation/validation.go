// Package validation 对各类入参做纯函数校验，返回 字段 -> 错误信息。
package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Errors 字段 -> 错误信息；为空即通过
type Errors map[string]string

func (e Errors) IsValid() bool { return len(e) == 0 }

// validator.Validate 并发安全，且会缓存 tag 解析结果
var v = validator.New()

func isEmpty(s string) bool { return s == "" }

func isEmail(s string) bool { return v.Var(s, "email") == nil }

// isURL 允许省略 scheme（www.example.com）
func isURL(s string) bool {
	if v.Var(s, "url") == nil {
		return true
	}
	return !strings.Contains(s, "://") && v.Var("http://"+s, "url") == nil
}

// isLength 按字符数（rune）计算，max <= 0 表示不限上限
func isLength(s string, min, max int) bool {
	tag := "min=" + strconv.Itoa(min)
	if max > 0 {
		tag += ",max=" + strconv.Itoa(max)
	}
	return v.Var(s, tag) == nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate 接受 2006-01-02 或 RFC3339
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SplitSkills 逗号分隔，去空白，丢弃空项
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
