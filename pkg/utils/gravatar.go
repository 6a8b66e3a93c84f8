package utils

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// Gravatar 由邮箱生成头像地址（s=200, r=pg, d=mm）
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
