// Package ez 把「绑定入参 -> 调 service -> 映射错误」收敛成一行注册。
package ez

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	mdw "devconnector/internal/transport/http/middleware"
	resp "devconnector/internal/transport/http/response"
)

type EZ struct {
	g    *gin.RouterGroup
	auth gin.HandlerFunc
}

// New auth 为 Action.Auth 为 true 时挂在该动作前的鉴权中间件；分组已统一鉴权时传 nil
func New(g *gin.RouterGroup, auth gin.HandlerFunc) EZ { return EZ{g: g, auth: auth} }

// 绑定方式
type Binder string

const (
	BindBody  Binder = "body"  // JSON 或表单，按 Content-Type
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/users/login"、"/posts/like/:id"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录
	Roles   []string // 限定角色（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

func bind[I any](c *gin.Context, b Binder, in *I) error {
	var err error
	switch b {
	case BindBody:
		err = c.ShouldBind(in)
		// 空请求体按全部字段缺省处理，交给校验规则报具体字段
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case BindQuery:
		err = c.ShouldBindQuery(in)
	}
	return err
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if len(a.Roles) > 0 {
			if u := mdw.Principal(c); u == nil || !slices.Contains(a.Roles, u.Role) {
				resp.Fail(c, domain.Forbidden("unauthorized", "User not authorized"))
				return
			}
		}

		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "request body too large"})
				return
			}
			resp.Fail(c, domain.Invalid("body", "Malformed request body"))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		resp.OK(c, out)
	}

	chain := []gin.HandlerFunc{h}
	if e.auth != nil && (a.Auth || len(a.Roles) > 0) {
		chain = []gin.HandlerFunc{e.auth, h}
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, chain...)
	case http.MethodPut:
		e.g.PUT(a.Path, chain...)
	case http.MethodDelete:
		e.g.DELETE(a.Path, chain...)
	default: // 默认 POST
		e.g.POST(a.Path, chain...)
	}
}
