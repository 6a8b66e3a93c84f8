// Package service 业务编排：校验入参、读-改-写整文档、把失败翻译成 *domain.Error。
// 服务本身无锁，存储是唯一的串行化点。
package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"devconnector/pkg/utils"
)

// PasswordHasher 由 utils.BcryptHasher 实现
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Compare(hashed, pw string) bool
}

var _ PasswordHasher = utils.BcryptHasher{}

// Metrics 业务计数；为 nil 时不计数
type Metrics struct {
	Registrations prometheus.Counter
	Logins        *prometheus.CounterVec // result: ok / not_found / mismatch
	PostsCreated  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "devconnector_registrations_total", Help: "Count of successful registrations",
		}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devconnector_logins_total", Help: "Count of login attempts by result",
		}, []string{"result"}),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "devconnector_posts_created_total", Help: "Count of created posts",
		}),
	}
	reg.MustRegister(m.Registrations, m.Logins, m.PostsCreated)
	return m
}

func (m *Metrics) registered() {
	if m != nil {
		m.Registrations.Inc()
	}
}

func (m *Metrics) login(result string) {
	if m != nil {
		m.Logins.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) postCreated() {
	if m != nil {
		m.PostsCreated.Inc()
	}
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
