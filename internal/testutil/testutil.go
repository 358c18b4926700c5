// Package testutil provides HTTP assertion helpers, a fake upstream, and a
// preassembled broker environment for tests.
package testutil

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/saivenkat-burle/tsembed/internal/api"
	"github.com/saivenkat-burle/tsembed/internal/routing"
	"github.com/saivenkat-burle/tsembed/internal/service"
)

// Fixed identities the test environment is configured with.
const (
	TestServiceAccount = "svc-account"
	TestCookieDomain   = "analytics.example.com"
	TestABACUsername   = "whitelist"
)

// TestOrigins are the browser origins the test router allows.
var TestOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// FakeClock is a settable clock for exercising token expiry.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock() *FakeClock {
	return &FakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// Env is a fully wired broker over a fake upstream.
type Env struct {
	Service  *service.Service
	Router   http.Handler
	Upstream *FakeUpstream
	Clock    *FakeClock
}

func SetupTestEnv(t *testing.T) *Env {
	t.Helper()
	upstream := NewFakeUpstream()
	clock := NewFakeClock()

	svc := service.New(service.Config{
		SecretKey:      "test-secret",
		ServiceAccount: TestServiceAccount,
		OrgID:          "0",
		CookieDomain:   TestCookieDomain,
		ABACUsername:   TestABACUsername,
		ABACOrgID:      "0",
		DefaultBindings: []service.VariableBinding{
			{Name: "site_id_var", Values: []string{"S-101", "S-102"}},
		},
		IndexingDelay: time.Millisecond,
		Now:           clock.Now,
	}, upstream, upstream, upstream, upstream)

	return &Env{
		Service:  svc,
		Router:   routing.BuildRouter(api.New(svc), TestOrigins),
		Upstream: upstream,
		Clock:    clock,
	}
}
