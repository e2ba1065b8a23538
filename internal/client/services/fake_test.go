package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/auth"
	"github.com/dmitrijs2005/happiestbaby/internal/client/client"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/dmitrijs2005/happiestbaby/internal/netx"
)

const testBase = "https://api.test"

type route struct {
	status int
	body   string
}

// fakeSender answers by "METHOD path" and turns error statuses into
// *common.RequestError the way the dispatcher does.
type fakeSender struct {
	mu     sync.Mutex
	routes map[string]route
	calls  []*netx.Request
	// gate, when set, runs before each answer with the route key.
	gate func(key string)
}

func newFakeSender() *fakeSender {
	return &fakeSender{routes: map[string]route{}}
}

func (f *fakeSender) set(key string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key] = route{status: status, body: body}
}

func (f *fakeSender) Send(_ context.Context, r *netx.Request) (*netx.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, r)
	key := r.Method + " " + strings.TrimPrefix(r.URL, testBase)
	rt, ok := f.routes[key]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		gate(key)
	}

	if !ok {
		rt = route{status: 404, body: `{"message":"not found"}`}
	}
	if rt.status >= 400 {
		return nil, &common.RequestError{Method: r.Method, URL: r.URL, StatusCode: rt.status, Body: []byte(rt.body)}
	}
	return &netx.Response{StatusCode: rt.status, Body: []byte(rt.body)}, nil
}

func (f *fakeSender) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.calls {
		if r.Method+" "+strings.TrimPrefix(r.URL, testBase) == key {
			n++
		}
	}
	return n
}

func (f *fakeSender) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSender) last(key string) *netx.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		r := f.calls[i]
		if r.Method+" "+strings.TrimPrefix(r.URL, testBase) == key {
			return r
		}
	}
	return nil
}

type fakeAuth struct {
	loginErr error
	logins   int
	logouts  int
	user     string
	state    auth.State
}

func (f *fakeAuth) Login(_ context.Context, username, _ string) error {
	f.logins++
	f.user = username
	if f.loginErr != nil {
		f.state = auth.StateFailed
		return f.loginErr
	}
	f.state = auth.StateAuthenticated
	return nil
}

func (f *fakeAuth) Authenticate(ctx context.Context) error { return f.Login(ctx, f.user, "") }
func (f *fakeAuth) SetCredentials(username, _ string)      { f.user = username }
func (f *fakeAuth) Logout()                                { f.logouts++; f.state = auth.StateUnauthenticated }
func (f *fakeAuth) State() auth.State                      { return f.state }

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	s      *Session
	sender *fakeSender
	auth   *fakeAuth
	clock  *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sender: newFakeSender(),
		auth:   &fakeAuth{},
		clock:  &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.s = NewSession(f.auth, client.NewAPIClient(f.sender, testBase), Options{}, nil)
	f.s.now = f.clock.Now
	return f
}

// seedDevices installs the routes of a healthy account with two devices.
func (f *fixture) seedDevices() {
	f.sender.set("GET "+common.AccountV10URI, 200, `{"userId":"user-1","givenName":"Ann","email":"ann@example.com"}`)
	f.sender.set("GET "+common.BabiesURI, 200, `[{"_id":"baby-1","babyName":"Bo"}]`)
	f.sender.set("GET "+common.DevicesV11URI, 200, `[
		{"serialNumber":"SN1","baby":"baby-1","deviceName":"Nursery","updatedAt":"a"},
		{"serialNumber":"SN2","baby":"baby-1","deviceName":"Travel"},
		{"baby":"baby-1"}
	]`)
	f.sender.set("GET /ds/devices/SN1/configs", 200, `{"gen":"A","serial":"SN1"}`)
	f.sender.set("GET /ds/devices/SN2/configs", 200, `{"gen":"A","serial":"SN2"}`)
	f.sender.set("GET "+common.SessionURI, 200, `{"startTime":"2024-05-01T01:00:00.000Z","currentStatus":"asleep"}`)
}
