package session

import (
	"sync"
	"testing"
	"time"
)

type fakeConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []string
	done   chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{props: make(map[string]any), done: make(chan struct{})}
}

func (c *fakeConn) SetProperty(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[key] = value
}

func (c *fakeConn) GetProperty(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props[key]
}

func (c *fakeConn) RemoveProperty(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.props, key)
}

func (c *fakeConn) Addr() string { return "fake" }

func (c *fakeConn) Push(name string, _ any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
}

func (c *fakeConn) Close() { c.once.Do(func() { close(c.done) }) }

func (c *fakeConn) Done() <-chan struct{} { return c.done }

func (c *fakeConn) pushes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.pushed...)
}

func TestBind_新连接踢掉旧连接(t *testing.T) {
	m := NewSessMgr()
	c1, c2 := newFakeConn(), newFakeConn()
	m.Bind(7, "t1", c1)
	m.Bind(7, "t2", c2)

	got, ok := m.GetConn(7)
	if !ok || got != c2 {
		t.Fatalf("GetConn(7) 应返回新连接")
	}
	select {
	case <-c1.Done():
	case <-time.After(time.Second):
		t.Fatalf("旧连接应被关闭")
	}
	if p := c1.pushes(); len(p) != 1 || p[0] != KickedMsg {
		t.Fatalf("旧连接推送=%v, want [%s]", p, KickedMsg)
	}
	if uid, _ := c2.GetProperty("uid").(int64); uid != 7 {
		t.Fatalf("连接属性 uid=%d, want 7", uid)
	}
}

func TestBind_连接关闭后自动解绑(t *testing.T) {
	m := NewSessMgr()
	c := newFakeConn()
	m.Bind(9, "t", c)
	if m.Online() != 1 {
		t.Fatalf("Online=%d, want 1", m.Online())
	}
	c.Close()

	deadline := time.Now().Add(time.Second)
	for m.Online() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("连接关闭后仍在线")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if m.Push(9, "x", nil) {
		t.Fatalf("离线用户 Push 应返回 false")
	}
}

func TestPush_在线用户收到推送(t *testing.T) {
	m := NewSessMgr()
	c := newFakeConn()
	m.Bind(3, "t", c)
	if !m.Push(3, "village.update", nil) {
		t.Fatalf("在线用户 Push 应返回 true")
	}
	if p := c.pushes(); len(p) != 1 || p[0] != "village.update" {
		t.Fatalf("推送=%v", p)
	}
	m.UnbindUID(3)
	if _, ok := m.GetUID(c); ok {
		t.Fatalf("UnbindUID 后连接不应再映射到用户")
	}
}
