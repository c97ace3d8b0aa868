package session

import (
	"VillageEmpire/internal/shared/transport/ws"
	"sync"
)

// KickedMsg 同一用户在新连接上认证时，旧连接收到的推送。
const KickedMsg = "session.kicked"

// Manager 维护用户与 ws 连接的一对一绑定。
type Manager interface {
	Bind(uid int64, token string, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	UnbindUID(uid int64)
	GetConn(uid int64) (ws.WSConn, bool)
	GetUID(conn ws.WSConn) (int64, bool)
	// Push 向在线用户推送，用户不在线返回 false
	Push(uid int64, name string, data any) bool
	Online() int
}

type SessMgr struct {
	mu        sync.RWMutex
	uid2token map[int64]string
	uid2conn  map[int64]ws.WSConn
	conn2uid  map[ws.WSConn]int64
	watched   map[ws.WSConn]struct{}
}

func NewSessMgr() *SessMgr {
	return &SessMgr{
		uid2token: make(map[int64]string),
		uid2conn:  make(map[int64]ws.WSConn),
		conn2uid:  make(map[ws.WSConn]int64),
		watched:   make(map[ws.WSConn]struct{}),
	}
}

var _ Manager = (*SessMgr)(nil)

func (s *SessMgr) Bind(uid int64, token string, conn ws.WSConn) {
	if conn == nil || uid <= 0 {
		return
	}
	conn.SetProperty(ws.ConnKeyUID, uid)

	s.mu.Lock()
	// 每条连接只挂一个 watcher，连接关闭后自动解绑
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}
	// 同一连接换号登录时清掉旧 uid 的映射
	if prev, ok := s.conn2uid[conn]; ok && prev != uid {
		delete(s.uid2conn, prev)
		delete(s.uid2token, prev)
	}
	old := s.uid2conn[uid]
	s.uid2conn[uid] = conn
	s.conn2uid[conn] = uid
	s.uid2token[uid] = token
	s.mu.Unlock()

	if old != nil && old != conn {
		old.Push(KickedMsg, nil)
		old.Close()
	}
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.UnbindConn(conn)
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watched, conn)
	uid, ok := s.conn2uid[conn]
	if !ok {
		return
	}
	delete(s.conn2uid, conn)
	if s.uid2conn[uid] == conn {
		delete(s.uid2conn, uid)
		delete(s.uid2token, uid)
	}
}

func (s *SessMgr) UnbindUID(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conn, ok := s.uid2conn[uid]; ok {
		delete(s.conn2uid, conn)
	}
	delete(s.uid2conn, uid)
	delete(s.uid2token, uid)
}

func (s *SessMgr) GetConn(uid int64) (ws.WSConn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.uid2conn[uid]
	return conn, ok
}

func (s *SessMgr) GetUID(conn ws.WSConn) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid, ok := s.conn2uid[conn]
	return uid, ok
}

func (s *SessMgr) Push(uid int64, name string, data any) bool {
	conn, ok := s.GetConn(uid)
	if !ok {
		return false
	}
	conn.Push(name, data)
	return true
}

func (s *SessMgr) Online() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uid2conn)
}
