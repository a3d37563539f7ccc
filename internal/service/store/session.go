package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	username string
	lastSeen time.Time
}

// SessionStore 登录会话（内存，空闲超时）
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	idle     time.Duration
	now      func() time.Time
}

// NewSessionStore 创建会话存储；idle<=0 表示不过期
func NewSessionStore(idle time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		idle:     idle,
		now:      time.Now,
	}
}

// Create 为用户创建会话，返回会话 ID
func (s *SessionStore) Create(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())

	id := uuid.New().String()
	s.sessions[id] = session{username: username, lastSeen: s.now()}
	return id
}

// Lookup 返回会话用户并刷新空闲计时
func (s *SessionStore) Lookup(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return "", false
	}
	now := s.now()
	if s.idle > 0 && now.Sub(sess.lastSeen) > s.idle {
		delete(s.sessions, id)
		return "", false
	}
	sess.lastSeen = now
	s.sessions[id] = sess
	return sess.username, true
}

// Delete 注销会话
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) purgeExpiredLocked(now time.Time) {
	if s.idle <= 0 {
		return
	}
	for k, v := range s.sessions {
		if now.Sub(v.lastSeen) > s.idle {
			delete(s.sessions, k)
		}
	}
}
