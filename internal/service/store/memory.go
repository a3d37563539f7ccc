package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// Artifact 待领取的输出文件
type Artifact struct {
	Filename  string
	Data      []byte
	CreatedAt time.Time
}

// ArtifactStore 一次性下载令牌存储（内存）
type ArtifactStore struct {
	mu    sync.Mutex
	items map[string]Artifact
	ttl   time.Duration
	now   func() time.Time
}

// NewArtifactStore 创建存储；ttl<=0 表示不过期
func NewArtifactStore(ttl time.Duration) *ArtifactStore {
	return &ArtifactStore{
		items: make(map[string]Artifact),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put 保存产物并返回新的不透明令牌
func (s *ArtifactStore) Put(filename string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.New().String()
	s.items[token] = Artifact{
		Filename:  filename,
		Data:      data,
		CreatedAt: s.now(),
	}
	return token
}

// TakeOnce 取出并删除产物；未知、已领取或已过期返回 ErrArtifactExpired
func (s *ArtifactStore) TakeOnce(token string) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[token]
	if !ok {
		return Artifact{}, model.ErrArtifactExpired
	}
	delete(s.items, token)
	if s.expiredLocked(a, s.now()) {
		return Artifact{}, model.ErrArtifactExpired
	}
	return a, nil
}

// Len 当前未领取数量
func (s *ArtifactStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep 删除过期产物，返回删除数量
func (s *ArtifactStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, v := range s.items {
		if s.expiredLocked(v, now) {
			delete(s.items, k)
			removed++
		}
	}
	return removed
}

// Run 定期清理，直到 ctx 结束
func (s *ArtifactStore) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && logger != nil {
				logger.Debug("expired downloads removed", "count", n)
			}
		}
	}
}

func (s *ArtifactStore) expiredLocked(a Artifact, now time.Time) bool {
	return s.ttl > 0 && now.Sub(a.CreatedAt) > s.ttl
}
