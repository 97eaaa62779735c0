package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain"
)

type recordingAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *recordingAuditRepo) Create(_ context.Context, e *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestAuditShutdownFlushesBuffer(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(repo, newTestCollector(t), zap.NewNop())

	const n = 50
	for i := 0; i < n; i++ {
		svc.LogAsync(context.Background(), AuditEntry{
			UserID:       uuid.New(),
			UserRole:     "patient",
			Action:       "create",
			ResourceType: "appointment",
			ResourceID:   uuid.NewString(),
		})
	}
	svc.Shutdown()

	assert.Equal(t, n, repo.count(), "all enqueued entries must be persisted before shutdown returns")
}

func TestAuditEntryCarriesPrincipal(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(repo, newTestCollector(t), zap.NewNop())

	userID := uuid.New()
	svc.LogAsync(context.Background(), AuditEntry{
		UserID:       userID,
		UserRole:     "admin",
		Action:       "blacklist",
		ResourceType: "doctor",
		ResourceID:   "abc",
		IPAddress:    "10.0.0.1",
	})
	svc.Shutdown()

	if assert.Len(t, repo.entries, 1) {
		e := repo.entries[0]
		assert.Equal(t, userID, e.UserID)
		assert.Equal(t, domain.RoleAdmin, e.UserRole)
		assert.Equal(t, domain.ActionBlacklist, e.Action)
		assert.Equal(t, "doctor", e.ResourceType)
	}
}
