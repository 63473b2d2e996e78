package drafts

import (
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/intake"
	"sync"
	"time"
)

type memoryEntry struct {
	draft     *intake.Draft
	expiresAt time.Time
}

// MemoryRepository keeps live Draft pointers, so concurrent requests for one draft share
// its submission guard. Entries expire ttl after their last write.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ contracts.DraftRepository = (*MemoryRepository)(nil)

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, draft *intake.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[draft.ID()] = &memoryEntry{draft: draft, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, draftID string) (*intake.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[draftID]
	if !ok || !r.now().Before(entry.expiresAt) {
		return nil, exceptions.ErrDraftNotFound(nil, draftID)
	}
	return entry.draft, nil
}

// Save refreshes the expiry; the stored pointer already carries every change.
func (r *MemoryRepository) Save(ctx context.Context, draft *intake.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[draft.ID()]
	if !ok {
		return exceptions.ErrDraftNotFound(nil, draft.ID())
	}
	entry.expiresAt = r.now().Add(r.ttl)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, draftID)
	return nil
}

// Sweep discards and removes every expired draft. It returns how many were removed.
func (r *MemoryRepository) Sweep() int {
	r.mu.Lock()
	now := r.now()
	var expired []*intake.Draft
	for id, entry := range r.entries {
		if now.Before(entry.expiresAt) {
			continue
		}
		expired = append(expired, entry.draft)
		delete(r.entries, id)
	}
	r.mu.Unlock()

	for _, draft := range expired {
		draft.Discard()
	}
	return len(expired)
}

func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
