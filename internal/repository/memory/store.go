package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pickup/internal/entities"
	"pickup/internal/service/pickup"
)

// Store - хранилище заявок и журнала переходов в памяти процесса.
// Повторяет контракт postgres-репозиториев, включая условную запись по версии.
type Store struct {
	mu          sync.RWMutex
	requests    map[string]*entities.PickupRequest
	events      []entities.LifecycleEvent
	nextEventID int64
}

func New() *Store {
	return &Store{
		requests: make(map[string]*entities.PickupRequest),
	}
}

func (s *Store) Create(_ context.Context, request entities.PickupRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[request.ID]; ok {
		return fmt.Errorf("%w: request %s already exists", pickup.ErrConflict, request.ID)
	}
	s.requests[request.ID] = request.Clone()
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*entities.PickupRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, pickup.ErrNotFound
	}
	return request.Clone(), nil
}

func (s *Store) List(_ context.Context, filter entities.PickupRequestFilter) ([]entities.PickupRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.PickupRequest, 0, 8)
	for _, request := range s.requests {
		if filter.CustomerID != nil && request.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.PharmacyID != nil && request.PharmacyID != *filter.PharmacyID {
			continue
		}
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		result = append(result, *request.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].RequestedAt.Equal(result[j].RequestedAt) {
			return result[i].RequestedAt.After(result[j].RequestedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) ApplyTransition(
	_ context.Context,
	updated entities.PickupRequest,
	expectedStatus entities.PickupStatus,
	expectedVersion int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[updated.ID]
	if !ok {
		return pickup.ErrNotFound
	}
	if stored.Status != expectedStatus || stored.Version != expectedVersion {
		return fmt.Errorf("%w: expected %s v%d, stored %s v%d",
			pickup.ErrConflict, expectedStatus, expectedVersion, stored.Status, stored.Version)
	}

	s.requests[updated.ID] = updated.Clone()
	return nil
}

func (s *Store) ListExpired(
	_ context.Context,
	now time.Time,
	after *entities.ExpiryCandidate,
	limit uint64,
) ([]entities.ExpiryCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]entities.ExpiryCandidate, 0, 8)
	for _, request := range s.requests {
		if request.Status != entities.StatusRequested && request.Status != entities.StatusWaiting {
			continue
		}
		if request.AutoCancelDeadline.After(now) {
			continue
		}
		candidate := entities.ExpiryCandidate{ID: request.ID, AutoCancelDeadline: request.AutoCancelDeadline}
		if after != nil && !candidateAfter(candidate, *after) {
			continue
		}
		candidates = append(candidates, candidate)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidateAfter(candidates[j], candidates[i])
	})

	if uint64(len(candidates)) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// candidateAfter - порядок (deadline, id), как в ORDER BY postgres-репозитория.
func candidateAfter(c, cursor entities.ExpiryCandidate) bool {
	if !c.AutoCancelDeadline.Equal(cursor.AutoCancelDeadline) {
		return c.AutoCancelDeadline.After(cursor.AutoCancelDeadline)
	}
	return c.ID > cursor.ID
}

func (s *Store) Append(_ context.Context, event entities.LifecycleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	event.ID = s.nextEventID
	s.events = append(s.events, event)
	return nil
}

func (s *Store) ListByRequestID(_ context.Context, requestID string) ([]entities.LifecycleEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.LifecycleEvent, 0, 4)
	for _, event := range s.events {
		if event.RequestID == requestID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (s *Store) FetchUnpublished(_ context.Context, limit uint64) ([]entities.LifecycleEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.LifecycleEvent, 0, limit)
	for _, event := range s.events {
		if uint64(len(result)) == limit {
			break
		}
		if event.PublishedAt == nil {
			result = append(result, event)
		}
	}
	return result, nil
}

func (s *Store) MarkPublished(_ context.Context, ids []int64, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	for i := range s.events {
		if marked[s.events[i].ID] {
			at := publishedAt
			s.events[i].PublishedAt = &at
		}
	}
	return nil
}

func (s *Store) CountByStatus(_ context.Context, pharmacyID int64) (map[entities.PickupStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[entities.PickupStatus]int64)
	for _, request := range s.requests {
		if request.PharmacyID == pharmacyID {
			counts[request.Status]++
		}
	}
	return counts, nil
}

func (s *Store) CountCompleted(
	_ context.Context,
	pharmacyID int64,
	windows entities.CompletionWindows,
	now time.Time,
) (entities.CompletionCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts entities.CompletionCounts
	for _, request := range s.requests {
		if request.PharmacyID != pharmacyID || request.CompletedAt == nil {
			continue
		}
		completedAt := *request.CompletedAt
		if completedAt.After(now) {
			continue
		}
		if !completedAt.Before(windows.DayStart) {
			counts.Today++
		}
		if !completedAt.Before(windows.WeekStart) {
			counts.Week++
		}
		if !completedAt.Before(windows.MonthStart) {
			counts.Month++
		}
	}
	return counts, nil
}

// TxManager выполняет fn без транзакции: атомарность каждой записи в Store
// обеспечивает мьютекс.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
