package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"pickup/internal/entities"
	"pickup/pkg/logger"
)

const cacheOperation = "pharmacy-stats"

// Service считает статистику аптеки по текущему состоянию заявок.
// Отдельных счётчиков нет: каждый агрегат выводится из хранилища в момент запроса.
type Service struct {
	log        serviceLogger
	repository Repository
	cache      Cache
	cacheTTL   time.Duration
	location   *time.Location
	clock      Clock
}

// New: cache может быть nil, location nil означает UTC.
func New(log serviceLogger, repository Repository, cache Cache, cacheTTL time.Duration, location *time.Location, clock Clock) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		log:        log,
		repository: repository,
		cache:      cache,
		cacheTTL:   cacheTTL,
		location:   location,
		clock:      clock,
	}
}

func (s *Service) PharmacyStats(ctx context.Context, pharmacyID int64) (*entities.PharmacyStats, error) {
	if pharmacyID <= 0 {
		return nil, ErrInvalidPharmacyID
	}

	key := ""
	if s.cache != nil && s.cacheTTL > 0 {
		key = s.cache.GenerateKey(cacheOperation, strconv.FormatInt(pharmacyID, 10))
		if cached, ok := s.fromCache(ctx, key); ok {
			return cached, nil
		}
	}

	now := s.clock.Now()

	perStatus, err := s.repository.CountByStatus(ctx, pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("%w: count by status: %w", ErrStoreUnavailable, err)
	}

	completed, err := s.repository.CountCompleted(ctx, pharmacyID, CompletionWindows(now, s.location), now)
	if err != nil {
		return nil, fmt.Errorf("%w: count completed: %w", ErrStoreUnavailable, err)
	}

	counts := make(map[entities.PickupStatus]int64, len(entities.AllStatuses()))
	for _, status := range entities.AllStatuses() {
		counts[status] = perStatus[status]
	}

	result := &entities.PharmacyStats{
		PharmacyID:     pharmacyID,
		CountPerStatus: counts,
		TodayCompleted: completed.Today,
		WeekCompleted:  completed.Week,
		MonthCompleted: completed.Month,
		ComputedAt:     now.UTC(),
	}

	if key != "" {
		s.toCache(ctx, key, result)
	}

	return result, nil
}

// CompletionWindows возвращает начала текущих суток, ISO-недели (с понедельника)
// и календарного месяца в часовом поясе loc.
func CompletionWindows(now time.Time, loc *time.Location) entities.CompletionWindows {
	local := now.In(loc)
	y, m, d := local.Date()

	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	sinceMonday := (int(local.Weekday()) + 6) % 7

	return entities.CompletionWindows{
		DayStart:   dayStart,
		WeekStart:  dayStart.AddDate(0, 0, -sinceMonday),
		MonthStart: time.Date(y, m, 1, 0, 0, 0, 0, loc),
	}
}

// кэш best effort: любая ошибка - промах
func (s *Service) fromCache(ctx context.Context, key string) (*entities.PharmacyStats, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("stats cache get failed",
			logger.NewField("key", key),
			logger.NewField("error", err),
		)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var cached entities.PharmacyStats
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.log.Warn("stats cache value is not decodable",
			logger.NewField("key", key),
			logger.NewField("error", err),
		)
		return nil, false
	}
	return &cached, true
}

func (s *Service) toCache(ctx context.Context, key string, value *entities.PharmacyStats) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("encode stats for cache",
			logger.NewField("error", err),
		)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.log.Warn("stats cache set failed",
			logger.NewField("key", key),
			logger.NewField("error", err),
		)
	}
}
