package score

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/worker"
)

// Service persists scores. It is the only writer of journalist scores;
// recomputation of one journalist is serialised, different journalists run
// in parallel.
type Service struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
	workers   int
	now       func() time.Time
	locks     keyedMutex
	refresh   sync.RWMutex
}

// Option configures a Service
type Option func(*Service)

// WithWorkers sets the bulk refresh concurrency
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock overrides the clock used for history timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a scoring service. A nil publisher discards events.
func NewService(store Store, publisher Publisher, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NewLogPublisher(logger)
	}
	s := &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		workers:   4,
		now:       time.Now,
		locks:     keyedMutex{locks: make(map[int64]*sync.Mutex)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one journalist's recomputation
type Result struct {
	JournalistID int64
	Truthfulness decimal.Decimal
	Speed        decimal.Decimal
}

// RecomputeJournalist recomputes and stores one journalist's scores
func (s *Service) RecomputeJournalist(ctx context.Context, id int64) (*Result, error) {
	s.refresh.RLock()
	defer s.refresh.RUnlock()
	unlock := s.locks.lock(id)
	defer unlock()

	earliness, err := s.earliness(ctx)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, earliness[id])
}

// OnClaimChanged recomputes the journalists affected by a claim update. It
// does nothing unless the validation status or first-to-report flag changed.
func (s *Service) OnClaimChanged(ctx context.Context, before, after model.Claim) error {
	statusChanged := before.Status != after.Status
	if !statusChanged && before.IsFirstClaim == after.IsFirstClaim && before.JournalistID == after.JournalistID {
		return nil
	}

	if statusChanged {
		s.publish(ctx, events.Event{
			Type:         events.ClaimStatusChanged,
			ClaimID:      after.ID,
			JournalistID: after.JournalistID,
			PlayerName:   after.PlayerName,
			FromStatus:   string(before.Status),
			ToStatus:     string(after.Status),
		})
	}

	var ids []int64
	if after.JournalistID != 0 {
		ids = append(ids, after.JournalistID)
	}
	if before.JournalistID != 0 && before.JournalistID != after.JournalistID {
		ids = append(ids, before.JournalistID)
	}
	if len(ids) == 0 {
		return nil
	}

	// Claims are read and scores written under the same locks, so a
	// recompute never stores a speed older than the one it replaces.
	s.refresh.RLock()
	defer s.refresh.RUnlock()
	unlock := s.locks.lock(ids...)
	defer unlock()

	earliness, err := s.earliness(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.apply(ctx, id, earliness[id]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) earliness(ctx context.Context) (map[int64][]float64, error) {
	all, err := s.store.ListScoringClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scoring claims: %w", err)
	}
	return Earliness(Stories(all), all, ByJournalist), nil
}

// RefreshSummary reports a bulk refresh
type RefreshSummary struct {
	Journalists int
	Updated     int
	Failed      int
}

// RefreshAll recomputes every journalist. Earliness is computed once and
// shared; per-journalist updates fan out over a worker pool. Targeted
// recomputes wait until the refresh is done.
func (s *Service) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	s.refresh.Lock()
	defer s.refresh.Unlock()

	journalists, err := s.store.ListJournalists(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("list journalists: %w", err)
	}
	earliness, err := s.earliness(ctx)
	if err != nil {
		return RefreshSummary{}, err
	}

	tasks := make([]worker.Task, 0, len(journalists))
	for _, j := range journalists {
		id := j.ID
		values := earliness[id]
		tasks = append(tasks, worker.Task{
			Key: strconv.FormatInt(id, 10),
			Fn: func(ctx context.Context) error {
				_, err := s.apply(ctx, id, values)
				return err
			},
		})
	}

	results := worker.RunTasks(ctx, s.workers, tasks)
	failed := worker.Failed(results)
	for _, r := range failed {
		s.logger.Warn("score refresh failed", zap.String("journalist_id", r.Key), zap.Error(r.Error))
	}

	summary := RefreshSummary{
		Journalists: len(journalists),
		Updated:     len(results) - len(failed),
		Failed:      len(failed),
	}
	s.logger.Info("scores refreshed",
		zap.Int("journalists", summary.Journalists),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", summary.Failed),
	)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// JournalistStats returns a journalist's claim record and stored scores
func (s *Service) JournalistStats(ctx context.Context, id int64) (model.JournalistStats, error) {
	j, err := s.store.GetJournalist(ctx, id)
	if err != nil {
		return model.JournalistStats{}, fmt.Errorf("get journalist %d: %w", id, err)
	}
	claims, err := s.store.ListJournalistClaims(ctx, id)
	if err != nil {
		return model.JournalistStats{}, fmt.Errorf("list claims for journalist %d: %w", id, err)
	}
	st := Stats(claims)
	st.TruthfulnessScore = j.TruthfulnessScore
	st.SpeedScore = j.SpeedScore
	return st, nil
}

// ClubStats ranks journalists on claims involving club. Speed is ranked over
// every claim about the club's confirmed stories.
func (s *Service) ClubStats(ctx context.Context, club string) ([]model.ClubJournalistStats, error) {
	claims, err := s.store.ListClubClaims(ctx, club)
	if err != nil {
		return nil, fmt.Errorf("list claims for club %q: %w", club, err)
	}
	all, err := s.store.ListScoringClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scoring claims: %w", err)
	}
	journalists, err := s.store.ListJournalists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journalists: %w", err)
	}
	byID := make(map[int64]model.Journalist, len(journalists))
	for _, j := range journalists {
		byID[j.ID] = j
	}
	return ClubStats(claims, all, byID), nil
}

// PublicationSpeeds scores publications over all claims
func (s *Service) PublicationSpeeds(ctx context.Context) (map[string]decimal.Decimal, error) {
	all, err := s.store.ListScoringClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scoring claims: %w", err)
	}
	return PublicationSpeeds(all), nil
}

// apply writes one journalist's scores. Callers hold that journalist's lock
// or the refresh lock.
func (s *Service) apply(ctx context.Context, id int64, earliness []float64) (*Result, error) {
	j, err := s.store.GetJournalist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get journalist %d: %w", id, err)
	}
	claims, err := s.store.ListJournalistClaims(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list claims for journalist %d: %w", id, err)
	}

	st := Stats(claims)
	res := &Result{
		JournalistID: id,
		Truthfulness: Truthfulness(claims),
		Speed:        Speed(earliness),
	}

	if err := s.store.UpdateJournalistScores(ctx, id, res.Truthfulness, res.Speed); err != nil {
		return nil, fmt.Errorf("update scores for journalist %d: %w", id, err)
	}

	history := &model.ScoreHistory{
		JournalistID:      id,
		TruthfulnessScore: res.Truthfulness,
		SpeedScore:        res.Speed,
		TotalClaims:       st.TotalClaims,
		ValidatedClaims:   st.ValidatedClaims,
		TrueClaims:        st.TrueClaims,
		FalseClaims:       st.FalseClaims,
		OriginalScoops:    st.OriginalScoops,
		RecordedAt:        s.now().UTC(),
	}
	if err := s.store.InsertScoreHistory(ctx, history); err != nil {
		return nil, fmt.Errorf("record score history for journalist %d: %w", id, err)
	}

	s.logger.Debug("journalist scores updated",
		zap.Int64("journalist_id", id),
		zap.String("journalist", j.Name),
		zap.String("truthfulness", res.Truthfulness.String()),
		zap.String("speed", res.Speed.StringFixed(2)),
	)

	s.publish(ctx, events.Event{
		Type:         events.ScoresUpdated,
		JournalistID: id,
		Journalist:   j.Name,
		Truthfulness: &res.Truthfulness,
		Speed:        &res.Speed,
	})
	return res, nil
}

// publish never fails the caller; a broken broker only loses events
func (s *Service) publish(ctx context.Context, e events.Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", string(e.Type)), zap.Error(err))
	}
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// lock takes the locks for ids in ascending order and returns a func that
// releases them
func (k *keyedMutex) lock(ids ...int64) func() {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	k.mu.Lock()
	held := make([]*sync.Mutex, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		m, ok := k.locks[id]
		if !ok {
			m = &sync.Mutex{}
			k.locks[id] = m
		}
		held = append(held, m)
	}
	k.mu.Unlock()

	for _, m := range held {
		m.Lock()
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
