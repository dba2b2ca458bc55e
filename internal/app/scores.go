package app

import (
	"context"
	"log"
	"sync"
	"time"

	"quizdeck-service/internal/domain"
)

// LeaderboardLimit is how many rows a leaderboard exposes.
const LeaderboardLimit = 10

// ScoreRepository is the canonical store for score rows. Both the incremental
// answer flow and the leaderboard CRUD endpoints go through it, so validation
// cannot diverge between the two call shapes.
type ScoreRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.UserSubjectScore, error)
	Get(ctx context.Context, userID, subjectID int64) (domain.ScoreRow, error)
	Create(ctx context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error)
	// Set overwrites both counters with absolute values.
	Set(ctx context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error)
	// AddDelta applies one answered exercise atomically:
	// score += delta, exercises += 1, in a single statement.
	AddDelta(ctx context.Context, userID, subjectID int64, delta int) (domain.ScoreRow, error)
	// Reset zeroes the running score, leaving the exercise count intact.
	Reset(ctx context.Context, userID, subjectID int64) (domain.ScoreRow, error)
	Delete(ctx context.Context, userID, subjectID int64) error
	TopBySubject(ctx context.Context, subjectID int64, limit int) ([]domain.LeaderboardEntry, error)
	CountUsersBySubject(ctx context.Context, subjectName string) ([]domain.SubjectUserCount, error)
}

// LeaderboardSource serves ranked top-N reads. The Postgres repository
// satisfies it directly; the Redis cache wraps it.
type LeaderboardSource interface {
	TopBySubject(ctx context.Context, subjectID int64, limit int) ([]domain.LeaderboardEntry, error)
}

// BoardInvalidator is implemented by caching leaderboard sources that need a
// nudge after score writes.
type BoardInvalidator interface {
	InvalidateBoard(ctx context.Context, subjectID int64) error
}

// ScoreService contains the score and leaderboard use cases.
type ScoreService struct {
	scores   ScoreRepository
	subjects SubjectRepository
	boards   LeaderboardSource
	hub      *boardHub
	now      func() time.Time
}

// NewScoreService wires the score use cases. boards may be nil, in which case
// leaderboards read straight from the score repository.
func NewScoreService(scores ScoreRepository, subjects SubjectRepository, boards LeaderboardSource) *ScoreService {
	if boards == nil {
		boards = scores
	}
	return &ScoreService{
		scores:   scores,
		subjects: subjects,
		boards:   boards,
		hub:      newBoardHub(),
		now:      time.Now,
	}
}

// ScoresForUser lists every subject the user has started, with subject names
// resolved by the store.
func (s *ScoreService) ScoresForUser(ctx context.Context, userID int64) ([]domain.UserSubjectScore, error) {
	return s.scores.ListByUser(ctx, userID)
}

// StartSubject creates the zeroed score row a user needs before answering
// exercises in a subject.
func (s *ScoreService) StartSubject(ctx context.Context, userID int64, subjectName string) (domain.ScoreRow, error) {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	row, err := s.scores.Create(ctx, userID, subject.ID, 0, 0)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	s.afterWrite(ctx, subject.ID)
	return row, nil
}

// RecordAnswer credits one answered exercise: score += delta, exercises += 1.
func (s *ScoreService) RecordAnswer(ctx context.Context, userID int64, subjectName string, delta int) (domain.ScoreRow, error) {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	row, err := s.scores.AddDelta(ctx, userID, subject.ID, delta)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	s.afterWrite(ctx, subject.ID)
	return row, nil
}

// RestartSubject zeroes the running score for a subject ("give up" semantics);
// the exercise count is preserved.
func (s *ScoreService) RestartSubject(ctx context.Context, userID int64, subjectName string) (domain.ScoreRow, error) {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	row, err := s.scores.Reset(ctx, userID, subject.ID)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	s.afterWrite(ctx, subject.ID)
	return row, nil
}

// DropSubject removes the user's score row for a subject.
func (s *ScoreService) DropSubject(ctx context.Context, userID int64, subjectName string) error {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		return err
	}
	if err := s.scores.Delete(ctx, userID, subject.ID); err != nil {
		return err
	}
	s.afterWrite(ctx, subject.ID)
	return nil
}

// Leaderboard returns the ranked top rows for a subject, ordered by score
// descending with ties broken by ascending user id.
func (s *ScoreService) Leaderboard(ctx context.Context, subjectName string) (domain.Leaderboard, error) {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	entries, err := s.boards.TopBySubject(ctx, subject.ID, LeaderboardLimit)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{SubjectName: subject.Name, Entries: entries, UpdatedAt: s.now()}, nil
}

// CreateEntry is the leaderboard CRUD adapter over the canonical score row.
func (s *ScoreService) CreateEntry(ctx context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error) {
	if score < 0 || exercises < 0 {
		return domain.ScoreRow{}, domain.ErrInvalidInput
	}
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return domain.ScoreRow{}, err
	}
	row, err := s.scores.Create(ctx, userID, subjectID, score, exercises)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	s.afterWrite(ctx, subjectID)
	return row, nil
}

// UpdateEntry overwrites a leaderboard row with absolute values.
func (s *ScoreService) UpdateEntry(ctx context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error) {
	if score < 0 || exercises < 0 {
		return domain.ScoreRow{}, domain.ErrInvalidInput
	}
	row, err := s.scores.Set(ctx, userID, subjectID, score, exercises)
	if err != nil {
		return domain.ScoreRow{}, err
	}
	s.afterWrite(ctx, subjectID)
	return row, nil
}

// DeleteEntry removes a leaderboard row by its (user, subject) pair.
func (s *ScoreService) DeleteEntry(ctx context.Context, userID, subjectID int64) error {
	if err := s.scores.Delete(ctx, userID, subjectID); err != nil {
		return err
	}
	s.afterWrite(ctx, subjectID)
	return nil
}

// UserCounts reports per-subject participant totals for the admin surface.
func (s *ScoreService) UserCounts(ctx context.Context, subjectName string) ([]domain.SubjectUserCount, error) {
	return s.scores.CountUsersBySubject(ctx, subjectName)
}

// Subscribe returns a channel that receives a leaderboard snapshot immediately
// and after every score write for the subject. The caller must invoke the
// returned cancel function to avoid leaks.
func (s *ScoreService) Subscribe(ctx context.Context, subjectName string) (<-chan domain.Leaderboard, func(), error) {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		return nil, nil, err
	}
	initial, err := s.Leaderboard(ctx, subjectName)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.subscribe(subject.ID)
	ch <- initial
	return ch, cancel, nil
}

// afterWrite drops any cached snapshot and pushes a fresh one to live
// subscribers. Failures here are logged, never surfaced: the write that
// triggered the refresh already succeeded.
func (s *ScoreService) afterWrite(ctx context.Context, subjectID int64) {
	if inv, ok := s.boards.(BoardInvalidator); ok {
		if err := inv.InvalidateBoard(ctx, subjectID); err != nil {
			log.Printf("leaderboard invalidate failed for subject %d: %v", subjectID, err)
		}
	}
	if !s.hub.hasSubscribers(subjectID) {
		return
	}
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		log.Printf("leaderboard refresh: resolve subject %d: %v", subjectID, err)
		return
	}
	entries, err := s.boards.TopBySubject(ctx, subjectID, LeaderboardLimit)
	if err != nil {
		log.Printf("leaderboard refresh failed for subject %d: %v", subjectID, err)
		return
	}
	s.hub.broadcast(subjectID, domain.Leaderboard{
		SubjectName: subject.Name,
		Entries:     entries,
		UpdatedAt:   s.now(),
	})
}

// boardHub fans leaderboard snapshots out to websocket subscribers, keyed by
// subject id.
type boardHub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan domain.Leaderboard]struct{}
}

func newBoardHub() *boardHub {
	return &boardHub{subs: make(map[int64]map[chan domain.Leaderboard]struct{})}
}

func (h *boardHub) subscribe(subjectID int64) (chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	h.mu.Lock()
	if h.subs[subjectID] == nil {
		h.subs[subjectID] = make(map[chan domain.Leaderboard]struct{})
	}
	h.subs[subjectID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[subjectID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, subjectID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *boardHub) hasSubscribers(subjectID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[subjectID]) > 0
}

func (h *boardHub) broadcast(subjectID int64, lb domain.Leaderboard) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[subjectID] {
		select {
		case ch <- lb:
		default:
			// Drop the stale snapshot so a slow client never blocks the writer.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
