package service

import (
	"context"
	"errors"
	"time"

	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/dto"
	"bio-kids-puzzles/internal/logger"
	"bio-kids-puzzles/internal/util"

	"github.com/moby/locker"
	"go.uber.org/zap"
)

// QuizSessionService runs quiz attempts. Commands on one session id never
// interleave.
type QuizSessionService interface {
	Start(ctx context.Context, levelID int) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, option int) (*dto.SubmitAnswerResponse, error)
	Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	End(ctx context.Context, sessionID string) error
}

type quizSessionService struct {
	levels LevelService
	repo   domain.LevelRepository
	store  SessionStore
	locks  *locker.Locker
	newID  func() string
	now    func() time.Time
}

// NewQuizSessionService creates a new instance of quizSessionService
func NewQuizSessionService(levels LevelService, repo domain.LevelRepository, store SessionStore) QuizSessionService {
	return &quizSessionService{
		levels: levels,
		repo:   repo,
		store:  store,
		locks:  locker.New(),
		newID:  util.NewULID,
		now:    time.Now,
	}
}

// lock serializes commands on one session id and returns the release func
func (s *quizSessionService) lock(sessionID string) func() {
	s.locks.Lock(sessionID)
	return func() {
		if err := s.locks.Unlock(sessionID); err != nil {
			logger.Get().Error("Session lock released twice", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
}

func (s *quizSessionService) Start(ctx context.Context, levelID int) (*dto.SessionResponse, error) {
	level, err := s.levels.OpenLevel(ctx, levelID)
	if err != nil {
		return nil, err
	}

	session := domain.NewQuizSession(level)
	now := s.now()
	record := &domain.SessionRecord{
		ID:        s.newID(),
		Snapshot:  session.Snapshot(),
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz session started",
		zap.String("session_id", record.ID),
		zap.Int("level_id", level.ID),
		zap.Int("questions", level.QuestionCount()),
	)
	return toSessionResponse(record.ID, session), nil
}

func (s *quizSessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	_, session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(sessionID, session), nil
}

func (s *quizSessionService) SubmitAnswer(ctx context.Context, sessionID string, option int) (*dto.SubmitAnswerResponse, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	record, session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fb, err := session.SubmitAnswer(option)
	if err != nil {
		return nil, err
	}
	if fb.Duplicate {
		logger.Get().Debug("Ignored repeated answer",
			zap.String("session_id", sessionID),
			zap.Int("question_index", fb.QuestionIndex),
		)
	} else if err := s.save(ctx, record, session); err != nil {
		return nil, err
	}

	return &dto.SubmitAnswerResponse{
		Feedback: toFeedbackResponse(fb),
		Session:  *toSessionResponse(sessionID, session),
	}, nil
}

func (s *quizSessionService) Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	record, session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	wasCompleted := session.Completed()
	if err := session.Advance(); err != nil {
		return nil, err
	}
	if !wasCompleted {
		if err := s.save(ctx, record, session); err != nil {
			return nil, err
		}
		if session.Completed() {
			summary := session.Summary()
			logger.Get().Info("Quiz session completed",
				zap.String("session_id", sessionID),
				zap.Int("level_id", session.Level().ID),
				zap.Int("correct", summary.CorrectCount),
				zap.Int("total", summary.TotalQuestions),
				zap.Int("stars", summary.Stars),
			)
		}
	}
	return toSessionResponse(sessionID, session), nil
}

func (s *quizSessionService) Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	record, session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Restart()
	record.StartedAt = s.now()
	if err := s.save(ctx, record, session); err != nil {
		return nil, err
	}
	logger.Get().Info("Quiz session restarted", zap.String("session_id", sessionID))
	return toSessionResponse(sessionID, session), nil
}

func (s *quizSessionService) End(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if _, err := s.store.Load(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.Get().Info("Quiz session ended", zap.String("session_id", sessionID))
	return nil
}

// load fetches the record and rebuilds the session against the current catalog.
// A record that no longer fits its level is discarded and reported as not found.
func (s *quizSessionService) load(ctx context.Context, sessionID string) (*domain.SessionRecord, *domain.QuizSession, error) {
	record, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	level, err := s.repo.FindLevel(ctx, record.Snapshot.LevelID)
	if err != nil && !errors.Is(err, domain.ErrLevelNotFound) {
		return nil, nil, wrapRepoError("failed to load session level", err)
	}

	var session *domain.QuizSession
	if err == nil {
		session, err = domain.RestoreSession(level, record.Snapshot)
	}
	if err != nil {
		logger.Get().Warn("Discarding unusable quiz session",
			zap.String("session_id", sessionID),
			zap.Int("level_id", record.Snapshot.LevelID),
			zap.Error(err),
		)
		if delErr := s.store.Delete(ctx, sessionID); delErr != nil {
			logger.Get().Error("Failed to delete unusable quiz session", zap.String("session_id", sessionID), zap.Error(delErr))
		}
		return nil, nil, domain.NewSessionNotFoundError(sessionID)
	}
	return record, session, nil
}

func (s *quizSessionService) save(ctx context.Context, record *domain.SessionRecord, session *domain.QuizSession) error {
	record.Snapshot = session.Snapshot()
	record.UpdatedAt = s.now()
	return s.store.Save(ctx, record)
}
