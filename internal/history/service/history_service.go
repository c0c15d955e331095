package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/history/repository"
)

// UndoWindow is how long a deleted record can still be restored.
const UndoWindow = 5 * time.Second

var ErrUndoExpired = errors.New("undo window has expired")

type pendingUndo struct {
	uid    string
	record repository.Record
	timer  *time.Timer
}

// HistoryService exposes the user's past generations and a soft delete
// with a bounded undo window. Undo re-creates the record verbatim,
// including its original timestamp.
type HistoryService struct {
	repo *repository.HistoryRepository
	log  zerolog.Logger

	mu      sync.Mutex
	pending map[string]*pendingUndo
	window  time.Duration
}

func NewHistoryService(repo *repository.HistoryRepository, log zerolog.Logger) *HistoryService {
	return &HistoryService{
		repo:    repo,
		log:     log.With().Str("component", "history_service").Logger(),
		pending: make(map[string]*pendingUndo),
		window:  UndoWindow,
	}
}

// List returns the user's records, newest first.
func (s *HistoryService) List(ctx context.Context, uid string) ([]repository.Record, error) {
	return s.repo.List(ctx, uid)
}

// Delete soft-deletes a record and returns an undo token valid for the
// undo window. The record is removed from the remote store immediately;
// the retained copy lives only in this process.
func (s *HistoryService) Delete(ctx context.Context, uid, id string) (string, error) {
	record, exists, err := s.repo.Get(ctx, uid, id)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.New("history record not found")
	}

	if err := s.repo.Delete(ctx, uid, id); err != nil {
		return "", err
	}

	token := uuid.New().String()
	undo := &pendingUndo{uid: uid, record: *record}
	undo.timer = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		delete(s.pending, token)
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.pending[token] = undo
	s.mu.Unlock()

	return token, nil
}

// Undo restores a soft-deleted record if its window is still open.
func (s *HistoryService) Undo(ctx context.Context, uid, token string) (*repository.Record, error) {
	s.mu.Lock()
	undo, ok := s.pending[token]
	if ok && undo.uid == uid {
		delete(s.pending, token)
	} else {
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrUndoExpired
	}
	undo.timer.Stop()

	if err := s.repo.Restore(ctx, uid, undo.record); err != nil {
		s.log.Error().Err(err).Str("uid", uid).Msg("history restore failed")
		return nil, err
	}
	return &undo.record, nil
}
