package outfit

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
	"github.com/yanqian/outfit-advisor/pkg/util"
)

// Service manages saved outfits and the snapshot used for duplicate checks.
type Service interface {
	Save(ctx context.Context, o Outfit) (Outfit, error)
	List(ctx context.Context) ([]Outfit, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Outfit, error)
	// IsDuplicate only consults the result of the last successful List.
	IsDuplicate(o Outfit) bool
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func(time.Time) string

	mu       sync.RWMutex
	snapshot []Outfit
}

// NewService wires up the outfit domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	var entropyMu sync.Mutex
	return &service{
		repo:   repo,
		logger: logger.With("component", "outfit.service"),
		now:    util.NowUTC,
		newID: func(ts time.Time) string {
			entropyMu.Lock()
			defer entropyMu.Unlock()
			return ulid.MustNew(ulid.Timestamp(ts), entropy).String()
		},
	}
}

func (s *service) Save(ctx context.Context, o Outfit) (Outfit, error) {
	o.Name = strings.TrimSpace(o.Name)
	o.Location = strings.TrimSpace(o.Location)
	if o.Name == "" {
		return Outfit{}, apperrors.Wrap(apperrors.CodeInvalidInput, "outfit name cannot be empty", nil)
	}
	o.CreatedAt = s.now()
	o.ID = s.newID(o.CreatedAt)
	if err := s.repo.Insert(ctx, o); err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to save outfit", err)
	}
	s.logger.Info("outfit saved", "id", o.ID, "name", o.Name, "location", o.Location)
	return o, nil
}

func (s *service) List(ctx context.Context) ([]Outfit, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to load outfits", err)
	}
	s.mu.Lock()
	s.snapshot = append([]Outfit(nil), items...)
	s.mu.Unlock()
	return items, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to delete outfit", err)
	}
	s.mu.Lock()
	kept := s.snapshot[:0:0]
	for _, o := range s.snapshot {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.snapshot = kept
	s.mu.Unlock()
	s.logger.Info("outfit removed", "id", id)
	return nil
}

func (s *service) Get(ctx context.Context, id string) (Outfit, error) {
	o, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to load outfit", err)
	}
	if !ok {
		return Outfit{}, apperrors.Wrap(apperrors.CodeNotFound, "outfit not found", nil)
	}
	return o, nil
}

func (s *service) IsDuplicate(o Outfit) bool {
	name := strings.TrimSpace(o.Name)
	location := strings.TrimSpace(o.Location)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.snapshot {
		if existing.Name == name && existing.Location == location {
			return true
		}
	}
	return false
}
