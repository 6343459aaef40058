package outfit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

func TestSaveThenListIncludesOnce(t *testing.T) {
	svc, repo := newServiceUnderTest()

	saved, err := svc.Save(context.Background(), Outfit{Name: "Rainy commute", Description: "Raincoat", Location: "Seattle"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, saved, items[0])
	require.Equal(t, 1, repo.inserts)
}

func TestSaveAssignsUniqueIDsEvenForDuplicates(t *testing.T) {
	svc, _ := newServiceUnderTest()
	ctx := context.Background()

	first, err := svc.Save(ctx, Outfit{Name: "Layers", Location: "Boston"})
	require.NoError(t, err)
	second, err := svc.Save(ctx, Outfit{Name: "Layers", Location: "Boston"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, first.ID, items[0].ID)
}

func TestSaveRejectsEmptyName(t *testing.T) {
	svc, repo := newServiceUnderTest()
	_, err := svc.Save(context.Background(), Outfit{Name: "  "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, repo.inserts)
}

func TestRemove(t *testing.T) {
	svc, _ := newServiceUnderTest()
	ctx := context.Background()
	saved, err := svc.Save(ctx, Outfit{Name: "Sunny", Location: "LA"})
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, saved.ID))
	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
	require.False(t, svc.IsDuplicate(Outfit{Name: "Sunny", Location: "LA"}))
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	svc, _ := newServiceUnderTest()
	ctx := context.Background()
	saved, err := svc.Save(ctx, Outfit{Name: "Sunny", Location: "LA"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "does-not-exist"))
	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []Outfit{saved}, items)
}

func TestIsDuplicateUsesLastSnapshot(t *testing.T) {
	svc, _ := newServiceUnderTest()
	ctx := context.Background()
	_, err := svc.Save(ctx, Outfit{Name: "Cozy", Description: "Sweater", ImageName: "a.png", Location: "Denver"})
	require.NoError(t, err)

	candidate := Outfit{Name: "Cozy", Description: "Different", ImageName: "b.png", Location: "Denver"}
	require.False(t, svc.IsDuplicate(candidate), "snapshot not loaded yet")

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.True(t, svc.IsDuplicate(candidate))
	require.False(t, svc.IsDuplicate(Outfit{Name: "Cozy", Location: "Austin"}))
	require.False(t, svc.IsDuplicate(Outfit{Name: "cozy", Location: "Denver"}))
}

func TestListFailureKeepsSnapshot(t *testing.T) {
	svc, repo := newServiceUnderTest()
	ctx := context.Background()
	_, err := svc.Save(ctx, Outfit{Name: "Cozy", Location: "Denver"})
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)

	repo.listErr = errors.New("disk I/O error")
	_, err = svc.List(ctx)
	require.True(t, apperrors.IsCode(err, apperrors.CodePersistenceFailure))
	require.True(t, svc.IsDuplicate(Outfit{Name: "Cozy", Location: "Denver"}))
}

func TestSaveFailureIsPersistenceFailure(t *testing.T) {
	svc, repo := newServiceUnderTest()
	repo.insertErr = errors.New("database is locked")

	_, err := svc.Save(context.Background(), Outfit{Name: "Cozy"})
	require.True(t, apperrors.IsCode(err, apperrors.CodePersistenceFailure))
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newServiceUnderTest()
	_, err := svc.Get(context.Background(), "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func newServiceUnderTest() (*service, *stubRepo) {
	repo := &stubRepo{}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	tick := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return svc, repo
}

type stubRepo struct {
	items     []Outfit
	inserts   int
	insertErr error
	listErr   error
}

func (r *stubRepo) Insert(_ context.Context, o Outfit) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserts++
	r.items = append(r.items, o)
	return nil
}

func (r *stubRepo) List(_ context.Context) ([]Outfit, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]Outfit(nil), r.items...), nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	for i, o := range r.items {
		if o.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) Get(_ context.Context, id string) (Outfit, bool, error) {
	for _, o := range r.items {
		if o.ID == id {
			return o, true, nil
		}
	}
	return Outfit{}, false, nil
}

