package editor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wellconnect/entities"
	"wellconnect/pkg/api"
	"wellconnect/pkg/well/repositoryImp"
	"wellconnect/pkg/well/service"
	"wellconnect/pkg/well/serviceImp"
)

const placeholder = "Unknown owner"

func newFixture(t *testing.T) (service.WellService, *api.Mock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "wells.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Well{}))
	mock := api.NewMock()
	return serviceImp.NewWellService(repositoryImp.New(db), mock, zap.NewNop().Sugar()), mock
}

func newSession(t *testing.T) (*Session, service.WellService, *api.Mock) {
	svc, mock := newFixture(t)
	return NewSession(svc, zap.NewNop().Sugar(), placeholder), svc, mock
}

func TestLoadAbsentIDGivesBlankDraft(t *testing.T) {
	s, _, _ := newSession(t)

	require.NoError(t, s.Load(context.Background(), 7, "tok"))
	d := s.Draft()
	assert.Equal(t, uint(7), d.ID)
	assert.Empty(t, d.Name)
	assert.False(t, s.HasUnsavedChanges())
	assert.False(t, s.IsSavable())
}

func TestLoadPullsRemoteOnLocalMiss(t *testing.T) {
	s, svc, mock := newSession(t)
	ctx := context.Background()

	mock.Seed(entities.Well{ID: 3, Name: "Remote only"})
	require.NoError(t, s.Load(ctx, 3, "tok"))

	d := s.Draft()
	assert.Equal(t, "Remote only", d.Name)
	assert.False(t, d.LastRefreshTime.IsZero())

	// the load itself landed the record locally
	local, err := svc.GetLocal(3)
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Equal(t, "Remote only", local.Name)
}

func TestNewDraftSaveEndToEnd(t *testing.T) {
	s, svc, mock := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, 7, "tok"))
	s.Apply(NameEntered{Value: "Test Well"})
	assert.True(t, s.IsSavable())
	assert.True(t, s.HasUnsavedChanges())

	// a concurrently failing remote query must not disturb the save
	mock.FailWith(errors.New("network error"))
	_, ferr := svc.GetFilteredWells(ctx, "tok", 1, 20, api.WellFilter{})
	require.Error(t, ferr)

	require.NoError(t, s.Save(ctx, "tok"))
	assert.False(t, s.HasUnsavedChanges())
	assert.Equal(t, ActionSuccess, s.ActionState().Kind)

	got, err := svc.GetLocal(7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Well", got.Name)
}

func TestSaveDefaultsBlankOwner(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, 1, "tok"))
	s.Apply(NameEntered{Value: "Ownerless"})
	require.NoError(t, s.Save(ctx, ""))

	got, err := svc.GetLocal(1)
	require.NoError(t, err)
	assert.Equal(t, placeholder, got.Owner)
}

func TestDiscardRestoresExactSnapshot(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	seed := entities.Well{ID: 2, Name: "North", Owner: "A", WaterLevel: "100", Extra: map[string]string{"firmware": "2.1"}}
	require.NoError(t, svc.SaveWell(ctx, &seed))

	require.NoError(t, s.Load(ctx, 2, "tok"))
	s.Apply(WaterLevelEntered{Value: "450"})
	s.Apply(NameEntered{Value: "renamed"})
	s.Apply(ExtraSet{Key: "firmware", Value: "9.9"})
	require.True(t, s.HasUnsavedChanges())

	s.Discard()
	assert.False(t, s.HasUnsavedChanges())
	assert.True(t, seed.Equal(s.Draft()))
}

func TestFieldEventsDontPersist(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveWell(ctx, &entities.Well{ID: 5, Name: "quiet"}))
	require.NoError(t, s.Load(ctx, 5, "tok"))
	s.Apply(NameEntered{Value: "loud"})

	got, err := svc.GetLocal(5)
	require.NoError(t, err)
	assert.Equal(t, "quiet", got.Name)
}

func TestCloseDeletesAbandonedDraft(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	// a contentless record somehow persisted (user blanked it, then saved)
	require.NoError(t, svc.SaveWell(ctx, &entities.Well{ID: 9, Owner: placeholder}))
	require.NoError(t, s.Load(ctx, 9, "tok"))
	require.False(t, s.IsSavable())
	require.False(t, s.HasUnsavedChanges())

	action, err := s.CloseRequested(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, DiscardedDraft, action)

	got, gerr := svc.GetLocal(9)
	require.NoError(t, gerr)
	assert.Nil(t, got, "abandoned draft must be deleted from the store, not just dropped from memory")
}

func TestCloseAbandonedDraftKeepsServerRecord(t *testing.T) {
	s, _, mock := newSession(t)
	ctx := context.Background()

	// the record exists remotely but the load-time refresh fails, leaving
	// a blank draft carrying its id
	mock.Seed(entities.Well{ID: 7, Name: "Remote only"})
	mock.FailWith(errors.New("network error"))
	require.NoError(t, s.Load(ctx, 7, "tok"))
	require.False(t, s.IsSavable())
	mock.FailWith(nil)

	action, err := s.CloseRequested(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, DiscardedDraft, action)

	// draft cleanup is local only: nobody asked the server to delete
	remote, rerr := mock.GetWell(ctx, "tok", 7)
	require.NoError(t, rerr)
	assert.Equal(t, "Remote only", remote.Name)
	assert.Empty(t, mock.Deleted)
}

func TestCloseLeavesSilentlyWhenClean(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveWell(ctx, &entities.Well{ID: 3, Name: "keep me"}))
	require.NoError(t, s.Load(ctx, 3, "tok"))

	action, err := s.CloseRequested(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, LeaveSilently, action)

	got, _ := svc.GetLocal(3)
	assert.NotNil(t, got)
}

func TestClosePromptsOnUnsavedChanges(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveWell(ctx, &entities.Well{ID: 3, Name: "keep me"}))
	require.NoError(t, s.Load(ctx, 3, "tok"))
	s.Apply(NameEntered{Value: "edited"})

	action, err := s.CloseRequested(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, PromptSaveOrDiscard, action)

	// nothing was persisted by the prompt itself
	got, _ := svc.GetLocal(3)
	assert.Equal(t, "keep me", got.Name)

	// resolving with save keeps the edits
	require.NoError(t, s.SaveAndExit(ctx, "tok"))
	got, _ = svc.GetLocal(3)
	assert.Equal(t, "edited", got.Name)
}

func TestDiscardAndExitOnBlankNewDraft(t *testing.T) {
	s, svc, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, 11, "tok"))
	s.Apply(NameEntered{Value: "half-typed"})

	action, err := s.CloseRequested(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, PromptSaveOrDiscard, action)

	// discarding reverts to the blank draft, which then counts as abandoned
	action, err = s.DiscardAndExit(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, DiscardedDraft, action)

	got, _ := svc.GetLocal(11)
	assert.Nil(t, got)
}

func TestSaveWithoutLoad(t *testing.T) {
	s, _, _ := newSession(t)
	assert.ErrorIs(t, s.Save(context.Background(), "tok"), ErrNotLoaded)
}
