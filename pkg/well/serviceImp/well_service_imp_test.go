package serviceImp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wellconnect/entities"
	"wellconnect/pkg/api"
	"wellconnect/pkg/well/repositoryImp"
	"wellconnect/pkg/well/service"
)

func newTestService(t *testing.T) (service.WellService, *api.Mock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "wells.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Well{}))
	mock := api.NewMock()
	return NewWellService(repositoryImp.New(db), mock, zap.NewNop().Sugar()), mock
}

func TestSaveWellIsLocalOnly(t *testing.T) {
	svc, mock := newTestService(t)
	mock.FailWith(errors.New("network error: no route"))

	w := entities.Well{ID: 7, Name: "Test Well"}
	require.NoError(t, svc.SaveWell(context.Background(), &w))

	got, err := svc.GetLocal(7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Well", got.Name)
}

func TestSaveWellToServer(t *testing.T) {
	svc, mock := newTestService(t)

	w := entities.Well{ID: 1, Name: "North"}
	assert.True(t, svc.SaveWellToServer(context.Background(), &w, "tok"))
	assert.Equal(t, []uint{1}, mock.Edited)

	mock.FailWith(&api.ServerError{Status: 500, Message: "boom"})
	assert.False(t, svc.SaveWellToServer(context.Background(), &w, "tok"))
}

func TestPushToServerReportsOnChannel(t *testing.T) {
	svc, mock := newTestService(t)

	w := entities.Well{ID: 2, Name: "South"}
	select {
	case ok := <-svc.PushToServer(&w, "tok"):
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("push never completed")
	}

	mock.FailWith(errors.New("down"))
	select {
	case ok := <-svc.PushToServer(&w, "tok"):
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("push never completed")
	}
}

func TestDeleteWellSurvivesRemoteFailure(t *testing.T) {
	svc, mock := newTestService(t)

	require.NoError(t, svc.SaveWell(context.Background(), &entities.Well{ID: 3, Name: "x"}))
	mock.FailWith(errors.New("offline"))

	assert.True(t, svc.DeleteWell(context.Background(), 3, "tok"))
	got, err := svc.GetLocal(3)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFilteredWellsFailureLeavesLocalIntact(t *testing.T) {
	svc, mock := newTestService(t)

	w := entities.Well{ID: 7, Name: "Test Well"}
	require.NoError(t, svc.SaveWell(context.Background(), &w))

	mock.FailWith(errors.New("network error: timeout"))
	_, err := svc.GetFilteredWells(context.Background(), "tok", 1, 20, api.WellFilter{})
	require.Error(t, err)

	got, gerr := svc.GetLocal(7)
	require.NoError(t, gerr)
	require.NotNil(t, got)
	assert.True(t, w.Equal(*got))
}

func TestFilteredWellsByLevelRange(t *testing.T) {
	svc, mock := newTestService(t)

	mock.Seed(entities.Well{ID: 1, Name: "Low", WaterLevel: "80"})
	mock.Seed(entities.Well{ID: 2, Name: "Mid", WaterLevel: " 450 "})
	mock.Seed(entities.Well{ID: 3, Name: "High", WaterLevel: "900"})
	mock.Seed(entities.Well{ID: 4, Name: "Broken gauge", WaterLevel: "n/a"})

	min, max := 100.0, 500.0
	p, err := svc.GetFilteredWells(context.Background(), "tok", 1, 20, api.WellFilter{
		MinLevel: &min, MaxLevel: &max,
	})
	require.NoError(t, err)
	require.Len(t, p.Wells, 1)
	assert.Equal(t, "Mid", p.Wells[0].Name)

	// open-ended lower bound still excludes unparsable levels
	p, err = svc.GetFilteredWells(context.Background(), "tok", 1, 20, api.WellFilter{MaxLevel: &max})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Total)
}

func TestRefreshFromServerStampsTime(t *testing.T) {
	svc, mock := newTestService(t)

	mock.Seed(entities.Well{ID: 3, Name: "Remote only", WaterLevel: "100"})

	before := time.Now()
	got, err := svc.RefreshFromServer(context.Background(), 3, "tok")
	require.NoError(t, err)
	assert.False(t, got.LastRefreshTime.Before(before))

	// now local
	local, err := svc.GetLocal(3)
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Equal(t, "Remote only", local.Name)
	stamp := local.LastRefreshTime

	// editing a measurement must not move the stamp until the next refresh
	local.WaterLevel = "450"
	require.NoError(t, svc.SaveWell(context.Background(), local))
	again, err := svc.GetLocal(3)
	require.NoError(t, err)
	assert.Equal(t, "450", again.WaterLevel)
	assert.True(t, stamp.Equal(again.LastRefreshTime))
}

func TestIsEspIDUnique(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SaveWell(context.Background(), &entities.Well{ID: 1, Name: "a", EspID: "ESP-42"}))

	assert.False(t, svc.IsEspIDUnique(context.Background(), "esp-42"))
	assert.True(t, svc.IsEspIDUnique(context.Background(), "esp-43"))
	assert.True(t, svc.IsEspIDUnique(context.Background(), ""))
}
