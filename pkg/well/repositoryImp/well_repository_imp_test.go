package repositoryImp

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wellconnect/entities"
	"wellconnect/pkg/well/repository"
)

func openTestRepo(t *testing.T) repository.WellRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "wells.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Well{}))
	return New(db)
}

func TestSaveThenGetByID(t *testing.T) {
	r := openTestRepo(t)

	w := entities.Well{
		ID: 7, Name: "Test Well", Owner: "A", Status: entities.StatusActive,
		Capacity: "1000", WaterLevel: "450",
		Extra: map[string]string{"firmware": "2.1"},
	}
	require.NoError(t, r.Save(&w))

	got, err := r.GetByID(7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, w.Equal(*got))
}

func TestSaveReplacesExisting(t *testing.T) {
	r := openTestRepo(t)

	require.NoError(t, r.Save(&entities.Well{ID: 1, Name: "old"}))
	require.NoError(t, r.Save(&entities.Well{ID: 1, Name: "new", WaterLevel: "12"}))

	all, err := r.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "new", all[0].Name)
	assert.Equal(t, "12", all[0].WaterLevel)
}

func TestSaveAssignsIDWhenZero(t *testing.T) {
	r := openTestRepo(t)

	w := entities.Well{Name: "fresh"}
	require.NoError(t, r.Save(&w))
	assert.NotZero(t, w.ID)
}

func TestDeleteThenGetByID(t *testing.T) {
	r := openTestRepo(t)

	require.NoError(t, r.Save(&entities.Well{ID: 4, Name: "gone soon"}))
	require.NoError(t, r.Delete(4))

	got, err := r.GetByID(4)
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting an absent id is not an error
	require.NoError(t, r.Delete(4))
}

func TestGetAllOrder(t *testing.T) {
	r := openTestRepo(t)

	for _, id := range []uint{5, 2, 9} {
		require.NoError(t, r.Save(&entities.Well{ID: id, Name: "w"}))
	}
	all, err := r.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint(2), all[0].ID)
	assert.Equal(t, uint(5), all[1].ID)
	assert.Equal(t, uint(9), all[2].ID)
}

func TestSwapIDs(t *testing.T) {
	r := openTestRepo(t)

	require.NoError(t, r.Save(&entities.Well{ID: 1, Name: "first"}))
	require.NoError(t, r.Save(&entities.Well{ID: 2, Name: "second"}))

	require.NoError(t, r.SwapIDs(1, 2))

	a, err := r.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "second", a.Name)

	b, err := r.GetByID(2)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "first", b.Name)

	// swap is its own inverse
	require.NoError(t, r.SwapIDs(1, 2))
	a, _ = r.GetByID(1)
	b, _ = r.GetByID(2)
	assert.Equal(t, "first", a.Name)
	assert.Equal(t, "second", b.Name)
}

func TestSwapIDsMissingIsNoop(t *testing.T) {
	r := openTestRepo(t)

	require.NoError(t, r.Save(&entities.Well{ID: 1, Name: "only"}))
	require.NoError(t, r.SwapIDs(1, 99))

	got, err := r.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "only", got.Name)
}
