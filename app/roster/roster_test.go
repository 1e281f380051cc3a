package roster

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/crewbook/app/enums"
	"github.com/umputun/crewbook/app/persistence"
	"github.com/umputun/crewbook/app/worker"
)

// failingKV fails writes on demand
type failingKV struct {
	*persistence.MemoryStore
	failSet bool
	failGet bool
}

func (f *failingKV) Set(key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(key, value)
}

func (f *failingKV) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("io error")
	}
	return f.MemoryStore.Get(key)
}

func newWorker(kind enums.Kind, name string) worker.Worker {
	return worker.New(kind, worker.Fields{worker.FieldFirstName: name, worker.FieldAge: "30"})
}

func ids(ws []worker.Worker) []string {
	res := make([]string, 0, len(ws))
	for _, w := range ws {
		res = append(res, w.ID)
	}
	return res
}

func TestOpen(t *testing.T) {
	t.Run("no stored data gives empty roster", func(t *testing.T) {
		kv := persistence.NewMemoryStore()
		r, err := Open(kv, Params{})
		require.NoError(t, err)
		assert.Equal(t, 0, r.Len())
		assert.Empty(t, r.List())
		assert.Equal(t, 0, kv.Writes(), "open doesn't write")
	})

	t.Run("custom key", func(t *testing.T) {
		kv := persistence.NewMemoryStore()
		require.NoError(t, kv.Set("other", `[{"kind":"Driver","id":"d1"}]`))
		r, err := Open(kv, Params{Key: "other"})
		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())

		require.NoError(t, r.Add(newWorker(enums.KindPlumber, "Ivan")))
		raw, ok, err := kv.Get("other")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, raw, "Ivan")
		_, ok, err = kv.Get(DefaultKey)
		require.NoError(t, err)
		assert.False(t, ok, "default key untouched")
	})

	t.Run("corrupted data is moved aside", func(t *testing.T) {
		kv := persistence.NewMemoryStore()
		require.NoError(t, kv.Set(DefaultKey, "{not json"))
		r, err := Open(kv, Params{})
		require.NoError(t, err)
		assert.Equal(t, 0, r.Len())

		backup, ok, err := kv.Get(DefaultKey + ".corrupted")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "{not json", backup)
	})

	t.Run("corrupted data with strict load", func(t *testing.T) {
		kv := persistence.NewMemoryStore()
		require.NoError(t, kv.Set(DefaultKey, "{not json"))
		_, err := Open(kv, Params{StrictLoad: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("storage read failure", func(t *testing.T) {
		kv := &failingKV{MemoryStore: persistence.NewMemoryStore(), failGet: true}
		_, err := Open(kv, Params{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "io error")
	})
}

func TestRoster_AddReload(t *testing.T) {
	kv := persistence.NewMemoryStore()
	r, err := Open(kv, Params{})
	require.NoError(t, err)

	var added []worker.Worker
	for i := range 5 {
		kind := enums.KindPlumber
		if i%2 == 1 {
			kind = enums.KindDriver
		}
		w := newWorker(kind, fmt.Sprintf("w%d", i))
		require.NoError(t, r.Add(w))
		added = append(added, w)
	}
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, 5, kv.Writes(), "each add persists")

	reloaded, err := Open(kv, Params{})
	require.NoError(t, err)
	assert.Equal(t, ids(added), ids(reloaded.List()), "same size and order after reload")
	for i, w := range reloaded.List() {
		assert.Equal(t, added[i].Kind, w.Kind)
		assert.Equal(t, added[i].FirstName, w.FirstName)
	}
}

func TestRoster_AddDuplicate(t *testing.T) {
	kv := persistence.NewMemoryStore()
	r, err := Open(kv, Params{})
	require.NoError(t, err)

	w := newWorker(enums.KindPlumber, "Ivan")
	require.NoError(t, r.Add(w))
	err = r.Add(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, kv.Writes())
}

func TestRoster_Delete(t *testing.T) {
	kv := persistence.NewMemoryStore()
	r, err := Open(kv, Params{})
	require.NoError(t, err)

	ws := []worker.Worker{
		newWorker(enums.KindPlumber, "a"),
		newWorker(enums.KindDriver, "b"),
		newWorker(enums.KindPlumber, "c"),
		newWorker(enums.KindDriver, "d"),
	}
	for _, w := range ws {
		require.NoError(t, r.Add(w))
	}

	ok, err := r.Delete(ws[1].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{ws[0].ID, ws[2].ID, ws[3].ID}, ids(r.List()))
	_, found := r.Get(ws[1].ID)
	assert.False(t, found)

	reloaded, err := Open(kv, Params{})
	require.NoError(t, err)
	assert.Equal(t, ids(r.List()), ids(reloaded.List()))

	writes := kv.Writes()
	ok, err = r.Delete("no-such-id")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, kv.Writes(), "unknown id doesn't write")
}

func TestRoster_DeleteRepeatedID(t *testing.T) {
	kv := persistence.NewMemoryStore()
	require.NoError(t, kv.Set(DefaultKey, `[{"kind":"Plumber","id":"x"},{"kind":"Driver","id":"y"},{"kind":"Worker","id":"x"}]`))
	r, err := Open(kv, Params{})
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	ok, err := r.Delete("x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"y"}, ids(r.List()))
}

func TestRoster_Clear(t *testing.T) {
	kv := persistence.NewMemoryStore()
	r, err := Open(kv, Params{})
	require.NoError(t, err)
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, r.Add(newWorker(enums.KindDriver, n)))
	}

	require.NoError(t, r.Clear())
	assert.Equal(t, 0, r.Len())
	raw, ok, err := kv.Get(DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestRoster_PersistFailureRollsBack(t *testing.T) {
	kv := &failingKV{MemoryStore: persistence.NewMemoryStore()}
	r, err := Open(kv, Params{})
	require.NoError(t, err)
	w := newWorker(enums.KindPlumber, "Ivan")
	require.NoError(t, r.Add(w))

	kv.failSet = true
	err = r.Add(newWorker(enums.KindDriver, "Anna"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, r.Len())

	ok, err := r.Delete(w.ID)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	require.Error(t, r.Clear())
	assert.Equal(t, 1, r.Len())

	_, err = r.Import([]worker.Worker{newWorker(enums.KindDriver, "x")})
	require.Error(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_Import(t *testing.T) {
	kv := persistence.NewMemoryStore()
	r, err := Open(kv, Params{})
	require.NoError(t, err)
	existing := newWorker(enums.KindPlumber, "a")
	require.NoError(t, r.Add(existing))

	n, err := r.Import([]worker.Worker{existing, newWorker(enums.KindDriver, "b"), newWorker(enums.KindDriver, "c")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, kv.Writes(), "import persists once")

	n, err = r.Import([]worker.Worker{existing})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 2, kv.Writes(), "nothing to import, nothing written")
}

func TestRoster_PlumberScenario(t *testing.T) {
	kv := persistence.NewMemoryStore()
	r, err := Open(kv, Params{})
	require.NoError(t, err)

	w := worker.New(enums.KindPlumber, worker.Fields{
		worker.FieldFirstName:  "Ivan",
		worker.FieldAge:        "34",
		worker.FieldNightShift: true,
	})
	require.NoError(t, r.Add(w))

	reloaded, err := Open(kv, Params{})
	require.NoError(t, err)
	got, ok := reloaded.Get(w.ID)
	require.True(t, ok)
	assert.Equal(t, enums.KindPlumber, got.Kind)
	assert.InDelta(t, 34.0, got.Age, 0)
	require.NotNil(t, got.Plumber)
	assert.True(t, got.Plumber.NightShift)
	assert.Nil(t, got.Driver)
}

func TestRoster_SQLite(t *testing.T) {
	store, err := persistence.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	r, err := Open(store, Params{})
	require.NoError(t, err)
	d := worker.New(enums.KindDriver, worker.Fields{worker.FieldFirstName: "Anna", worker.FieldAge: "bad",
		worker.FieldExperienceYears: "12", worker.FieldVehicleType: "van"})
	require.NoError(t, r.Add(d))

	reloaded, err := Open(store, Params{})
	require.NoError(t, err)
	got, ok := reloaded.Get(d.ID)
	require.True(t, ok)
	assert.True(t, math.IsNaN(got.Age))
	require.NotNil(t, got.Driver)
	assert.Equal(t, worker.Driver{ExperienceYears: 12, VehicleType: "van"}, *got.Driver)
}
