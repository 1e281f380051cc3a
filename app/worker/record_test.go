package worker

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/umputun/crewbook/app/enums"
)

func TestSerialize(t *testing.T) {
	t.Run("plumber keeps only plumber fields", func(t *testing.T) {
		w := New(enums.KindPlumber, Fields{FieldID: "p1", FieldFirstName: "Ivan", FieldAge: "34",
			FieldRank: "5", FieldSpecialty: "pipes", FieldNightShift: true})

		data, err := json.Marshal(Serialize(w))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Plumber", got["kind"])
		assert.Equal(t, "p1", got["id"])
		assert.InDelta(t, 34.0, got["age"], 0)
		assert.Equal(t, "5", got["rank"])
		assert.Equal(t, true, got["nightShift"])
		for _, k := range []string{FieldLicenseCategory, FieldExperienceYears, FieldVehicleType, "type"} {
			assert.NotContains(t, got, k)
		}
	})

	t.Run("driver keeps only driver fields", func(t *testing.T) {
		w := New(enums.KindDriver, Fields{FieldID: "d1", FieldLicenseCategory: "C", FieldExperienceYears: "7",
			FieldVehicleType: "truck"})

		data, err := json.Marshal(Serialize(w))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Driver", got["kind"])
		assert.InDelta(t, 7.0, got["experienceYears"], 0)
		for _, k := range []string{FieldRank, FieldSpecialty, FieldNightShift} {
			assert.NotContains(t, got, k)
		}
	})

	t.Run("base worker has no specialization fields", func(t *testing.T) {
		data, err := json.Marshal(Serialize(New(enums.KindWorker, Fields{FieldID: "w1", FieldAge: 20})))
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"Worker","id":"w1","firstName":"","lastName":"","age":20,"hasKids":false,"hireDate":""}`,
			string(data))
	})

	t.Run("nan is written as null", func(t *testing.T) {
		data, err := json.Marshal(Serialize(New(enums.KindDriver, Fields{FieldID: "d2", FieldAge: "n/a",
			FieldExperienceYears: "?"})))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"age":null`)
		assert.Contains(t, string(data), `"experienceYears":null`)
	})

	t.Run("kind without matching part", func(t *testing.T) {
		rec := Serialize(Worker{ID: "x", Kind: enums.KindPlumber})
		assert.Equal(t, "Plumber", rec.Kind)
		assert.Nil(t, rec.Rank)
	})
}

func TestRevive(t *testing.T) {
	tests := []struct {
		name     string
		fields   Fields
		wantKind enums.Kind
	}{
		{"plumber", Fields{"kind": "Plumber", "id": "1"}, enums.KindPlumber},
		{"driver", Fields{"kind": "Driver", "id": "2"}, enums.KindDriver},
		{"worker", Fields{"kind": "Worker", "id": "3"}, enums.KindWorker},
		{"legacy type key", Fields{"type": "Driver", "id": "4"}, enums.KindDriver},
		{"unknown kind", Fields{"kind": "Pilot", "id": "5"}, enums.KindWorker},
		{"missing kind", Fields{"id": "6"}, enums.KindWorker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Revive(tt.fields)
			assert.Equal(t, tt.wantKind, w.Kind)
			assert.Equal(t, tt.fields["id"], w.ID, "id is preserved")
			assert.Equal(t, tt.wantKind == enums.KindPlumber, w.Plumber != nil)
			assert.Equal(t, tt.wantKind == enums.KindDriver, w.Driver != nil)
		})
	}
}

func TestSerializeReviveRoundTrip(t *testing.T) {
	workers := []Worker{
		New(enums.KindPlumber, Fields{FieldFirstName: "Ivan", FieldLastName: "Petrov", FieldAge: "34",
			FieldHasKids: "on", FieldHireDate: "2020-01-15", FieldRank: "5", FieldSpecialty: "pipes",
			FieldNightShift: "on"}),
		New(enums.KindDriver, Fields{FieldFirstName: "Anna", FieldAge: "41.5", FieldLicenseCategory: "B",
			FieldExperienceYears: "12", FieldVehicleType: "van"}),
		New(enums.KindDriver, Fields{FieldAge: "unknown", FieldExperienceYears: "x"}),
		New(enums.KindWorker, Fields{FieldFirstName: "Plain"}),
	}

	for _, w := range workers {
		t.Run(w.Kind.String(), func(t *testing.T) {
			first := Serialize(w)
			data, err := json.Marshal(first)
			require.NoError(t, err)

			var f Fields
			require.NoError(t, json.Unmarshal(data, &f))
			second := Serialize(Revive(f))

			want, err := json.Marshal(first)
			require.NoError(t, err)
			got, err := json.Marshal(second)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(got))
		})
	}
}

func TestNumber_JSON(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte("null"), &n))
	assert.True(t, math.IsNaN(float64(n)))

	require.NoError(t, json.Unmarshal([]byte("12.5"), &n))
	assert.InDelta(t, 12.5, float64(n), 0)

	require.NoError(t, json.Unmarshal([]byte(`"7"`), &n))
	assert.InDelta(t, 7.0, float64(n), 0)

	data, err := json.Marshal(Number(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRecord_YAML(t *testing.T) {
	rec := Serialize(New(enums.KindPlumber, Fields{FieldID: "p1", FieldFirstName: "Ivan", FieldAge: "nope",
		FieldRank: "3", FieldNightShift: true}))

	data, err := yaml.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: Plumber")
	assert.Contains(t, string(data), "age: null")
	assert.Contains(t, string(data), "nightShift: true")
	assert.NotContains(t, string(data), "vehicleType")

	var f Fields
	require.NoError(t, yaml.Unmarshal(data, &f))
	w := Revive(f)
	assert.Equal(t, "p1", w.ID)
	assert.True(t, math.IsNaN(w.Age))
	require.NotNil(t, w.Plumber)
	assert.True(t, w.Plumber.NightShift)
}
