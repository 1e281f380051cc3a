package worker

import (
	"encoding/json"
	"math"

	"github.com/umputun/crewbook/app/enums"
)

// Record is the flat projection of a Worker used for storage, export and the JSON API.
// Specialization fields of other kinds are omitted, not nulled.
type Record struct {
	Kind      string `json:"kind" yaml:"kind" jsonschema:"enum=Worker,enum=Plumber,enum=Driver"`
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Age       Number `json:"age" yaml:"age"`
	HasKids   bool   `json:"hasKids" yaml:"hasKids"`
	HireDate  string `json:"hireDate" yaml:"hireDate"`

	Rank       *string `json:"rank,omitempty" yaml:"rank,omitempty"`
	Specialty  *string `json:"specialty,omitempty" yaml:"specialty,omitempty"`
	NightShift *bool   `json:"nightShift,omitempty" yaml:"nightShift,omitempty"`

	LicenseCategory *string `json:"licenseCategory,omitempty" yaml:"licenseCategory,omitempty"`
	ExperienceYears *Number `json:"experienceYears,omitempty" yaml:"experienceYears,omitempty"`
	VehicleType     *string `json:"vehicleType,omitempty" yaml:"vehicleType,omitempty"`
}

// Number is a float64 which encodes NaN as null, JSON has no other way to carry it
type Number float64

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler, null gives NaN
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(AsNumber(v))
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (n Number) MarshalYAML() (any, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil
	}
	return f, nil
}

// Serialize projects a worker into its flat record
func Serialize(w Worker) Record {
	rec := Record{
		Kind:      normalizeKind(w.Kind).String(),
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Age:       Number(w.Age),
		HasKids:   w.HasKids,
		HireDate:  w.HireDate,
	}

	switch {
	case w.Kind == enums.KindPlumber && w.Plumber != nil:
		p := *w.Plumber
		rec.Rank, rec.Specialty, rec.NightShift = &p.Rank, &p.Specialty, &p.NightShift
	case w.Kind == enums.KindDriver && w.Driver != nil:
		d := *w.Driver
		years := Number(d.ExperienceYears)
		rec.LicenseCategory, rec.ExperienceYears, rec.VehicleType = &d.LicenseCategory, &years, &d.VehicleType
	}
	return rec
}

// Revive rebuilds a typed worker from plain stored data. The variant is picked by the "kind"
// field, "type" is accepted as well for records exported from the browser-only version.
// Missing or unknown kinds fall back to a plain Worker.
func Revive(f Fields) Worker {
	name := AsText(f[FieldKind])
	if name == "" {
		name = AsText(f["type"])
	}
	k, err := enums.ParseKind(name)
	if err != nil {
		k = enums.KindWorker
	}
	return New(k, f)
}
