// Package worker defines the employee records kept by crewbook. A Worker is a tagged variant,
// its Kind selects which of the specialization parts (Plumber or Driver) is populated.
// All input coercion happens in New and Revive, fields are strictly typed afterwards.
package worker

import (
	"github.com/google/uuid"

	"github.com/umputun/crewbook/app/enums"
)

// field names shared by form inputs, JSON API payloads and the persisted record
const (
	FieldID              = "id"
	FieldKind            = "kind"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldAge             = "age"
	FieldHasKids         = "hasKids"
	FieldHireDate        = "hireDate"
	FieldRank            = "rank"
	FieldSpecialty       = "specialty"
	FieldNightShift      = "nightShift"
	FieldLicenseCategory = "licenseCategory"
	FieldExperienceYears = "experienceYears"
	FieldVehicleType     = "vehicleType"
)

// Fields is raw, untyped input keyed by field name
type Fields map[string]any

// Worker is a single employee record
type Worker struct {
	ID        string
	Kind      enums.Kind
	FirstName string
	LastName  string
	Age       float64 // NaN if the input was not a number
	HasKids   bool
	HireDate  string

	Plumber *Plumber // set for KindPlumber only
	Driver  *Driver  // set for KindDriver only
}

// Plumber holds plumber-only attributes
type Plumber struct {
	Rank       string
	Specialty  string
	NightShift bool
}

// Driver holds driver-only attributes
type Driver struct {
	LicenseCategory string
	ExperienceYears float64
	VehicleType     string
}

// New makes a worker of the given kind from raw fields. Fields of other kinds are ignored,
// unknown kinds make a plain Worker. The id is kept if provided, generated otherwise.
func New(kind enums.Kind, f Fields) Worker {
	w := Worker{
		ID:        AsText(f[FieldID]),
		Kind:      normalizeKind(kind),
		FirstName: AsText(f[FieldFirstName]),
		LastName:  AsText(f[FieldLastName]),
		Age:       AsNumber(f[FieldAge]),
		HasKids:   AsBool(f[FieldHasKids]),
		HireDate:  AsText(f[FieldHireDate]),
	}
	if w.ID == "" {
		w.ID = NewID()
	}

	switch w.Kind {
	case enums.KindPlumber:
		w.Plumber = &Plumber{
			Rank:       AsText(f[FieldRank]),
			Specialty:  AsText(f[FieldSpecialty]),
			NightShift: AsBool(f[FieldNightShift]),
		}
	case enums.KindDriver:
		w.Driver = &Driver{
			LicenseCategory: AsText(f[FieldLicenseCategory]),
			ExperienceYears: AsNumber(f[FieldExperienceYears]),
			VehicleType:     AsText(f[FieldVehicleType]),
		}
	}
	return w
}

// NewID returns a new unique worker id
func NewID() string {
	return uuid.NewString()
}

// IsSpecialized reports whether the kind can be chosen for a new worker, i.e. Plumber or Driver
func IsSpecialized(k enums.Kind) bool {
	return k == enums.KindPlumber || k == enums.KindDriver
}

func normalizeKind(k enums.Kind) enums.Kind {
	for _, v := range enums.KindValues {
		if v == k {
			return k
		}
	}
	return enums.KindWorker
}
