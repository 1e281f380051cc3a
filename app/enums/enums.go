// Package enums provides type-safe enumeration types shared by the worker model and the web interface.
//
// The enum types are defined as unexported integer types (e.g., kind int) in this file,
// and the go:generate directives invoke the go-pkgz/enum generator to create corresponding
// exported types with all necessary methods in separate files (*_enum.go).
//
// For each enum type, the generator creates:
//   - An exported struct type (e.g., Kind) with name and value fields
//   - String() method for string representation
//   - Parse functions (e.g., ParseKind) for string-to-enum conversion
//   - Database methods (Scan/Value) for SQL compatibility
//   - Text marshaling methods (MarshalText/UnmarshalText)
//   - Exported constants for each enum value (e.g., KindPlumber, KindDriver)
//
// Usage:
//
//	k := enums.KindPlumber
//	fmt.Println(k.String()) // "Plumber"
//
//	parsed, err := enums.ParseKind("Driver")
//	if err != nil {
//	    // handle invalid input
//	}
//
// Kind keeps the capitalized names because they are part of the persisted record format.
// Theme and Lang are lower-cased, they only travel in cookies and command line flags.
//
// To regenerate the enum types after modifications:
//
//	go generate ./app/enums
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type kind
//go:generate go run github.com/go-pkgz/enum@latest -type theme -lower
//go:generate go run github.com/go-pkgz/enum@latest -type lang -lower

// kind is the worker variant discriminant.
// This is an unexported type used only as input for the code generator.
// Use the exported Kind type and its constants in actual code.
type kind int

const (
	kindWorker kind = iota
	kindPlumber
	kindDriver
)

// theme represents UI themes.
// This is an unexported type used only as input for the code generator.
// Use the exported Theme type and its constants in actual code.
type theme int

const (
	themeLight theme = iota
	themeDark
)

// lang represents UI label languages.
// This is an unexported type used only as input for the code generator.
// Use the exported Lang type and its constants in actual code.
type lang int

const (
	langEn lang = iota
	langRu
)
