// Package enums provides type-safe enumeration types for the console.
//
// The enum types are defined as unexported integer types in this file, and the
// go:generate directives invoke the go-pkgz/enum generator to create exported
// struct types with String, Parse, Must, text and sql marshaling (*_enum.go).
//
// Usage:
//
//	tab := enums.TabKnowledge
//	fmt.Println(tab.String()) // "knowledge"
//
//	step, err := enums.ParseSetupStep("structure")
//	if err != nil {
//	    // handle invalid input
//	}
//
// To regenerate the enum types after modifications:
//
//	go generate ./app/enums
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type tab -lower
//go:generate go run github.com/go-pkgz/enum@latest -type setupStep -lower
//go:generate go run github.com/go-pkgz/enum@latest -type theme -lower

// tab represents queue page tabs.
// This is an unexported type used only as input for the code generator.
type tab int

const (
	tabCreation tab = iota
	tabAnalysis
	tabKnowledge
)

// setupStep represents setup wizard steps, in wizard order.
// This is an unexported type used only as input for the code generator.
type setupStep int

const (
	setupStepConnect setupStep = iota
	setupStepProducts
	setupStepAnalysis
	setupStepQuestions
	setupStepStructure
	setupStepTemplate
)

// theme represents UI themes.
// This is an unexported type used only as input for the code generator.
type theme int

const (
	themeLight theme = iota
	themeDark
	themeAuto
)
