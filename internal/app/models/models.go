package models

// Role defines the principal role type
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
)

// LoanCategory defines the loan category
type LoanCategory string

const (
	CategoryLibrary    LoanCategory = "library"
	CategoryLaboratory LoanCategory = "laboratory"
)

// LoanStatus defines the loan lifecycle state
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
)

// LibraryCatalog is the closed set of item types a library loan may use.
// Laboratory loans take free text instead.
var LibraryCatalog = []string{
	"Computador portátil",
	"Tablet",
	"Libro",
	"Calculadora",
	"Audífonos",
}

// InLibraryCatalog reports whether an item type belongs to the library catalog.
func InLibraryCatalog(itemType string) bool {
	for _, item := range LibraryCatalog {
		if item == itemType {
			return true
		}
	}
	return false
}
