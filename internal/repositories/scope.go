package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// Scope restricts a query to a single owner's rows or leaves it
// unrestricted. It is computed once per request from the caller's identity
// and threaded into every store call instead of re-deriving role checks
// inside each operation.
type Scope struct {
	userID uint
	all    bool
}

// OwnedBy scopes queries to rows whose user_id matches the given owner.
func OwnedBy(userID uint) Scope {
	return Scope{userID: userID}
}

// Unrestricted places no owner filter on the query. Only read and report
// operations ever receive it; mutations always take an explicit owner id.
func Unrestricted() Scope {
	return Scope{all: true}
}

func (s Scope) apply(db *gorm.DB) *gorm.DB {
	if s.all {
		return db
	}
	return db.Where("user_id = ?", s.userID)
}

// TaskFilter holds the optional listing predicates. Zero values mean the
// predicate is absent.
type TaskFilter struct {
	StatusEquals string
	SearchText   string
}

// apply builds the where clauses: exact status match and case-insensitive
// substring search over title or description. Lowercasing both sides keeps
// the search behavior identical across MySQL and the sqlite test driver.
func (f TaskFilter) apply(db *gorm.DB) *gorm.DB {
	if f.StatusEquals != "" {
		db = db.Where("status = ?", f.StatusEquals)
	}
	if f.SearchText != "" {
		pattern := "%" + strings.ToLower(f.SearchText) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return db
}
