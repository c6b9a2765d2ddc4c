// Package scope turns caller-supplied filter parameters into an explicit
// conjunction of typed conditions for the persistence layer, and forces an
// ownership condition for non-admin callers so they can never read another
// user's records.
package scope

import (
	"strings"
	"time"

	"github.com/bleep333/fake-shop-sub001/internal/auth"

	"gorm.io/gorm"
)

// FilterSpec holds the optional, untrusted query parameters of a list
// request. Zero values mean "not supplied".
type FilterSpec struct {
	Status     string
	OwnerID    *uint
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchText string
}

// Condition is one filter dimension. The variants below are the only
// supported predicates; each knows how to translate itself into a WHERE
// clause.
type Condition interface {
	apply(db *gorm.DB) *gorm.DB
}

type StatusEquals struct {
	Value string
}

// OwnerEquals scopes records to one owner. Forced marks the condition as
// injected by Build for a non-admin caller rather than requested.
type OwnerEquals struct {
	UserID uint
	Forced bool
}

// CreatedFrom is an inclusive lower bound on created_at.
type CreatedFrom struct {
	Value time.Time
}

// CreatedTo is an inclusive upper bound on created_at.
type CreatedTo struct {
	Value time.Time
}

// TextSearch matches when any of Columns contains Needle,
// case-insensitively.
type TextSearch struct {
	Needle  string
	Columns []string
}

// Predicate is a conjunction of conditions. Empty means unfiltered, which
// is the intended result for an admin "list everything" call.
type Predicate struct {
	Conditions []Condition
}

// Build translates spec into a Predicate for the given caller.
//
// Non-admin callers always get an OwnerEquals bound to their own UserID:
// any OwnerID the spec carries is discarded first, and the forced
// condition is appended even when the spec carried none.
//
// searchColumns names the text columns SearchText is matched against; a
// spec with SearchText but no columns contributes no condition. A
// DateFrom after DateTo is kept as-is and simply matches nothing.
func Build(spec FilterSpec, ident auth.Identity, searchColumns ...string) Predicate {
	var p Predicate

	if spec.Status != "" {
		p.Conditions = append(p.Conditions, StatusEquals{Value: spec.Status})
	}
	if spec.DateFrom != nil {
		p.Conditions = append(p.Conditions, CreatedFrom{Value: *spec.DateFrom})
	}
	if spec.DateTo != nil {
		p.Conditions = append(p.Conditions, CreatedTo{Value: *spec.DateTo})
	}
	if spec.SearchText != "" && len(searchColumns) > 0 {
		p.Conditions = append(p.Conditions, TextSearch{Needle: spec.SearchText, Columns: searchColumns})
	}

	if ident.IsAdmin {
		if spec.OwnerID != nil {
			p.Conditions = append(p.Conditions, OwnerEquals{UserID: *spec.OwnerID})
		}
	} else {
		p.Conditions = append(p.Conditions, OwnerEquals{UserID: ident.UserID, Forced: true})
	}

	return p
}

// Apply chains every condition onto db as a WHERE clause. Ordering of the
// result set is the caller's concern.
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	for _, cond := range p.Conditions {
		db = cond.apply(db)
	}
	return db
}

// Owner returns the owner condition of the predicate, if any.
func (p Predicate) Owner() (OwnerEquals, bool) {
	for _, cond := range p.Conditions {
		if oc, ok := cond.(OwnerEquals); ok {
			return oc, true
		}
	}
	return OwnerEquals{}, false
}

func (cond StatusEquals) apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", cond.Value)
}

func (cond OwnerEquals) apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", cond.UserID)
}

func (cond CreatedFrom) apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", cond.Value)
}

func (cond CreatedTo) apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at <= ?", cond.Value)
}

func (cond TextSearch) apply(db *gorm.DB) *gorm.DB {
	needle := "%" + strings.ToLower(cond.Needle) + "%"
	clauses := make([]string, 0, len(cond.Columns))
	args := make([]interface{}, 0, len(cond.Columns))
	for _, col := range cond.Columns {
		clauses = append(clauses, "LOWER("+col+") LIKE ?")
		args = append(args, needle)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}
