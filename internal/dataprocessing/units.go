package dataprocessing

import (
	apperrors "gamrycli/internal/errors"
	"gamrycli/pkg/contracts/domain"
)

// RequiredUnits lists, per experiment tag, columns whose unit is fixed.
var RequiredUnits = map[string]map[string]string{
	domain.TagCyclicVoltammetry: {
		domain.ColumnPotential: "V vs. Ref.",
		domain.ColumnCurrent:   "A",
	},
}

// UnitRegistry records the unit of every column of the first curve of a
// file and holds later curves to it.
type UnitRegistry struct {
	experiment string
	units      map[string]string
}

// NewUnitRegistry returns an empty registry for one file.
func NewUnitRegistry(experiment string) *UnitRegistry {
	return &UnitRegistry{experiment: experiment}
}

// Check registers the first table and validates every later one.
func (u *UnitRegistry) Check(t *domain.Table) error {
	if u.units == nil {
		return u.populate(t)
	}
	for _, c := range t.Columns() {
		want, ok := u.units[c.Name]
		if !ok {
			return apperrors.MissingColumn(c.Name).WithContext("reason", "not present in the first curve")
		}
		if want != c.Unit {
			return apperrors.UnitMismatch(c.Name, want, c.Unit)
		}
	}
	return nil
}

func (u *UnitRegistry) populate(t *domain.Table) error {
	required := RequiredUnits[u.experiment]
	units := make(map[string]string, len(t.Columns()))
	for _, c := range t.Columns() {
		if want, ok := required[c.Name]; ok && want != c.Unit {
			return apperrors.UnitMismatch(c.Name, want, c.Unit).WithContext("experiment", u.experiment)
		}
		units[c.Name] = c.Unit
	}
	u.units = units
	return nil
}

// Unit returns the registered unit of column name.
func (u *UnitRegistry) Unit(name string) (string, bool) {
	unit, ok := u.units[name]
	return unit, ok
}

// Len returns the number of registered columns.
func (u *UnitRegistry) Len() int { return len(u.units) }
