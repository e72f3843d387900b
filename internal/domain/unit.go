package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Unit is the cadence a job order's rate is charged at. The zero value is
// UnitDaily, which is also what a missing unit means.
type Unit uint8

const (
	UnitDaily Unit = iota
	UnitWeekly
	UnitMonthly
)

var Units = []Unit{UnitDaily, UnitWeekly, UnitMonthly}

// Valid reports whether u is one of Units.
func (u Unit) Valid() bool {
	return u <= UnitMonthly
}

func (u Unit) String() string {
	switch u {
	case UnitWeekly:
		return "weekly"
	case UnitMonthly:
		return "monthly"
	default:
		return "daily"
	}
}

// Label is the human readable form used in forms.
func (u Unit) Label() string {
	switch u {
	case UnitWeekly:
		return "Per Week"
	case UnitMonthly:
		return "Per Month"
	default:
		return "Per Day"
	}
}

// ParseUnit maps a stored or submitted unit name. Empty means daily; any
// other unknown name is an error.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily":
		return UnitDaily, nil
	case "weekly":
		return UnitWeekly, nil
	case "monthly":
		return UnitMonthly, nil
	default:
		return UnitDaily, fmt.Errorf("unknown billing unit %q", s)
	}
}

// Periods returns how many units are billed for the given number of days.
// Partial weeks and months are billed as whole ones.
func (u Unit) Periods(days int) int64 {
	if days <= 0 {
		return 0
	}
	switch u {
	case UnitWeekly:
		return ceilDiv(int64(days), 7)
	case UnitMonthly:
		return ceilDiv(int64(days), 30)
	default:
		return int64(days)
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = UnitDaily
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u *Unit) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*u = UnitDaily
		return nil
	case string:
		parsed, err := ParseUnit(v)
		*u = parsed
		return err
	case []byte:
		parsed, err := ParseUnit(string(v))
		*u = parsed
		return err
	default:
		return fmt.Errorf("cannot scan %T into Unit", src)
	}
}

func (u Unit) Value() (driver.Value, error) {
	return u.String(), nil
}
