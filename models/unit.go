package models

// Unit is the closed set of measurement units amounts are reported in.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "mL"
	UnitPercent    Unit = "%"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitGram, UnitMilliliter, UnitPercent:
		return true
	}
	return false
}

func (u Unit) String() string {
	return string(u)
}
