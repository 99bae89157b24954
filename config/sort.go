package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SortDirection orders the options of the control.
type SortDirection int8

// Directions. The zero value is Ascending.
const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return fmt.Sprintf("SortDirection(%d)", int8(d))
}

// ParseSortDirection accepts "ascending", "asc", "descending" and "desc",
// ignoring case and surrounding white space.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return Ascending, nil
	case "descending", "desc":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("%w: unknown sort direction %q", ErrInvalid, s)
}

// Sign is +1 for Ascending and -1 for Descending. Comparators multiply by it.
func (d SortDirection) Sign() int {
	if d == Descending {
		return -1
	}
	return 1
}

// UnmarshalYAML is part of interface yaml.Unmarshaler.
func (d *SortDirection) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dir, err := ParseSortDirection(s)
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// MarshalYAML is part of interface yaml.Marshaler.
func (d SortDirection) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
