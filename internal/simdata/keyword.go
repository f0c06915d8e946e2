package simdata

import (
	"fmt"
)

// DataType is the element type of a keyword.
type DataType int

const (
	// Inte holds 32-bit signed integers.
	Inte DataType = iota
	// Real holds 32-bit floats.
	Real
)

// String returns the 4-character type tag used in the file format.
func (t DataType) String() string {
	switch t {
	case Inte:
		return "INTE"
	case Real:
		return "REAL"
	default:
		return "????"
	}
}

// maxKeywordName is the historical 8-character keyword name limit.
const maxKeywordName = 8

// Keyword is a named, typed vector of elements.
type Keyword struct {
	name string
	typ  DataType
	ints []int32
	flts []float32
}

// NewKeyword creates a keyword with the given name, element count and type.
// Names are at most 8 characters and must be non-empty.
func NewKeyword(name string, size int, typ DataType) (*Keyword, error) {
	if name == "" {
		return nil, fmt.Errorf("keyword name must be non-empty")
	}
	if len(name) > maxKeywordName {
		return nil, fmt.Errorf("keyword name %q exceeds %d characters", name, maxKeywordName)
	}
	if size < 0 {
		return nil, fmt.Errorf("keyword size must be non-negative, got %d", size)
	}

	kw := &Keyword{name: name, typ: typ}
	switch typ {
	case Inte:
		kw.ints = make([]int32, size)
	case Real:
		kw.flts = make([]float32, size)
	default:
		return nil, fmt.Errorf("unknown data type %d", int(typ))
	}
	return kw, nil
}

// Name returns the keyword name.
func (k *Keyword) Name() string { return k.name }

// Type returns the element type.
func (k *Keyword) Type() DataType { return k.typ }

// Len returns the element count.
func (k *Keyword) Len() int {
	if k.typ == Inte {
		return len(k.ints)
	}
	return len(k.flts)
}

// SetInt assigns element i of an Inte keyword.
func (k *Keyword) SetInt(i int, v int32) error {
	if k.typ != Inte {
		return fmt.Errorf("keyword %s holds %s elements, not INTE", k.name, k.typ)
	}
	if i < 0 || i >= len(k.ints) {
		return fmt.Errorf("index %d out of range for keyword %s (len %d)", i, k.name, len(k.ints))
	}
	k.ints[i] = v
	return nil
}

// IntAt reads element i of an Inte keyword.
func (k *Keyword) IntAt(i int) (int32, error) {
	if k.typ != Inte {
		return 0, fmt.Errorf("keyword %s holds %s elements, not INTE", k.name, k.typ)
	}
	if i < 0 || i >= len(k.ints) {
		return 0, fmt.Errorf("index %d out of range for keyword %s (len %d)", i, k.name, len(k.ints))
	}
	return k.ints[i], nil
}

// SetReal assigns element i of a Real keyword.
func (k *Keyword) SetReal(i int, v float32) error {
	if k.typ != Real {
		return fmt.Errorf("keyword %s holds %s elements, not REAL", k.name, k.typ)
	}
	if i < 0 || i >= len(k.flts) {
		return fmt.Errorf("index %d out of range for keyword %s (len %d)", i, k.name, len(k.flts))
	}
	k.flts[i] = v
	return nil
}

// RealAt reads element i of a Real keyword.
func (k *Keyword) RealAt(i int) (float32, error) {
	if k.typ != Real {
		return 0, fmt.Errorf("keyword %s holds %s elements, not REAL", k.name, k.typ)
	}
	if i < 0 || i >= len(k.flts) {
		return 0, fmt.Errorf("index %d out of range for keyword %s (len %d)", i, k.name, len(k.flts))
	}
	return k.flts[i], nil
}
