package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Default limit values, per the engine's external configuration surface.
const (
	DefaultMaxPathLimit     = 128
	DefaultMaxDocumentSize  = 64 * 1024 * 1024
	DefaultHashTableMinSize = 64
)

// Limits holds the three host-settable config keys that bound document
// shape and govern the object index switchover:
//
//   - json.max-path-limit caps tree depth.
//   - json.max-document-size caps compact-serialized size, in bytes.
//   - json.hash-table-min-size is the member count at which an object
//     starts maintaining a name->position index instead of linear scan.
type Limits struct {
	MaxPathLimit     int `yaml:"max-path-limit"`
	MaxDocumentSize  int `yaml:"max-document-size"`
	HashTableMinSize int `yaml:"hash-table-min-size"`
}

// NewLimits returns the documented defaults.
func NewLimits() Limits {
	return Limits{
		MaxPathLimit:     DefaultMaxPathLimit,
		MaxDocumentSize:  DefaultMaxDocumentSize,
		HashTableMinSize: DefaultHashTableMinSize,
	}
}

// LoadLimitsFile reads a YAML file of the form:
//
//	max-path-limit: 128
//	max-document-size: 67108864
//	hash-table-min-size: 64
//
// Fields absent from the file keep their [NewLimits] default.
func LoadLimitsFile(path string) (Limits, error) {
	l := NewLimits()

	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("reading limits file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, fmt.Errorf("parsing limits file %q: %w", path, err)
	}

	return l, nil
}

// Validate reports an error if any limit is non-positive.
func (l Limits) Validate() error {
	if l.MaxPathLimit <= 0 {
		return fmt.Errorf("%w: max-path-limit must be positive, got %d", ErrInvalidLimit, l.MaxPathLimit)
	}

	if l.MaxDocumentSize <= 0 {
		return fmt.Errorf("%w: max-document-size must be positive, got %d", ErrInvalidLimit, l.MaxDocumentSize)
	}

	if l.HashTableMinSize <= 0 {
		return fmt.Errorf("%w: hash-table-min-size must be positive, got %d", ErrInvalidLimit, l.HashTableMinSize)
	}

	return nil
}
