// Package schema is the registry of per-entity field specifications for
// bulk import. Each entity type declares an ordered FieldSpec sequence;
// the order defines the canonical column order for generated templates.
// Adding an importable entity type means adding one Definition, not new
// branching logic elsewhere.
package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/salesflow/salesflow/internal/crm"
)

// FieldKind is the expected data type of an import column.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindEnum
	KindDate
)

// String returns a human-readable kind name for error messages.
func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindEnum:
		return "enum"
	case KindDate:
		return "date"
	default:
		return "value"
	}
}

// FieldSpec declares validation and coercion rules for one import column.
type FieldSpec struct {
	Name       string    // Column header name, matched case-sensitively
	Kind       FieldKind // Expected data type
	Required   bool      // Row fails when the value is absent or empty
	Default    string    // Applied when an optional value is absent, empty, or uncoercible
	EnumValues []string  // Valid values for KindEnum; mismatches fall back to Default
}

// Fields holds the coerced values of one validated row, keyed by spec name.
// Number fields hold float64, everything else holds string.
type Fields map[string]any

// Str returns the string value for name, or "" if unset.
func (f Fields) Str(name string) string {
	s, _ := f[name].(string)
	return s
}

// Num returns the numeric value for name, or 0 if unset.
func (f Fields) Num(name string) float64 {
	n, _ := f[name].(float64)
	return n
}

// BuildFunc assembles a typed record from coerced field values.
type BuildFunc func(f Fields) crm.Record

// Definition binds an entity type to its field specs, record builder, and
// template example rows.
type Definition struct {
	Type        crm.EntityType
	Label       string // Display name: "Leads"
	FieldSpecs  []FieldSpec
	Build       BuildFunc
	ExampleRows [][]string // Template body, values in FieldSpec order
}

// Columns returns the header column names in canonical order.
func (d Definition) Columns() []string {
	cols := make([]string, len(d.FieldSpecs))
	for i, spec := range d.FieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}

// RequiredColumns returns the names of required fields in spec order.
func (d Definition) RequiredColumns() []string {
	var cols []string
	for _, spec := range d.FieldSpecs {
		if spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

// OptionalColumns returns the names of optional fields in spec order.
func (d Definition) OptionalColumns() []string {
	var cols []string
	for _, spec := range d.FieldSpecs {
		if !spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

var (
	registry   = make(map[crm.EntityType]Definition)
	registryMu sync.RWMutex
)

// Register adds an entity definition to the registry.
// Panics if the type is already registered or the definition is incomplete.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Type]; exists {
		panic(fmt.Sprintf("entity already registered: %s", def.Type))
	}
	if len(def.FieldSpecs) == 0 || def.Build == nil {
		panic(fmt.Sprintf("incomplete definition for entity: %s", def.Type))
	}

	registry[def.Type] = def
}

// Get returns the definition for an entity type.
func Get(entity crm.EntityType) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[entity]
	return def, ok
}

// All returns every registered definition, sorted by type for stable output.
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Type < defs[j].Type })
	return defs
}

// Count returns the number of registered entity types.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
