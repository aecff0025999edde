package core

import (
	_ "embed"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pyrun/internal/shared"
)

//go:embed mapping.yaml
var defaultMappingData []byte

// PackageMapping translates an imported module name into the distribution
// name pip should install. The table is shipped as data so new mismatches
// can be added without touching resolution code; lookups are pure and never
// reach the network.
type PackageMapping struct {
	table map[string]*string
}

// LoadDefaultMapping parses the embedded mapping table. Loaded once per
// process by the service constructor.
func LoadDefaultMapping() (PackageMapping, error) {
	return ParseMapping(defaultMappingData)
}

// ParseMapping builds a PackageMapping from YAML data. A null value marks a
// module with no installable distribution.
func ParseMapping(data []byte) (PackageMapping, error) {
	table := map[string]*string{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return PackageMapping{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package mapping table").
			WithCause(err)
	}
	return PackageMapping{table: table}, nil
}

// Distribution maps a module name to its pip distribution. Dotted names
// are reduced to their root segment, which is the installable unit; unknown
// names map to themselves. installable=false means the module is known to
// have no pip distribution at all.
func (m PackageMapping) Distribution(module string) (name string, installable bool) {
	root := shared.RootModule(module)
	if mapped, found := m.table[root]; found {
		return derefMapping(mapped)
	}
	return root, root != ""
}

// KnownModules returns the mapped module names in sorted order, for
// suggestion building.
func (m PackageMapping) KnownModules() []string {
	names := make([]string, 0, len(m.table))
	for name := range m.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func derefMapping(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return *value, true
}
