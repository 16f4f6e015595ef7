// Package dynload resolves the dynamic driver ABI of spec.md §4.12: a
// Go plugin (built with `go build -buildmode=plugin`) dropped into the
// directory named by MDAL_DRIVER_PATH and exporting a package-level
// symbol named "Driver".
//
// The teacher has no dynamic-plugin precedent in its own domain (chart
// formats are compiled in), so this stays on the standard library's
// plugin package rather than a third-party plugin host — see
// DESIGN.md.
package dynload

import (
	"plugin"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

// symbolName is the exported identifier every dynamic driver plugin
// must define, per spec.md §4.12.
const symbolName = "Driver"

// Resolve looks up the Driver symbol in p and returns it as an
// interface{} — the driver package asserts it into its own Driver
// interface, keeping dynload free of a dependency on the driver
// package and avoiding an import cycle.
func Resolve(p *plugin.Plugin) (interface{}, error) {
	sym, err := p.Lookup(symbolName)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusMissingDriver, "plugin does not export Driver symbol", err)
	}
	return sym, nil
}
