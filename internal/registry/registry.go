// Package registry is the single place that imports every concrete
// driver package and wires them into a driver.Manager. It exists so
// internal/driver, internal/selafin and internal/hecras can each stay
// free of imports of one another: only this leaf package needs to know
// all of them at once.
package registry

import (
	"github.com/mdal-go/mdal/internal/driver"
	"github.com/mdal-go/mdal/internal/hecras"
	"github.com/mdal-go/mdal/internal/mdalconfig"
	"github.com/mdal-go/mdal/internal/selafin"
)

// NewManager returns a driver.Manager with every in-tree driver
// registered, in the fixed order spec.md §4.8's sniffing loop relies
// on: the formats this repository actually decodes first, then the
// contract-only stubs in the same order as spec.md §6's format table.
// Dynamic drivers under MDAL_DRIVER_PATH are loaded last, so they can
// never shadow a built-in driver of the same name silently.
func NewManager() *driver.Manager {
	m := driver.NewManager()

	m.Register(driver.NewTwoDM())
	m.Register(selafin.New())
	m.Register(hecras.New())

	m.Register(driver.NewPLY())
	m.Register(driver.NewUGRID())
	m.Register(driver.NewXMSTIN())
	m.Register(driver.NewXMDF())
	m.Register(driver.NewMike21())
	m.Register(driver.NewFlo2D())
	m.Register(driver.NewGRIB())
	m.Register(driver.NewDflowFM())
	m.Register(driver.NewADCIRC())
	m.Register(driver.NewBasement())
	m.Register(driver.NewSWW())
	m.Register(driver.NewH2i())

	if err := m.LoadDynamicDrivers(mdalconfig.DriverPath()); err != nil {
		// A broken plugin directory should not make the whole library
		// unusable; dynload failures are already logged per-plugin.
		_ = err
	}

	return m
}
