// Package mdalconfig reads the process-wide environment settings of
// spec.md §4.12: the dynamic driver search path, and a debug-logging
// toggle, mirroring the teacher's convention of a single small package
// for environment-derived configuration rather than scattering os.Getenv
// calls through the driver registry.
package mdalconfig

import (
	"os"
	"strconv"
)

const (
	driverPathEnv = "MDAL_DRIVER_PATH"
	debugEnv      = "MDAL_DEBUG"
)

// DriverPath returns the directory Manager.LoadDynamicDrivers should
// scan for plugin drivers, or "" if MDAL_DRIVER_PATH is unset.
func DriverPath() string {
	return os.Getenv(driverPathEnv)
}

// Debug reports whether MDAL_DEBUG is set to a value strconv.ParseBool
// reads as true. cmd/mdalinfo and cmd/mdaltranslate do not consult it;
// their log level comes from their --log flag.
func Debug() bool {
	v, ok := os.LookupEnv(debugEnv)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
