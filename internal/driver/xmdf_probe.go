package driver

import "github.com/mdal-go/mdal/internal/hecras"

// probeXMDF checks the HDF5 "/File Type" dataset spec.md §6 gives for
// XMDF results files, reusing internal/hecras's HDF5 wrapper rather than
// opening a second binding to the same library.
func probeXMDF(uri string) bool {
	return hecras.ProbeFileType(uri, "Xmdf")
}
