package hecras

// ProbeFileType opens path as HDF5 and reports whether its "/File Type"
// string dataset holds want as its first value, without validating any
// further structure. Exported for internal/driver's XMDF stub, which
// shares this package's HDF5 wrapper rather than opening a second binding.
func ProbeFileType(path string, want string) bool {
	h, err := openFile(path)
	if err != nil {
		return false
	}
	defer h.Close()
	const fileTypePath = "/File Type"
	if !h.exists(fileTypePath) {
		return false
	}
	vals, err := h.stringArray(fileTypePath)
	return err == nil && len(vals) > 0 && vals[0] == want
}
