//go:build !windows

package device

// probeAdapter reports no adapter: the WebGPU bindings are only wired on
// Windows.
func probeAdapter() (Adapter, bool) {
	return Adapter{}, false
}
