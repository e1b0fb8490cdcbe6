//go:build windows

package device

import "github.com/go-webgpu/webgpu/wgpu"

// probeAdapter requests the default WebGPU adapter. A missing wgpu_native
// library panics inside the bindings and reads as unavailable.
func probeAdapter() (adapter Adapter, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			adapter, ok = Adapter{}, false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	a, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return Adapter{}, false
	}
	defer a.Release()

	info := a.GetInfo()
	return Adapter{Name: info.Name, Vendor: info.VendorName, Backend: "webgpu"}, true
}
