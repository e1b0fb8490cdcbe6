// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package host

import "github.com/born-ml/born-host/internal/convert"

// MetalNamespace prefixes the device control functions.
const MetalNamespace = "metal."

func (r *Runtime) registerMetal() {
	r.funcs[MetalNamespace+"isAvailable"] = func(*convert.Arguments) (any, error) {
		return r.device.IsAvailable(), nil
	}
	r.funcs[MetalNamespace+"startCapture"] = func(args *convert.Arguments) (any, error) {
		path, err := convert.Next(args, convert.String)
		if err != nil {
			return nil, err
		}
		return nil, r.device.StartCapture(path)
	}
	r.funcs[MetalNamespace+"stopCapture"] = func(*convert.Arguments) (any, error) {
		r.device.StopCapture()
		return nil, nil
	}
	r.funcs[MetalNamespace+"deviceInfo"] = func(*convert.Arguments) (any, error) {
		return r.device.Info(), nil
	}
}
