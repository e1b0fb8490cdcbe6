// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package host

import (
	"github.com/born-ml/born-host/internal/convert"
	"github.com/born-ml/born-host/internal/serialization"
	"github.com/born-ml/born-host/internal/tensor"
)

func (r *Runtime) registerIO() {
	r.funcs["save"] = r.save
	r.funcs["load"] = r.load
}

// save(path, {name: array}, metadata?) writes a SafeTensors file.
func (r *Runtime) save(args *convert.Arguments) (any, error) {
	path, err := convert.Next(args, convert.String)
	if err != nil {
		return nil, err
	}
	arrays, err := convert.Next(args, convert.Map(r.array))
	if err != nil {
		return nil, err
	}
	metadata, _, err := convert.Optional(args, convert.Map(convert.String))
	if err != nil {
		return nil, err
	}
	return nil, serialization.Save(path, arrays, metadata)
}

// load(path) reads a SafeTensors file into {name: array}.
func (r *Runtime) load(args *convert.Arguments) (any, error) {
	path, err := convert.Next(args, convert.String)
	if err != nil {
		return nil, err
	}
	arrays, _, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}
	return convert.Map[*tensor.RawTensor](r.array).ToHost(arrays), nil
}
