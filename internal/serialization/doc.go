// Package serialization saves and loads named arrays in the SafeTensors
// format:
//
//	[8 bytes: header size (uint64 LE)]
//	[header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	[tensor data: raw little-endian bytes, in name order]
//
// An optional "__metadata__" entry maps string keys to string values.
package serialization
