// SPDX-License-Identifier: BSD-3-Clause

// Package shader embeds the predicate kernel sources. Both files encode
// the identical algorithm predicate.go implements in Go (mt19937.wgsl,
// WGSL, mirrors the original Rust/wgpu program's include_wgsl! shader;
// mt19937.cl, OpenCL C, is what backend_opencl.go compiles at runtime).
// Keeping the WGSL source alongside the OpenCL one documents the wire
// contract (binding 0 read-only, binding 1 read-write, the
// length-prefixed result ring) this repo's GPU backend is grounded on,
// even though the shipped backend dispatches through OpenCL rather than
// wgpu.
package shader

import _ "embed"

// OpenCL is the kernel source backend_opencl.go compiles with
// clCreateProgramWithSource.
//
//go:embed mt19937.cl
var OpenCL string

// WGSL is the reference WebGPU compute shader source, kept for parity
// with the original program this tool reimplements. Carried as wire-
// contract documentation only: no backend in this repo compiles or
// dispatches it.
//
//go:embed mt19937.wgsl
var WGSL string
