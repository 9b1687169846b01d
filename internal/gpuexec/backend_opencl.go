//go:build opencl

// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

/*
#cgo linux LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL
#cgo windows LDFLAGS: -lOpenCL

#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif

#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/luxfi/phpmtseed/internal/config"
	"github.com/luxfi/phpmtseed/internal/diag"
	"github.com/luxfi/phpmtseed/internal/gpuexec/shader"
	"github.com/luxfi/phpmtseed/internal/query"
)

// openCLBackend dispatches the predicate kernel (shader/mt19937.cl) on
// the first GPU device of the first OpenCL platform found, mirroring
// the acquisition order other_examples' SolanaGPUGenerator.initOpenCL
// uses (clGetPlatformIDs -> clGetDeviceIDs(CL_DEVICE_TYPE_GPU) ->
// clCreateContext -> clCreateCommandQueue -> clCreateProgramWithSource
// -> clBuildProgram -> clCreateKernel).
type openCLBackend struct {
	cfg config.Tuning
	dev C.cl_device_id
	ctx C.cl_context
	q   C.cl_command_queue
	prg C.cl_program
	krn C.cl_kernel

	inputBuf  C.cl_mem
	outputBuf C.cl_mem

	name string
}

func newDefaultBackend(cfg config.Tuning) (Backend, error) {
	b := &openCLBackend{cfg: cfg}
	if err := b.init(); err != nil {
		b.Close()
		return nil, fmt.Errorf("gpuexec: %w: %v", ErrAcceleratorUnavailable, err)
	}
	return b, nil
}

func (b *openCLBackend) init() error {
	var numPlatforms C.cl_uint
	if C.clGetPlatformIDs(0, nil, &numPlatforms) != C.CL_SUCCESS || numPlatforms == 0 {
		return fmt.Errorf("no OpenCL platforms")
	}
	platforms := make([]C.cl_platform_id, numPlatforms)
	C.clGetPlatformIDs(numPlatforms, &platforms[0], nil)
	platform := platforms[0]

	var numDevices C.cl_uint
	if C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, 0, nil, &numDevices) != C.CL_SUCCESS || numDevices == 0 {
		return fmt.Errorf("no GPU devices")
	}
	devices := make([]C.cl_device_id, numDevices)
	C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, numDevices, &devices[0], nil)
	b.dev = devices[0]

	var ret C.cl_int
	b.ctx = C.clCreateContext(nil, 1, &b.dev, nil, nil, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateContext: %d", ret)
	}

	b.q = C.clCreateCommandQueue(b.ctx, b.dev, 0, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateCommandQueue: %d", ret)
	}

	src := C.CString(shader.OpenCL)
	defer C.free(unsafe.Pointer(src))
	length := C.size_t(len(shader.OpenCL))
	b.prg = C.clCreateProgramWithSource(b.ctx, 1, &src, &length, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateProgramWithSource: %d", ret)
	}

	ret = C.clBuildProgram(b.prg, 1, &b.dev, nil, nil, nil)
	if ret != C.CL_SUCCESS {
		var logSize C.size_t
		C.clGetProgramBuildInfo(b.prg, b.dev, C.CL_PROGRAM_BUILD_LOG, 0, nil, &logSize)
		buildLog := make([]byte, logSize)
		if logSize > 0 {
			C.clGetProgramBuildInfo(b.prg, b.dev, C.CL_PROGRAM_BUILD_LOG, logSize, unsafe.Pointer(&buildLog[0]), nil)
		}
		return fmt.Errorf("clBuildProgram: %s", string(buildLog))
	}

	kName := C.CString("search_seeds")
	defer C.free(unsafe.Pointer(kName))
	b.krn = C.clCreateKernel(b.prg, kName, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateKernel: %d", ret)
	}

	inputWords := C.size_t(1 + query.MaxSlots*4)
	b.inputBuf = C.clCreateBuffer(b.ctx, C.CL_MEM_READ_ONLY, inputWords*4, nil, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateBuffer(input): %d", ret)
	}

	outputWords := C.size_t(b.cfg.OutputCapacity)
	b.outputBuf = C.clCreateBuffer(b.ctx, C.CL_MEM_READ_WRITE, outputWords*4, nil, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateBuffer(output): %d", ret)
	}

	C.clSetKernelArg(b.krn, 0, C.size_t(unsafe.Sizeof(b.inputBuf)), unsafe.Pointer(&b.inputBuf))
	C.clSetKernelArg(b.krn, 1, C.size_t(unsafe.Sizeof(b.outputBuf)), unsafe.Pointer(&b.outputBuf))

	var nameBuf [256]C.char
	C.clGetDeviceInfo(b.dev, C.CL_DEVICE_NAME, 256, unsafe.Pointer(&nameBuf[0]), nil)
	b.name = fmt.Sprintf("OpenCL (%s)", C.GoString(&nameBuf[0]))

	diag.Logf("backend_opencl: acquired device %q", b.name)
	return nil
}

func (b *openCLBackend) Name() string {
	if b.name == "" {
		return "OpenCL"
	}
	return b.name
}

// packInput lays out one step's dispatch input exactly as
// shader/mt19937.cl expects: word 0's low 24 bits are the step, its
// high 8 bits are the slot count, followed by each slot's 4 words.
func packInput(step uint32, q query.Query) []uint32 {
	words := make([]uint32, 1+query.MaxSlots*4)
	words[0] = (step & 0x00ffffff) | (uint32(len(q)) << 24)
	copy(words[1:], q.Tokens())
	return words
}

func (b *openCLBackend) Dispatch(step uint32, q query.Query) (DispatchResult, error) {
	input := packInput(step, q)
	ret := C.clEnqueueWriteBuffer(b.q, b.inputBuf, C.CL_TRUE, 0, C.size_t(len(input)*4),
		unsafe.Pointer(&input[0]), 0, nil, nil)
	if ret != C.CL_SUCCESS {
		return DispatchResult{}, fmt.Errorf("gpuexec: write input buffer: %d", ret)
	}

	zeros := make([]uint32, b.cfg.OutputCapacity)
	ret = C.clEnqueueWriteBuffer(b.q, b.outputBuf, C.CL_TRUE, 0, C.size_t(len(zeros)*4),
		unsafe.Pointer(&zeros[0]), 0, nil, nil)
	if ret != C.CL_SUCCESS {
		return DispatchResult{}, fmt.Errorf("gpuexec: clear output buffer: %d", ret)
	}

	globalSize := C.size_t(uint64(b.cfg.Workgroups) * uint64(b.cfg.InvocationsPerWorkgroup))
	localSize := C.size_t(b.cfg.InvocationsPerWorkgroup)
	ret = C.clEnqueueNDRangeKernel(b.q, b.krn, 1, nil, &globalSize, &localSize, 0, nil, nil)
	if ret != C.CL_SUCCESS {
		return DispatchResult{}, fmt.Errorf("gpuexec: clEnqueueNDRangeKernel: %d", ret)
	}

	output := make([]uint32, b.cfg.OutputCapacity)
	ret = C.clEnqueueReadBuffer(b.q, b.outputBuf, C.CL_TRUE, 0, C.size_t(len(output)*4),
		unsafe.Pointer(&output[0]), 0, nil, nil)
	if ret != C.CL_SUCCESS {
		return DispatchResult{}, fmt.Errorf("gpuexec: clEnqueueReadBuffer: %d", ret)
	}

	count := output[0]
	if count > b.cfg.OutputCapacity-1 {
		return DispatchResult{}, ErrResultOverflow
	}
	seeds := append([]uint32(nil), output[1:1+count]...)
	return DispatchResult{Seeds: seeds}, nil
}

func (b *openCLBackend) Close() {
	if b.inputBuf != nil {
		C.clReleaseMemObject(b.inputBuf)
	}
	if b.outputBuf != nil {
		C.clReleaseMemObject(b.outputBuf)
	}
	if b.krn != nil {
		C.clReleaseKernel(b.krn)
	}
	if b.prg != nil {
		C.clReleaseProgram(b.prg)
	}
	if b.q != nil {
		C.clReleaseCommandQueue(b.q)
	}
	if b.ctx != nil {
		C.clReleaseContext(b.ctx)
	}
}
