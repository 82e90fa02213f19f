package gpumark

import (
	"fmt"
	"runtime"
	"strconv"
)

// Device represents a compute device the harness can execute on. The
// only backend is the host CPU presented through the accelerator
// contract: explicit buffers, compiled kernels, work-group launches.
type Device struct {
	ID       int    // Unique device identifier
	Name     string // Human-readable device name
	NumCores int    // Number of execution units
	MaxGroup int    // Maximum threads per work-group
}

// Devices enumerates the available compute devices.
func Devices() []Device {
	return []Device{
		{
			ID:       0,
			Name:     DeviceName(),
			NumCores: runtime.NumCPU(),
			MaxGroup: MaxThreadsPerGroup,
		},
	}
}

// ChooseDevice selects a device from command-line arguments. The
// arguments are forwarded opaquely from the caller: the first argument,
// if present, is taken as a device index. With no arguments the sole
// device is chosen.
func ChooseDevice(args []string) (Device, error) {
	devices := Devices()
	if len(args) == 0 {
		return devices[0], nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return Device{}, NewInvalidArgError("ChooseDevice", fmt.Sprintf("device index expected, got %q", args[0]))
	}
	for _, dev := range devices {
		if dev.ID == id {
			return dev, nil
		}
	}
	return Device{}, NewInvalidArgError("ChooseDevice", fmt.Sprintf("no device with index %d (have %d)", id, len(devices)))
}

// Dim3 represents 3D dimensions for work-group and grid configurations.
type Dim3 struct {
	X, Y, Z int
}

// Size returns the total number of elements.
func (d Dim3) Size() int {
	return d.X * d.Y * d.Z
}

// WorkSize describes a launch geometry: the work-group shape and the
// global extent it tiles. The global extent is rounded up to a whole
// number of groups per axis, so kernels must bounds-guard against the
// problem size.
type WorkSize struct {
	Local  Dim3
	Global Dim3
}

// WorkSize1D builds a one-dimensional launch geometry.
func WorkSize1D(local, global int) WorkSize {
	return WorkSize{
		Local:  Dim3{X: local, Y: 1, Z: 1},
		Global: Dim3{X: global, Y: 1, Z: 1},
	}
}

// WorkSize2D builds a two-dimensional launch geometry.
func WorkSize2D(localX, localY, globalX, globalY int) WorkSize {
	return WorkSize{
		Local:  Dim3{X: localX, Y: localY, Z: 1},
		Global: Dim3{X: globalX, Y: globalY, Z: 1},
	}
}

// Grid returns the number of work-groups per axis, rounding the global
// extent up to the group shape.
func (ws WorkSize) Grid() Dim3 {
	return Dim3{
		X: ceilDiv(ws.Global.X, ws.Local.X),
		Y: ceilDiv(ws.Global.Y, ws.Local.Y),
		Z: ceilDiv(ws.Global.Z, ws.Local.Z),
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// validate reports a launch error for degenerate or oversized geometry.
func (ws WorkSize) validate(maxGroup int) error {
	if ws.Local.X <= 0 || ws.Local.Y <= 0 || ws.Local.Z <= 0 {
		return NewLaunchError("Launch", fmt.Sprintf("work-group shape must be positive, got %+v", ws.Local), nil)
	}
	if ws.Global.X <= 0 || ws.Global.Y <= 0 || ws.Global.Z <= 0 {
		return NewLaunchError("Launch", fmt.Sprintf("global extent must be positive, got %+v", ws.Global), nil)
	}
	if ws.Local.Size() > maxGroup {
		return NewLaunchError("Launch", fmt.Sprintf("work-group of %d threads exceeds device limit %d", ws.Local.Size(), maxGroup), nil)
	}
	return nil
}

// Group identifies one work-group within a launch. Kernels receive one
// call per group and iterate their local threads themselves; threads of
// a group run sequentially on one worker.
type Group struct {
	ID   Dim3 // Group index within the grid
	Dim  Dim3 // Work-group shape
	Grid Dim3 // Grid dimensions
}

// GlobalX returns the global X index of local thread tx.
func (g Group) GlobalX(tx int) int {
	return g.ID.X*g.Dim.X + tx
}

// GlobalY returns the global Y index of local thread ty.
func (g Group) GlobalY(ty int) int {
	return g.ID.Y*g.Dim.Y + ty
}

// GroupFunc is a kernel body. Arguments are the buffer handles and
// scalar dimensions supplied at launch, in launch order.
type GroupFunc func(g Group, args ...interface{})

// Context is an execution context for one device. It owns the memory
// pool and the worker fan-out used by kernel launches. Contexts are
// passed explicitly; there is no ambient global context.
type Context struct {
	device  Device
	memory  *MemoryPool
	workers int
}

// NewContext creates an execution context on the given device.
func NewContext(dev Device) *Context {
	return &Context{
		device:  dev,
		memory:  NewMemoryPool(),
		workers: dev.NumCores,
	}
}

// Device returns the device this context executes on.
func (ctx *Context) Device() Device {
	return ctx.device
}

// Malloc allocates device memory of the specified size in bytes.
func (ctx *Context) Malloc(size int) (DevicePtr, error) {
	return ctx.memory.Allocate(size)
}

// Free releases device memory allocated by Malloc.
func (ctx *Context) Free(ptr DevicePtr) error {
	return ctx.memory.Free(ptr)
}

// MemStats returns current and peak pool allocation in bytes.
func (ctx *Context) MemStats() (allocated, peak int64) {
	return ctx.memory.GetStats()
}

// Destroy tears the context down. Buffers still held by callers become
// invalid.
func (ctx *Context) Destroy() {
	ctx.memory = NewMemoryPool()
}
