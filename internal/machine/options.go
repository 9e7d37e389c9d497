package machine

import (
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a Machine before its memory is
// allocated.
type Opt func(m *Machine)

// WithMemorySize sets the size of the memory buffer in bytes. The
// default is the full 64 KiB address space.
func WithMemorySize(size int) Opt {
	return func(m *Machine) {
		m.memorySize = size
	}
}

// WithImage copies data into memory starting at the given address.
// Images are copied in the order they are given.
func WithImage(data []byte, at uint16) Opt {
	return func(m *Machine) {
		m.images = append(m.images, image{data: data, at: at})
	}
}

// WithEntryPoint sets the program counter.
func WithEntryPoint(pc uint16) Opt {
	return func(m *Machine) {
		m.entryPoint = &pc
	}
}

// WithStackPointer sets the stack pointer.
func WithStackPointer(sp uint16) Opt {
	return func(m *Machine) {
		m.stackPointer = &sp
	}
}

// WithLogger sets the logger, by default nothing is logged.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = l
	}
}

// WithTracer attaches a Tracer that is informed of every executed
// instruction.
func WithTracer(t Tracer) Opt {
	return func(m *Machine) {
		m.tracer = t
	}
}

// WithState restores a state previously produced by Machine.Save.
// The state is applied after any images, entry point or stack
// pointer, so it takes precedence over them.
func WithState(b []byte) Opt {
	return func(m *Machine) {
		m.state = b
	}
}
