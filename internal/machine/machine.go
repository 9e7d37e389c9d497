// Package machine hosts an SM83 instruction core: it owns the memory
// buffer, runs the fetch/decode/execute loop and provides snapshots
// of the machine for saving and tracing.
package machine

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/decoder"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// AddressSpace is the number of bytes addressable by the CPU.
	AddressSpace = 0x10000
)

var (
	// ErrPCOutOfRange is returned when the program counter points
	// outside of memory.
	ErrPCOutOfRange = errors.New("program counter outside memory")
	// ErrFaulted is returned by Step once an instruction has faulted.
	ErrFaulted = errors.New("machine has faulted")
	// ErrImageTooLarge is returned when an image does not fit in memory.
	ErrImageTooLarge = errors.New("image does not fit in memory")
	// ErrMemorySize is returned for a memory size of zero or larger
	// than the address space.
	ErrMemorySize = errors.New("invalid memory size")
)

// Tracer is informed of every instruction the machine executes.
// Implementations must not block.
type Tracer interface {
	Trace(step uint64, instr cpu.Instruction, regs cpu.Registers)
}

type image struct {
	data []byte
	at   uint16
}

// Machine represents a CPU attached to a flat memory buffer.
type Machine struct {
	CPU    *cpu.CPU
	Memory []byte

	log.Logger

	tracer Tracer
	steps  uint64
	fault  error

	// applied by New
	memorySize   int
	images       []image
	entryPoint   *uint16
	stackPointer *uint16
	state        []byte
}

// New returns a new Machine, with every register and every byte of
// memory cleared before the options are applied.
func New(opts ...Opt) (*Machine, error) {
	m := &Machine{
		CPU:        cpu.NewCPU(),
		Logger:     log.NewNullLogger(),
		memorySize: AddressSpace,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.memorySize <= 0 || m.memorySize > AddressSpace {
		return nil, fmt.Errorf("%d bytes: %w", m.memorySize, ErrMemorySize)
	}
	m.Memory = make([]byte, m.memorySize)

	for _, img := range m.images {
		if int(img.at)+len(img.data) > len(m.Memory) {
			return nil, fmt.Errorf("%d bytes at $%04X: %w", len(img.data), img.at, ErrImageTooLarge)
		}
		copy(m.Memory[img.at:], img.data)
		m.Debugf("loaded %d byte image at $%04X", len(img.data), img.at)
	}
	if m.entryPoint != nil {
		m.CPU.PC = *m.entryPoint
	}
	if m.stackPointer != nil {
		m.CPU.SP = *m.stackPointer
	}
	if m.state != nil {
		if err := m.Restore(m.state); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Step decodes and executes the instruction at the program counter.
//
// A memory fault raised by the instruction is returned as a
// *cpu.MemoryFault, after which the machine refuses to step again.
func (m *Machine) Step() (err error) {
	if m.fault != nil {
		return fmt.Errorf("%w: %s", ErrFaulted, m.fault)
	}

	pc := m.CPU.PC
	if int(pc) >= len(m.Memory) {
		return fmt.Errorf("$%04X: %w", pc, ErrPCOutOfRange)
	}

	instr, length, err := decoder.Decode(m.Memory, pc)
	if err != nil {
		return err
	}
	m.CPU.PC = pc + length

	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*cpu.MemoryFault)
			if !ok {
				panic(r)
			}
			m.fault = fault
			m.Errorf("$%04X %s: %s (%s)", pc, instr, fault, types.Region(fault.Address))
			err = fault
		}
	}()
	m.CPU.Execute(instr, m.Memory)
	m.steps++

	m.Debugf("$%04X %-16s %s", pc, instr, m.CPU.Registers)
	if m.tracer != nil {
		m.tracer.Trace(m.steps, instr, m.CPU.Registers)
	}

	return nil
}

// Run steps the machine until limit instructions have executed or an
// error occurs, returning the number of instructions executed. A
// limit of zero or less runs until an error.
func (m *Machine) Run(limit int) (int, error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		if err := m.Step(); err != nil {
			return n, err
		}
	}
	return limit, nil
}

// Steps returns the number of instructions executed.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Faulted returns the memory fault that stopped the machine, if any.
func (m *Machine) Faulted() error {
	return m.fault
}

// Registers returns a copy of the register file.
func (m *Machine) Registers() cpu.Registers {
	return m.CPU.Snapshot()
}

// Fingerprint hashes the registers and memory. Two machines with the
// same fingerprint are, barring collisions, in the same state.
func (m *Machine) Fingerprint() uint64 {
	s := types.NewState()
	m.CPU.Save(s)

	h := xxhash.New()
	h.Write(s.Bytes())
	h.Write(m.Memory)
	return h.Sum64()
}

var _ types.Stater = (*Machine)(nil)

// Save writes the registers, step counter and memory to s.
func (m *Machine) Save(s *types.State) {
	m.CPU.Save(s)
	s.Write64(m.steps)
	s.Write64(uint64(len(m.Memory)))
	s.WriteData(m.Memory)
}

// Load restores the machine from s. The machine is only modified
// once the whole state has been decoded; a short state or one
// describing an impossible memory size is reported by s.Err and
// leaves the machine as it was.
func (m *Machine) Load(s *types.State) {
	c := cpu.NewCPU()
	c.Load(s)
	steps := s.Read64()
	size := s.Read64()
	if s.Err() != nil {
		return
	}
	if size == 0 || size > AddressSpace {
		s.Fail(fmt.Errorf("%w: memory size %d", types.ErrBadState, size))
		return
	}

	memory := make([]byte, size)
	s.ReadData(memory)
	if s.Err() != nil {
		return
	}

	m.CPU.Registers = c.Registers
	m.steps = steps
	if len(memory) == len(m.Memory) {
		copy(m.Memory, memory)
	} else {
		m.Memory = memory
	}
	m.fault = nil
}

// Restore loads a state produced by Save.
func (m *Machine) Restore(b []byte) error {
	s := types.StateFromBytes(b)
	m.Load(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	m.Debugf("restored state at $%04X after %d steps", m.CPU.PC, m.steps)
	return nil
}

// Bytes returns the machine state as produced by Save.
func (m *Machine) Bytes() []byte {
	s := types.NewState()
	m.Save(s)
	return s.Bytes()
}
