package hw

import (
	"fmt"
	"io"

	"moss/emu/log"
	"moss/hw/hwio"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request / BRK
)

// StackBase is the bottom of the fixed stack page. The effective stack
// address is always StackBase | SP.
const StackBase = uint16(0x0100)

type CPU struct {
	Bus *hwio.Table

	// Non-nil when execution tracing is enabled.
	tracer *tracer

	Cycles int64 // CPU cycles

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// OpCode is the most recently fetched opcode byte.
	OpCode uint8

	// interrupt handling. intFlag is recomputed at the end of every bus
	// cycle; prevIntFlag lags it by one cycle, which is what makes
	// interrupt polling trail the interrupt lines by one cycle like the
	// real chip.
	irqPending  bool
	nmiPending  bool
	intFlag     bool
	prevIntFlag bool

	halted bool
}

// NewCPU creates a new CPU at power-up state, transacting on bus.
func NewCPU(bus *hwio.Table) *CPU {
	return &CPU{
		Bus: bus,
		A:   0x00,
		X:   0x00,
		Y:   0x00,
		SP:  0xFD,
		P:   IntDisable,
		PC:  0x0000,
	}
}

// Reset puts the CPU in its post-reset state: the stack pointer holds 0xFD
// (the hardware value after the reset sequence's three pushes), interrupts
// are disabled, pending interrupts are dropped and PC is loaded from the
// reset vector. Nothing is pushed and no cycle is consumed.
func (c *CPU) Reset() {
	c.A = 0x00
	c.X = 0x00
	c.Y = 0x00
	c.SP = 0xFD
	c.P = IntDisable

	c.irqPending = false
	c.nmiPending = false
	c.intFlag = false
	c.prevIntFlag = false
	c.halted = false
	c.Cycles = 0

	// Directly peek the bus to avoid side effects.
	c.PC = hwio.Peek16(c.Bus, ResetVector)
}

// OpcodeError reports the execution of an opcode outside the documented
// instruction set. PC has already advanced past the offending byte.
type OpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unsupported op code %02X (PC:$%04X)", e.Opcode, e.PC)
}

// Step executes the instruction at PC, then services a pending interrupt if
// the interrupt condition was latched during the instruction. It returns
// once both have completed.
func (c *CPU) Step() error {
	c.traceOp()

	opcode := c.fetch8()
	c.OpCode = opcode
	op := ops[opcode]
	if op == nil {
		return &OpcodeError{Opcode: opcode, PC: c.PC}
	}
	op(c)

	if c.prevIntFlag {
		c.interrupt()
	}
	return nil
}

// Run steps the CPU until ncycles have elapsed, or until it halts on an
// unsupported opcode.
func (c *CPU) Run(ncycles int64) {
	until := c.Cycles + ncycles
	for c.Cycles < until && !c.halted {
		if err := c.Step(); err != nil {
			c.halted = true
		}
	}

	if c.halted {
		log.ModCPU.WarnZ("CPU halted").
			Hex16("PC", c.PC).
			Hex8("opcode", c.OpCode).
			End()
	}
}

func (c *CPU) IsHalted() bool {
	return c.halted
}

/* cycle accounting */

// tick consumes one internal (non-bus) cycle.
func (c *CPU) tick() {
	c.Cycles++
	c.pollInterrupts()
}

// Read8 performs one read bus cycle.
func (c *CPU) Read8(addr uint16) uint8 {
	val := c.Bus.Read8(addr, false)
	c.tick()
	return val
}

// Write8 performs one write bus cycle.
func (c *CPU) Write8(addr uint16, val uint8) {
	c.Bus.Write8(addr, val)
	c.tick()
}

func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Peek8 reads memory without consuming a cycle (program loading, tests,
// tracing).
func (c *CPU) Peek8(addr uint16) uint8 {
	return c.Bus.Peek8(addr)
}

// Poke8 writes memory without consuming a cycle.
func (c *CPU) Poke8(addr uint16, val uint8) {
	c.Bus.Write8(addr, val)
}

// fetch8 reads the byte at PC and advances PC past it.
func (c *CPU) fetch8() uint8 {
	v := c.Read8(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.Write8(StackBase+uint16(c.SP), val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Read8(StackBase + uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* interrupt handling */

// RaiseIRQ asserts the maskable interrupt line. The line stays asserted
// until ClearIRQ: IRQ is level-sensitive.
func (c *CPU) RaiseIRQ() { c.irqPending = true }

// ClearIRQ releases the maskable interrupt line.
func (c *CPU) ClearIRQ() { c.irqPending = false }

// RaiseNMI signals a non-maskable interrupt edge. The pending flag is
// cleared when the NMI gets serviced.
func (c *CPU) RaiseNMI() { c.nmiPending = true }

// pollInterrupts runs at the end of every cycle. The one-cycle lag between
// prevIntFlag and intFlag is architectural: the interrupt lines are sampled
// at the end of the second-to-last cycle of an instruction, not the last.
func (c *CPU) pollInterrupts() {
	c.prevIntFlag = c.intFlag
	c.intFlag = c.nmiPending || (c.irqPending && !c.P.I())
}

// interrupt runs the 7-cycle interrupt sequence. NMI has priority over IRQ.
// The pushed status image has the B bit clear, distinguishing a hardware
// interrupt from BRK/PHP.
func (c *CPU) interrupt() {
	c.Read8(c.PC) // dummy reads
	c.Read8(c.PC)

	c.push16(c.PC)

	p := (c.P | Reserved) & ^Break
	c.push8(uint8(p))
	c.P.set(IntDisable)

	if c.nmiPending {
		c.nmiPending = false
		c.PC = c.Read16(NMIVector)
	} else {
		c.PC = c.Read16(IRQVector)
	}

	c.prevIntFlag = false
}

/* tracing */

// SetTraceOutput writes one line per executed instruction to w.
func (c *CPU) SetTraceOutput(w io.Writer) {
	c.tracer = &tracer{w: w, cpu: c}
}

// SetJSONTraceOutput is like SetTraceOutput with JSON-lines output.
func (c *CPU) SetJSONTraceOutput(w io.Writer) {
	c.tracer = &tracer{w: w, cpu: c, json: true}
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write(cpuState{
			A:     c.A,
			X:     c.X,
			Y:     c.Y,
			P:     c.P,
			SP:    c.SP,
			Clock: c.Cycles,
			PC:    c.PC,
		})
	}
}

// AddLogContext implements log.Context: every log entry emitted while the
// CPU runs carries the current PC and cycle count.
func (c *CPU) AddLogContext(e *log.EntryZ) {
	e.Hex16("pc", c.PC).Int("cyc", c.Cycles)
}
