package hw

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"moss/hw/hwio"
	"moss/prog"
)

func hasPanicked(f func()) (yes bool, msg any) {
	defer func() {
		msg = recover()
		if msg != nil {
			yes = true
		}
	}()
	f()
	return yes, msg
}

/* cpu specific testing helpers */

func wantMem8(t *testing.T, cpu *CPU, addr uint16, want uint8) {
	t.Helper()

	if got := cpu.Peek8(addr); got != want {
		t.Errorf("$%04X = %02X want %02X", addr, got, want)
	}
}

func wantMem(t *testing.T, cpu *CPU, dl prog.DumpLine) {
	t.Helper()

	mem := []byte{}
	for i := range dl.Bytes {
		mem = append(mem, cpu.Peek8(dl.Off+uint16(i)))
	}

	if !bytes.Equal(mem, dl.Bytes) {
		t.Errorf("mem mismatch at 0x%04x.\n%s", dl.Off, cmp.Diff(mem, dl.Bytes))
	}
}

func runAndCheckState(t *testing.T, cpu *CPU, ncycles int64, states ...any) {
	t.Helper()

	if len(states)%2 != 0 {
		panic("odd number of states")
	}

	checkbool := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=%d, want %d", name, got, want)
		}
	}
	checkuint8 := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%02X, want $%02X", name, got, want)
		}
	}
	checkuint16 := func(name string, got, want uint16) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%04X, want $%04X", name, got, want)
		}
	}

	cpu.Run(ncycles)

	for i := 0; i < len(states); i += 2 {
		s := states[i].(string)
		switch {
		case s == "A":
			checkuint8("A", cpu.A, uint8(states[i+1].(int)))
		case s == "X":
			checkuint8("X", cpu.X, uint8(states[i+1].(int)))
		case s == "Y":
			checkuint8("Y", cpu.Y, uint8(states[i+1].(int)))
		case s == "PC":
			checkuint16("PC", cpu.PC, uint16(states[i+1].(int)))
		case s == "SP":
			checkuint8("SP", cpu.SP, uint8(states[i+1].(int)))
		case s == "CYC":
			if got, want := cpu.Cycles, int64(states[i+1].(int)); got != want {
				t.Errorf("got CYC=%d, want %d", got, want)
			}
		case s == "P":
			if got, want := uint8(cpu.P), uint8(states[i+1].(int)); got != want {
				t.Errorf("got P=$%02X(%s), want $%02X(%s)", got, P(got), want, P(want))
			}
		case len(s) > 1 && s[0] == 'P':
			for j := 1; j < len(s); j++ {
				wantbit := uint8(states[i+1].(int))
				switch s[j] {
				case 'n':
					checkbool("Pn", b2i(cpu.P.N()), wantbit)
				case 'v':
					checkbool("Pv", b2i(cpu.P.V()), wantbit)
				case 'b':
					checkbool("Pb", b2i(cpu.P.B()), wantbit)
				case 'd':
					checkbool("Pd", b2i(cpu.P.D()), wantbit)
				case 'i':
					checkbool("Pi", b2i(cpu.P.I()), wantbit)
				case 'z':
					checkbool("Pz", b2i(cpu.P.Z()), wantbit)
				case 'c':
					checkbool("Pc", b2i(cpu.P.C()), wantbit)
				default:
					panic("unknown P bit: " + string(s[j]))
				}
			}
		case s == "mem":
			lines, err := prog.ParseDump(states[i+1].(string))
			if err != nil {
				t.Fatal(err)
			}
			for _, line := range lines {
				wantMem(t, cpu, line)
			}

		default:
			panic("unknown state: " + s)
		}
	}

	if t.Failed() {
		t.FailNow()
	}
}

// newCPU returns a CPU wired to a full, flat 64 KiB of RAM.
func newCPU() *CPU {
	bus := hwio.NewTable("cputest")
	bus.MapMemorySlice(0x0000, 0xFFFF, make([]uint8, 0x10000), false)
	return NewCPU(bus)
}

// loadCPU pokes a program at org, points the reset vector at entry and
// resets the CPU.
func loadCPU(tb testing.TB, org uint16, entry uint16, program ...uint8) *CPU {
	tb.Helper()

	cpu := newCPU()
	for i, b := range program {
		cpu.Poke8(org+uint16(i), b)
	}
	cpu.Poke8(ResetVector, uint8(entry&0xff))
	cpu.Poke8(ResetVector+1, uint8(entry>>8))
	cpu.Reset()
	return cpu
}

// loadCPUWith loads a CPU with a memory dump, mapping each dump line as its
// own bank.
func loadCPUWith(tb testing.TB, dump string) *CPU {
	tb.Helper()

	mem := hwio.NewTable("cputest")
	lines, err := prog.ParseDump(dump)
	if err != nil {
		tb.Fatal(err)
	}
	for _, line := range lines {
		buf := make([]uint8, nextpow2(uint64(len(line.Bytes))))
		copy(buf, line.Bytes)
		tb.Logf("mapping $%04X: % X", line.Off, line.Bytes)
		mem.MapMemorySlice(line.Off, line.Off+uint16(len(buf))-1, buf, false)
	}

	cpu := NewCPU(mem)
	cpu.Reset()
	return cpu
}

func nextpow2(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}
