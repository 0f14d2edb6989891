package hw

import (
	"io"

	"github.com/go-faster/jx"
)

// cpuState stores the CPU state for the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock int64
}

type tracer struct {
	cpu  *CPU
	w    io.Writer
	json bool
	enc  jx.Encoder
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// write the execution trace for the current instruction.
func (t *tracer) write(state cpuState) {
	if t.json {
		t.writeJSON(state)
		return
	}

	const totalLen = 76
	buf := make([]byte, totalLen)

	dis := t.cpu.Disasm(state.PC)
	buf = append(buf[:0], dis.Bytes()...)
	off := min(totalLen, len(buf))
	buf = buf[:max(totalLen, len(buf))]

	for off < 49 {
		buf[off] = ' '
		off++
	}

	buf[off] = 'A'
	off++
	buf[off] = ':'
	off++
	hexEncode(buf[off:], state.A)
	off += 2
	buf[off] = ' '
	off++

	buf[off] = 'X'
	off++
	buf[off] = ':'
	off++
	hexEncode(buf[off:], state.X)
	off += 2
	buf[off] = ' '
	off++

	buf[off] = 'Y'
	off++
	buf[off] = ':'
	off++
	hexEncode(buf[off:], state.Y)
	off += 2
	buf[off] = ' '
	off++

	buf[off] = 'P'
	off++
	buf[off] = ':'
	off++
	hexEncode(buf[off:], byte(state.P))
	off += 2
	buf[off] = ' '
	off++

	buf[off] = 'S'
	off++
	buf[off] = ':'
	off++
	hexEncode(buf[off:], state.SP)
	off += 2
	buf[off] = ' '
	off++

	buf = appendInt(buf[:off], "CYC:", state.Clock)
	buf = append(buf, '\n')
	t.w.Write(buf)
}

func appendInt(buf []byte, prefix string, v int64) []byte {
	buf = append(buf, prefix...)
	if v == 0 {
		return append(buf, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(buf, tmp[i:]...)
}

// writeJSON emits the same trace as a JSON object per line.
func (t *tracer) writeJSON(state cpuState) {
	dis := t.cpu.Disasm(state.PC)

	e := &t.enc
	e.Reset()
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(state.PC)
	e.FieldStart("op")
	e.Str(dis.String())
	e.FieldStart("a")
	e.UInt8(state.A)
	e.FieldStart("x")
	e.UInt8(state.X)
	e.FieldStart("y")
	e.UInt8(state.Y)
	e.FieldStart("p")
	e.UInt8(uint8(state.P))
	e.FieldStart("sp")
	e.UInt8(state.SP)
	e.FieldStart("cyc")
	e.Int64(state.Clock)
	e.ObjEnd()

	t.w.Write(append(e.Bytes(), '\n'))
}

// Bytes returns the string representation of a DisasmOp, this is an
// optimized version, suitable for the execution tracer.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, totalLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 16; off++ {
		buf[off] = ' '
	}

	off += copy(buf[off:], []byte(d.Opcode))
	buf[off] = ' '
	off++

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) > totalLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:totalLen]
		for i := off; i < totalLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}
