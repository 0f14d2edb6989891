package hw

// add implements ADC in both binary and decimal mode. In decimal mode each
// nibble is a decimal digit: the nibbles are added separately with a decimal
// adjust and the carry propagated between them, which is what the NMOS chip
// does (no string juggling, and the undocumented V flag falls out of the
// binary rule applied to the adjusted intermediate).
func add(cpu *CPU, val uint8) {
	acc := uint16(cpu.A)
	op := uint16(val)
	carry := uint16(b2i(cpu.P.C()))

	if !cpu.P.D() {
		sum := acc + op + carry
		cpu.P.checkCV(cpu.A, val, sum)
		cpu.setreg(&cpu.A, uint8(sum))
		return
	}

	lo := (acc & 0x0F) + (op & 0x0F) + carry
	var carrylo uint16
	if lo >= 0x0A {
		carrylo = 0x10
		lo -= 0x0A
	}

	hi := (acc & 0xF0) + (op & 0xF0) + carrylo
	if hi >= 0xA0 {
		cpu.P.set(Carry)
		hi -= 0xA0
	} else {
		cpu.P.clear(Carry)
	}

	sum := hi | lo
	cpu.P.write(Overflow, (acc^sum)&0x80 != 0 && (acc^op)&0x80 == 0)
	cpu.setreg(&cpu.A, uint8(sum))
}

// sub implements SBC. The binary form is ADC of the complemented operand;
// decimal mode runs the nibble subtraction with decimal adjust.
func sub(cpu *CPU, val uint8) {
	if !cpu.P.D() {
		add(cpu, val^0xFF)
		return
	}

	acc := uint16(cpu.A)
	op := uint16(val)
	carry := uint16(b2i(cpu.P.C()))

	lo := 0x0F + (acc & 0x0F) - (op & 0x0F) + carry
	var carrylo uint16
	if lo < 0x10 {
		lo -= 0x06
	} else {
		lo -= 0x10
		carrylo = 0x10
	}

	hi := 0xF0 + (acc & 0xF0) - (op & 0xF0) + carrylo
	if hi < 0x100 {
		cpu.P.clear(Carry)
		hi -= 0x60
	} else {
		cpu.P.set(Carry)
		hi -= 0x100
	}

	diff := hi | lo
	cpu.P.write(Overflow, (acc^diff)&0x80 != 0 && (acc^op)&0x80 != 0)
	cpu.setreg(&cpu.A, uint8(diff))
}
