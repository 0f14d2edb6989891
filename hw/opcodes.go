package hw

// 6502 opcodes table. Entries for opcodes outside the documented
// instruction set are nil and surface as *OpcodeError from Step.
var ops = [256]func(cpu *CPU){
	0x00: BRK,
	0x01: ORAizx,
	0x05: ORAzp,
	0x06: ASLzp,
	0x08: PHP,
	0x09: ORAimm,
	0x0A: ASLacc,
	0x0D: ORAabs,
	0x0E: ASLabs,
	0x10: BPL,
	0x11: ORAizy,
	0x15: ORAzpx,
	0x16: ASLzpx,
	0x18: CLC,
	0x19: ORAaby,
	0x1D: ORAabx,
	0x1E: ASLabx,
	0x20: JSR,
	0x21: ANDizx,
	0x24: BITzp,
	0x25: ANDzp,
	0x26: ROLzp,
	0x28: PLP,
	0x29: ANDimm,
	0x2A: ROLacc,
	0x2C: BITabs,
	0x2D: ANDabs,
	0x2E: ROLabs,
	0x30: BMI,
	0x31: ANDizy,
	0x35: ANDzpx,
	0x36: ROLzpx,
	0x38: SEC,
	0x39: ANDaby,
	0x3D: ANDabx,
	0x3E: ROLabx,
	0x40: RTI,
	0x41: EORizx,
	0x45: EORzp,
	0x46: LSRzp,
	0x48: PHA,
	0x49: EORimm,
	0x4A: LSRacc,
	0x4C: JMPabs,
	0x4D: EORabs,
	0x4E: LSRabs,
	0x50: BVC,
	0x51: EORizy,
	0x55: EORzpx,
	0x56: LSRzpx,
	0x58: CLI,
	0x59: EORaby,
	0x5D: EORabx,
	0x5E: LSRabx,
	0x60: RTS,
	0x61: ADCizx,
	0x65: ADCzp,
	0x66: RORzp,
	0x68: PLA,
	0x69: ADCimm,
	0x6A: RORacc,
	0x6C: JMPind,
	0x6D: ADCabs,
	0x6E: RORabs,
	0x70: BVS,
	0x71: ADCizy,
	0x75: ADCzpx,
	0x76: RORzpx,
	0x78: SEI,
	0x79: ADCaby,
	0x7D: ADCabx,
	0x7E: RORabx,
	0x81: STAizx,
	0x84: STYzp,
	0x85: STAzp,
	0x86: STXzp,
	0x88: DEY,
	0x8A: TXA,
	0x8C: STYabs,
	0x8D: STAabs,
	0x8E: STXabs,
	0x90: BCC,
	0x91: STAizy,
	0x94: STYzpx,
	0x95: STAzpx,
	0x96: STXzpy,
	0x98: TYA,
	0x99: STAaby,
	0x9A: TXS,
	0x9D: STAabx,
	0xA0: LDYimm,
	0xA1: LDAizx,
	0xA2: LDXimm,
	0xA4: LDYzp,
	0xA5: LDAzp,
	0xA6: LDXzp,
	0xA8: TAY,
	0xA9: LDAimm,
	0xAA: TAX,
	0xAC: LDYabs,
	0xAD: LDAabs,
	0xAE: LDXabs,
	0xB0: BCS,
	0xB1: LDAizy,
	0xB4: LDYzpx,
	0xB5: LDAzpx,
	0xB6: LDXzpy,
	0xB8: CLV,
	0xB9: LDAaby,
	0xBA: TSX,
	0xBC: LDYabx,
	0xBD: LDAabx,
	0xBE: LDXaby,
	0xC0: CPYimm,
	0xC1: CMPizx,
	0xC4: CPYzp,
	0xC5: CMPzp,
	0xC6: DECzp,
	0xC8: INY,
	0xC9: CMPimm,
	0xCA: DEX,
	0xCC: CPYabs,
	0xCD: CMPabs,
	0xCE: DECabs,
	0xD0: BNE,
	0xD1: CMPizy,
	0xD5: CMPzpx,
	0xD6: DECzpx,
	0xD8: CLD,
	0xD9: CMPaby,
	0xDD: CMPabx,
	0xDE: DECabx,
	0xE0: CPXimm,
	0xE1: SBCizx,
	0xE4: CPXzp,
	0xE5: SBCzp,
	0xE6: INCzp,
	0xE8: INX,
	0xE9: SBCimm,
	0xEA: NOP,
	0xEC: CPXabs,
	0xED: SBCabs,
	0xEE: INCabs,
	0xF0: BEQ,
	0xF1: SBCizy,
	0xF5: SBCzpx,
	0xF6: INCzpx,
	0xF8: SED,
	0xF9: SBCaby,
	0xFD: SBCabx,
	0xFE: INCabx,
}

// 00
func BRK(cpu *CPU) {
	_ = cpu.Read8(cpu.PC) // dummy read of the padding byte

	cpu.push16(cpu.PC + 1)

	p := cpu.P | Break | Reserved
	if cpu.nmiPending {
		// NMI hijacks an in-flight BRK.
		cpu.nmiPending = false
		cpu.push8(uint8(p))
		cpu.P.set(IntDisable)
		cpu.PC = cpu.Read16(NMIVector)
	} else {
		cpu.push8(uint8(p))
		cpu.P.set(IntDisable)
		cpu.PC = cpu.Read16(IRQVector)
	}

	// The first instruction of the handler runs before any pending
	// interrupt gets serviced.
	cpu.prevIntFlag = false
}

// 01
func ORAizx(cpu *CPU) {
	oper := cpu.izx()
	ora(cpu, cpu.Read8(oper))
}

// 05
func ORAzp(cpu *CPU) {
	oper := cpu.zpg()
	ora(cpu, cpu.Read8(oper))
}

// 06
func ASLzp(cpu *CPU) {
	rmw(cpu, cpu.zpg(), asl)
}

// 08
func PHP(cpu *CPU) {
	cpu.imp()
	cpu.push8(uint8(cpu.P | Break | Reserved))
}

// 09
func ORAimm(cpu *CPU) {
	ora(cpu, cpu.fetch8())
}

// 0A
func ASLacc(cpu *CPU) {
	cpu.acc()
	asl(cpu, &cpu.A)
}

// 0D
func ORAabs(cpu *CPU) {
	oper := cpu.abs()
	ora(cpu, cpu.Read8(oper))
}

// 0E
func ASLabs(cpu *CPU) {
	rmw(cpu, cpu.abs(), asl)
}

// 10
func BPL(cpu *CPU) {
	cpu.branch(!cpu.P.N())
}

// 11
func ORAizy(cpu *CPU) {
	oper := cpu.izy(false)
	ora(cpu, cpu.Read8(oper))
}

// 15
func ORAzpx(cpu *CPU) {
	oper := cpu.zpx()
	ora(cpu, cpu.Read8(oper))
}

// 16
func ASLzpx(cpu *CPU) {
	rmw(cpu, cpu.zpx(), asl)
}

// 18
func CLC(cpu *CPU) {
	cpu.imp()
	cpu.P.clear(Carry)
}

// 19
func ORAaby(cpu *CPU) {
	oper := cpu.aby(false)
	ora(cpu, cpu.Read8(oper))
}

// 1D
func ORAabx(cpu *CPU) {
	oper := cpu.abx(false)
	ora(cpu, cpu.Read8(oper))
}

// 1E
func ASLabx(cpu *CPU) {
	rmw(cpu, cpu.abx(true), asl)
}

// 20
func JSR(cpu *CPU) {
	oper := cpu.fetch16()
	cpu.tick() // internal cycle while the return address is prepared
	cpu.push16(cpu.PC - 1)
	cpu.PC = oper
}

// 21
func ANDizx(cpu *CPU) {
	oper := cpu.izx()
	and(cpu, cpu.Read8(oper))
}

// 24
func BITzp(cpu *CPU) {
	oper := cpu.zpg()
	bit(cpu, cpu.Read8(oper))
}

// 25
func ANDzp(cpu *CPU) {
	oper := cpu.zpg()
	and(cpu, cpu.Read8(oper))
}

// 26
func ROLzp(cpu *CPU) {
	rmw(cpu, cpu.zpg(), rol)
}

// 28
func PLP(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(StackBase + uint16(cpu.SP)) // dummy read while SP increments
	p := cpu.pull8()
	const mask = 0b11001111 // B and U bits are not restored
	cpu.P = P(copybits(uint8(cpu.P), p, mask))
}

// 29
func ANDimm(cpu *CPU) {
	and(cpu, cpu.fetch8())
}

// 2A
func ROLacc(cpu *CPU) {
	cpu.acc()
	rol(cpu, &cpu.A)
}

// 2C
func BITabs(cpu *CPU) {
	oper := cpu.abs()
	bit(cpu, cpu.Read8(oper))
}

// 2D
func ANDabs(cpu *CPU) {
	oper := cpu.abs()
	and(cpu, cpu.Read8(oper))
}

// 2E
func ROLabs(cpu *CPU) {
	rmw(cpu, cpu.abs(), rol)
}

// 30
func BMI(cpu *CPU) {
	cpu.branch(cpu.P.N())
}

// 31
func ANDizy(cpu *CPU) {
	oper := cpu.izy(false)
	and(cpu, cpu.Read8(oper))
}

// 35
func ANDzpx(cpu *CPU) {
	oper := cpu.zpx()
	and(cpu, cpu.Read8(oper))
}

// 36
func ROLzpx(cpu *CPU) {
	rmw(cpu, cpu.zpx(), rol)
}

// 38
func SEC(cpu *CPU) {
	cpu.imp()
	cpu.P.set(Carry)
}

// 39
func ANDaby(cpu *CPU) {
	oper := cpu.aby(false)
	and(cpu, cpu.Read8(oper))
}

// 3D
func ANDabx(cpu *CPU) {
	oper := cpu.abx(false)
	and(cpu, cpu.Read8(oper))
}

// 3E
func ROLabx(cpu *CPU) {
	rmw(cpu, cpu.abx(true), rol)
}

// 40
func RTI(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(StackBase + uint16(cpu.SP)) // dummy read while SP increments
	p := cpu.pull8()
	const mask = 0b11001111 // B and U bits are not restored
	cpu.P = P(copybits(uint8(cpu.P), p, mask))
	cpu.PC = cpu.pull16()
}

// 41
func EORizx(cpu *CPU) {
	oper := cpu.izx()
	eor(cpu, cpu.Read8(oper))
}

// 45
func EORzp(cpu *CPU) {
	oper := cpu.zpg()
	eor(cpu, cpu.Read8(oper))
}

// 46
func LSRzp(cpu *CPU) {
	rmw(cpu, cpu.zpg(), lsr)
}

// 48
func PHA(cpu *CPU) {
	cpu.imp()
	cpu.push8(cpu.A)
}

// 49
func EORimm(cpu *CPU) {
	eor(cpu, cpu.fetch8())
}

// 4A
func LSRacc(cpu *CPU) {
	cpu.acc()
	lsr(cpu, &cpu.A)
}

// 4C
func JMPabs(cpu *CPU) {
	cpu.PC = cpu.fetch16()
}

// 4D
func EORabs(cpu *CPU) {
	oper := cpu.abs()
	eor(cpu, cpu.Read8(oper))
}

// 4E
func LSRabs(cpu *CPU) {
	rmw(cpu, cpu.abs(), lsr)
}

// 50
func BVC(cpu *CPU) {
	cpu.branch(!cpu.P.V())
}

// 51
func EORizy(cpu *CPU) {
	oper := cpu.izy(false)
	eor(cpu, cpu.Read8(oper))
}

// 55
func EORzpx(cpu *CPU) {
	oper := cpu.zpx()
	eor(cpu, cpu.Read8(oper))
}

// 56
func LSRzpx(cpu *CPU) {
	rmw(cpu, cpu.zpx(), lsr)
}

// 58
func CLI(cpu *CPU) {
	cpu.imp()
	cpu.P.clear(IntDisable)
}

// 59
func EORaby(cpu *CPU) {
	oper := cpu.aby(false)
	eor(cpu, cpu.Read8(oper))
}

// 5D
func EORabx(cpu *CPU) {
	oper := cpu.abx(false)
	eor(cpu, cpu.Read8(oper))
}

// 5E
func LSRabx(cpu *CPU) {
	rmw(cpu, cpu.abx(true), lsr)
}

// 60
func RTS(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(StackBase + uint16(cpu.SP)) // dummy read while SP increments
	cpu.PC = cpu.pull16()
	_ = cpu.fetch8() // discarded; leaves PC past the JSR operand
}

// 61
func ADCizx(cpu *CPU) {
	oper := cpu.izx()
	add(cpu, cpu.Read8(oper))
}

// 65
func ADCzp(cpu *CPU) {
	oper := cpu.zpg()
	add(cpu, cpu.Read8(oper))
}

// 66
func RORzp(cpu *CPU) {
	rmw(cpu, cpu.zpg(), ror)
}

// 68
func PLA(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(StackBase + uint16(cpu.SP)) // dummy read while SP increments
	cpu.setreg(&cpu.A, cpu.pull8())
}

// 69
func ADCimm(cpu *CPU) {
	add(cpu, cpu.fetch8())
}

// 6A
func RORacc(cpu *CPU) {
	cpu.acc()
	ror(cpu, &cpu.A)
}

// 6C
func JMPind(cpu *CPU) {
	cpu.PC = cpu.ind()
}

// 6D
func ADCabs(cpu *CPU) {
	oper := cpu.abs()
	add(cpu, cpu.Read8(oper))
}

// 6E
func RORabs(cpu *CPU) {
	rmw(cpu, cpu.abs(), ror)
}

// 70
func BVS(cpu *CPU) {
	cpu.branch(cpu.P.V())
}

// 71
func ADCizy(cpu *CPU) {
	oper := cpu.izy(false)
	add(cpu, cpu.Read8(oper))
}

// 75
func ADCzpx(cpu *CPU) {
	oper := cpu.zpx()
	add(cpu, cpu.Read8(oper))
}

// 76
func RORzpx(cpu *CPU) {
	rmw(cpu, cpu.zpx(), ror)
}

// 78
func SEI(cpu *CPU) {
	cpu.imp()
	cpu.P.set(IntDisable)
}

// 79
func ADCaby(cpu *CPU) {
	oper := cpu.aby(false)
	add(cpu, cpu.Read8(oper))
}

// 7D
func ADCabx(cpu *CPU) {
	oper := cpu.abx(false)
	add(cpu, cpu.Read8(oper))
}

// 7E
func RORabx(cpu *CPU) {
	rmw(cpu, cpu.abx(true), ror)
}

// 81
func STAizx(cpu *CPU) {
	cpu.Write8(cpu.izx(), cpu.A)
}

// 84
func STYzp(cpu *CPU) {
	cpu.Write8(cpu.zpg(), cpu.Y)
}

// 85
func STAzp(cpu *CPU) {
	cpu.Write8(cpu.zpg(), cpu.A)
}

// 86
func STXzp(cpu *CPU) {
	cpu.Write8(cpu.zpg(), cpu.X)
}

// 88
func DEY(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.Y, cpu.Y-1)
}

// 8A
func TXA(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.A, cpu.X)
}

// 8C
func STYabs(cpu *CPU) {
	cpu.Write8(cpu.abs(), cpu.Y)
}

// 8D
func STAabs(cpu *CPU) {
	cpu.Write8(cpu.abs(), cpu.A)
}

// 8E
func STXabs(cpu *CPU) {
	cpu.Write8(cpu.abs(), cpu.X)
}

// 90
func BCC(cpu *CPU) {
	cpu.branch(!cpu.P.C())
}

// 91
func STAizy(cpu *CPU) {
	cpu.Write8(cpu.izy(true), cpu.A)
}

// 94
func STYzpx(cpu *CPU) {
	cpu.Write8(cpu.zpx(), cpu.Y)
}

// 95
func STAzpx(cpu *CPU) {
	cpu.Write8(cpu.zpx(), cpu.A)
}

// 96
func STXzpy(cpu *CPU) {
	cpu.Write8(cpu.zpy(), cpu.X)
}

// 98
func TYA(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.A, cpu.Y)
}

// 99
func STAaby(cpu *CPU) {
	cpu.Write8(cpu.aby(true), cpu.A)
}

// 9A
func TXS(cpu *CPU) {
	cpu.imp()
	cpu.SP = cpu.X // TXS is the only transfer that leaves the flags alone
}

// 9D
func STAabx(cpu *CPU) {
	cpu.Write8(cpu.abx(true), cpu.A)
}

// A0
func LDYimm(cpu *CPU) {
	cpu.setreg(&cpu.Y, cpu.fetch8())
}

// A1
func LDAizx(cpu *CPU) {
	oper := cpu.izx()
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// A2
func LDXimm(cpu *CPU) {
	cpu.setreg(&cpu.X, cpu.fetch8())
}

// A4
func LDYzp(cpu *CPU) {
	oper := cpu.zpg()
	cpu.setreg(&cpu.Y, cpu.Read8(oper))
}

// A5
func LDAzp(cpu *CPU) {
	oper := cpu.zpg()
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// A6
func LDXzp(cpu *CPU) {
	oper := cpu.zpg()
	cpu.setreg(&cpu.X, cpu.Read8(oper))
}

// A8
func TAY(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.Y, cpu.A)
}

// A9
func LDAimm(cpu *CPU) {
	cpu.setreg(&cpu.A, cpu.fetch8())
}

// AA
func TAX(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.X, cpu.A)
}

// AC
func LDYabs(cpu *CPU) {
	oper := cpu.abs()
	cpu.setreg(&cpu.Y, cpu.Read8(oper))
}

// AD
func LDAabs(cpu *CPU) {
	oper := cpu.abs()
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// AE
func LDXabs(cpu *CPU) {
	oper := cpu.abs()
	cpu.setreg(&cpu.X, cpu.Read8(oper))
}

// B0
func BCS(cpu *CPU) {
	cpu.branch(cpu.P.C())
}

// B1
func LDAizy(cpu *CPU) {
	oper := cpu.izy(false)
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// B4
func LDYzpx(cpu *CPU) {
	oper := cpu.zpx()
	cpu.setreg(&cpu.Y, cpu.Read8(oper))
}

// B5
func LDAzpx(cpu *CPU) {
	oper := cpu.zpx()
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// B6
func LDXzpy(cpu *CPU) {
	oper := cpu.zpy()
	cpu.setreg(&cpu.X, cpu.Read8(oper))
}

// B8
func CLV(cpu *CPU) {
	cpu.imp()
	cpu.P.clear(Overflow)
}

// B9
func LDAaby(cpu *CPU) {
	oper := cpu.aby(false)
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// BA
func TSX(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.X, cpu.SP)
}

// BC
func LDYabx(cpu *CPU) {
	oper := cpu.abx(false)
	cpu.setreg(&cpu.Y, cpu.Read8(oper))
}

// BD
func LDAabx(cpu *CPU) {
	oper := cpu.abx(false)
	cpu.setreg(&cpu.A, cpu.Read8(oper))
}

// BE
func LDXaby(cpu *CPU) {
	oper := cpu.aby(false)
	cpu.setreg(&cpu.X, cpu.Read8(oper))
}

// C0
func CPYimm(cpu *CPU) {
	compare(cpu, cpu.Y, cpu.fetch8())
}

// C1
func CMPizx(cpu *CPU) {
	oper := cpu.izx()
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// C4
func CPYzp(cpu *CPU) {
	oper := cpu.zpg()
	compare(cpu, cpu.Y, cpu.Read8(oper))
}

// C5
func CMPzp(cpu *CPU) {
	oper := cpu.zpg()
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// C6
func DECzp(cpu *CPU) {
	rmw(cpu, cpu.zpg(), dec)
}

// C8
func INY(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.Y, cpu.Y+1)
}

// C9
func CMPimm(cpu *CPU) {
	compare(cpu, cpu.A, cpu.fetch8())
}

// CA
func DEX(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.X, cpu.X-1)
}

// CC
func CPYabs(cpu *CPU) {
	oper := cpu.abs()
	compare(cpu, cpu.Y, cpu.Read8(oper))
}

// CD
func CMPabs(cpu *CPU) {
	oper := cpu.abs()
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// CE
func DECabs(cpu *CPU) {
	rmw(cpu, cpu.abs(), dec)
}

// D0
func BNE(cpu *CPU) {
	cpu.branch(!cpu.P.Z())
}

// D1
func CMPizy(cpu *CPU) {
	oper := cpu.izy(false)
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// D5
func CMPzpx(cpu *CPU) {
	oper := cpu.zpx()
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// D6
func DECzpx(cpu *CPU) {
	rmw(cpu, cpu.zpx(), dec)
}

// D8
func CLD(cpu *CPU) {
	cpu.imp()
	cpu.P.clear(Decimal)
}

// D9
func CMPaby(cpu *CPU) {
	oper := cpu.aby(false)
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// DD
func CMPabx(cpu *CPU) {
	oper := cpu.abx(false)
	compare(cpu, cpu.A, cpu.Read8(oper))
}

// DE
func DECabx(cpu *CPU) {
	rmw(cpu, cpu.abx(true), dec)
}

// E0
func CPXimm(cpu *CPU) {
	compare(cpu, cpu.X, cpu.fetch8())
}

// E1
func SBCizx(cpu *CPU) {
	oper := cpu.izx()
	sub(cpu, cpu.Read8(oper))
}

// E4
func CPXzp(cpu *CPU) {
	oper := cpu.zpg()
	compare(cpu, cpu.X, cpu.Read8(oper))
}

// E5
func SBCzp(cpu *CPU) {
	oper := cpu.zpg()
	sub(cpu, cpu.Read8(oper))
}

// E6
func INCzp(cpu *CPU) {
	rmw(cpu, cpu.zpg(), inc)
}

// E8
func INX(cpu *CPU) {
	cpu.imp()
	cpu.setreg(&cpu.X, cpu.X+1)
}

// E9
func SBCimm(cpu *CPU) {
	sub(cpu, cpu.fetch8())
}

// EA
func NOP(cpu *CPU) {
	cpu.imp()
}

// EC
func CPXabs(cpu *CPU) {
	oper := cpu.abs()
	compare(cpu, cpu.X, cpu.Read8(oper))
}

// ED
func SBCabs(cpu *CPU) {
	oper := cpu.abs()
	sub(cpu, cpu.Read8(oper))
}

// EE
func INCabs(cpu *CPU) {
	rmw(cpu, cpu.abs(), inc)
}

// F0
func BEQ(cpu *CPU) {
	cpu.branch(cpu.P.Z())
}

// F1
func SBCizy(cpu *CPU) {
	oper := cpu.izy(false)
	sub(cpu, cpu.Read8(oper))
}

// F5
func SBCzpx(cpu *CPU) {
	oper := cpu.zpx()
	sub(cpu, cpu.Read8(oper))
}

// F6
func INCzpx(cpu *CPU) {
	rmw(cpu, cpu.zpx(), inc)
}

// F8
func SED(cpu *CPU) {
	cpu.imp()
	cpu.P.set(Decimal)
}

// F9
func SBCaby(cpu *CPU) {
	oper := cpu.aby(false)
	sub(cpu, cpu.Read8(oper))
}

// FD
func SBCabx(cpu *CPU) {
	oper := cpu.abx(false)
	sub(cpu, cpu.Read8(oper))
}

// FE
func INCabx(cpu *CPU) {
	rmw(cpu, cpu.abx(true), inc)
}

/* opcode helpers */

// setreg writes val into reg and refreshes N and Z, the common tail of
// every load, transfer, pull and increment.
func (cpu *CPU) setreg(reg *uint8, val uint8) {
	*reg = val
	cpu.P.checkNZ(val)
}

// rmw performs the read / dummy write-back / write sequence shared by the
// memory forms of the shift, rotate, increment and decrement instructions.
func rmw(cpu *CPU, oper uint16, f func(*CPU, *uint8)) {
	val := cpu.Read8(oper)
	cpu.Write8(oper, val) // dummy write of the unmodified value
	f(cpu, &val)
	cpu.Write8(oper, val)
}

func and(cpu *CPU, val uint8) {
	cpu.setreg(&cpu.A, cpu.A&val)
}

func ora(cpu *CPU, val uint8) {
	cpu.setreg(&cpu.A, cpu.A|val)
}

func eor(cpu *CPU, val uint8) {
	cpu.setreg(&cpu.A, cpu.A^val)
}

func bit(cpu *CPU, val uint8) {
	cpu.P.write(Zero, cpu.A&val == 0)
	cpu.P.write(Negative, val&(1<<7) != 0)
	cpu.P.write(Overflow, val&(1<<6) != 0)
}

func compare(cpu *CPU, reg, val uint8) {
	cpu.P.checkNZ(reg - val)
	cpu.P.write(Carry, reg >= val)
}

func asl(cpu *CPU, val *uint8) {
	carry := *val & 0x80
	*val <<= 1
	cpu.P.write(Carry, carry != 0)
	cpu.P.checkNZ(*val)
}

func lsr(cpu *CPU, val *uint8) {
	carry := *val & 0x01 // carry is bit 0
	*val >>= 1
	cpu.P.write(Carry, carry != 0)
	cpu.P.checkNZ(*val) // N can't be set, bit 7 is always clear
}

func rol(cpu *CPU, val *uint8) {
	carry := *val & 0x80
	*val <<= 1
	if cpu.P.C() {
		*val |= 1 << 0
	}
	cpu.P.write(Carry, carry != 0)
	cpu.P.checkNZ(*val)
}

func ror(cpu *CPU, val *uint8) {
	carry := *val & 0x01
	*val >>= 1
	if cpu.P.C() {
		*val |= 1 << 7
	}
	cpu.P.write(Carry, carry != 0)
	cpu.P.checkNZ(*val)
}

func inc(cpu *CPU, val *uint8) {
	*val++
	cpu.P.checkNZ(*val)
}

func dec(cpu *CPU, val *uint8) {
	*val--
	cpu.P.checkNZ(*val)
}

// Copy bits from src to dst, using mask to select which bits to copy.
func copybits(dst uint8, src uint8, mask uint8) uint8 {
	return (dst & ^mask) | (src & mask)
}

func pagecrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

/* addressing modes */

// imp performs the dummy read of the byte following a one-byte instruction:
// the 6502 always fetches it, then discards it.
func (cpu *CPU) imp() {
	_ = cpu.Read8(cpu.PC)
}

func (cpu *CPU) acc() {
	_ = cpu.Read8(cpu.PC)
}

func (cpu *CPU) zpg() uint16 {
	return uint16(cpu.fetch8())
}

func (cpu *CPU) zpx() uint16 {
	base := cpu.fetch8()
	_ = cpu.Read8(uint16(base)) // dummy read at the un-indexed address
	return uint16(base + cpu.X)
}

func (cpu *CPU) zpy() uint16 {
	base := cpu.fetch8()
	_ = cpu.Read8(uint16(base)) // dummy read at the un-indexed address
	return uint16(base + cpu.Y)
}

func (cpu *CPU) abs() uint16 {
	return cpu.fetch16()
}

// abx resolves absolute,X. The dummy read at the partially-indexed address
// (high byte not yet fixed up) happens on page cross for read instructions,
// unconditionally when dummy is set (stores and read-modify-writes).
func (cpu *CPU) abx(dummy bool) uint16 {
	base := cpu.fetch16()
	dst := base + uint16(cpu.X)
	if dummy || pagecrossed(base, dst) {
		_ = cpu.Read8(base&0xFF00 | dst&0x00FF)
	}
	return dst
}

func (cpu *CPU) aby(dummy bool) uint16 {
	base := cpu.fetch16()
	dst := base + uint16(cpu.Y)
	if dummy || pagecrossed(base, dst) {
		_ = cpu.Read8(base&0xFF00 | dst&0x00FF)
	}
	return dst
}

// izx resolves (zp,X): the pointer is read, a dummy read happens at the
// un-indexed pointer while X gets added, then the 16-bit address is read
// from the zero page, wrapping within it.
func (cpu *CPU) izx() uint16 {
	ptr := cpu.fetch8()
	_ = cpu.Read8(uint16(ptr))
	return cpu.zpr16(uint16(ptr + cpu.X))
}

// izy resolves (zp),Y with the same page-cross rule as aby.
func (cpu *CPU) izy(dummy bool) uint16 {
	ptr := cpu.fetch8()
	base := cpu.zpr16(uint16(ptr))
	dst := base + uint16(cpu.Y)
	if dummy || pagecrossed(base, dst) {
		_ = cpu.Read8(base&0xFF00 | dst&0x00FF)
	}
	return dst
}

// ind resolves the JMP (addr) operand, reproducing the page-boundary bug:
// when the pointer low byte is 0xFF the high byte is fetched from the start
// of the same page, not the next one.
func (cpu *CPU) ind() uint16 {
	oper := cpu.fetch16()
	lo := cpu.Read8(oper)
	hi := cpu.Read8(oper&0xFF00 | (oper+1)&0x00FF)
	return uint16(hi)<<8 | uint16(lo)
}

// zpr16 reads 2 bytes from the zero page, handling page wrap.
func (cpu *CPU) zpr16(addr uint16) uint16 {
	lo := cpu.Read8(addr)
	hi := cpu.Read8(uint16(uint8(addr) + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// branch reads the displacement and, when taken, burns one cycle on the
// dummy read of the next opcode, plus another at the partially-updated
// target when the branch crosses a page.
func (cpu *CPU) branch(cond bool) {
	off := int8(cpu.fetch8())
	if !cond {
		return
	}

	_ = cpu.Read8(cpu.PC)
	dst := uint16(int16(cpu.PC) + int16(off))
	if pagecrossed(cpu.PC, dst) {
		_ = cpu.Read8(cpu.PC&0xFF00 | dst&0x00FF)
	}
	cpu.PC = dst
}
