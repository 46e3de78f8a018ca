package cpu

// add adds n (and the carry flag if shouldCarry) to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, shouldCarry bool) {
	carry := uint8(0)
	if shouldCarry {
		carry = c.carryBit()
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	halfCarry := c.A&0x0F+n&0x0F+carry > 0x0F

	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, halfCarry, sum > 0xFF)
}

// sub subtracts n (and the carry flag if shouldCarry) from the A Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, shouldCarry bool) {
	c.A = c.subtract(n, shouldCarry)
}

// subtract computes A - n, setting the flags of SUB without storing
// the result.
func (c *CPU) subtract(n uint8, shouldCarry bool) uint8 {
	carry := 0
	if shouldCarry {
		carry = int(c.carryBit())
	}
	diff := int(c.A) - int(n) - carry
	halfBorrow := int(c.A&0x0F)-int(n&0x0F)-carry < 0

	result := uint8(diff)
	c.setFlags(result == 0, true, halfBorrow, diff < 0)
	return result
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register, setting the flags as SUB
// would without changing A.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

// increment returns n + 1, the caller stores the result.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlagTo(FlagZero, incremented == 0)
	c.clearFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, n&0x0F == 0x0F)
	return incremented
}

// decrement returns n - 1, the caller stores the result.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlagTo(FlagZero, decremented == 0)
	c.setFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, n&0x0F == 0x00)
	return decremented
}

// addHL adds n to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.clearFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, hl&0x0FFF+n&0x0FFF > 0x0FFF)
	c.setFlagTo(FlagCarry, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed 8-bit offset e. The offset
// is sign extended before the addition, which wraps around.
//
//	ADD SP, e8
//	LD HL, SP+e8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	offset := uint16(int16(int8(e)))
	c.setFlags(false, false,
		c.SP&0x0F+offset&0x0F > 0x0F,
		c.SP&0xFF+offset&0xFF > 0xFF,
	)
	return c.SP + offset
}

// decimalAdjust adjusts the A Register to a binary coded decimal after
// an addition or subtraction of two BCD numbers.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	correction := uint8(0)
	if c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagHalfCarry) {
			correction |= 0x06
		}
		if carry {
			correction |= 0x60
		}
		c.A -= correction
	} else {
		if c.isFlagSet(FlagHalfCarry) || c.A&0x0F > 0x09 {
			correction |= 0x06
		}
		if carry || c.A > 0x99 {
			correction |= 0x60
			carry = true
		}
		c.A += correction
	}
	c.setFlagTo(FlagZero, c.A == 0)
	c.clearFlag(FlagHalfCarry)
	c.setFlagTo(FlagCarry, carry)
}

// complement flips every bit of the A Register.
//
//	CPL
//
// Flags affected:
//
//	N - Set.
//	H - Set.
func (c *CPU) complement() {
	c.A = ^c.A
	c.setFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}

// setCarryFlag sets the carry flag, resetting N and H.
//
//	SCF
func (c *CPU) setCarryFlag() {
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.setFlag(FlagCarry)
}

// complementCarryFlag flips the carry flag, resetting N and H.
//
//	CCF
func (c *CPU) complementCarryFlag() {
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.setFlagTo(FlagCarry, !c.isFlagSet(FlagCarry))
}

// rotateLeftCarry rotates n left, bit 7 goes to both bit 0 and the
// carry flag.
//
//	RLC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightCarry rotates n right, bit 0 goes to both bit 7 and the
// carry flag.
//
//	RRC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n<<1 | c.carryBit()
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n>>1 | c.carryBit()<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftLeftArithmetic shifts n left into the carry flag, bit 0 is reset.
//
//	SLA n
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the carry flag, bit 7 is
// unchanged.
//
//	SRA n
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag, bit 7 is reset.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// swap the upper and lower nibbles of a byte.
//
//	SWAP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	c.setFlags(n == 0, false, false, false)
	return n<<4 | n>>4
}

// testBit tests the bit at the given position of n.
//
//	BIT b, n
//	b = 0-7
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, bit uint8) {
	c.setFlagTo(FlagZero, n&(1<<bit) == 0)
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}
