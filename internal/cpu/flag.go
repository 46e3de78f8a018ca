package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// setFlagTo sets or clears a flag depending on value.
func (c *CPU) setFlagTo(flag Flag, value bool) {
	if value {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// setFlags sets every flag at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.setFlagTo(FlagZero, zero)
	c.setFlagTo(FlagSubtract, subtract)
	c.setFlagTo(FlagHalfCarry, halfCarry)
	c.setFlagTo(FlagCarry, carry)
}

// carryBit returns the carry flag as 0 or 1.
func (c *CPU) carryBit() uint8 {
	if c.isFlagSet(FlagCarry) {
		return 1
	}
	return 0
}
