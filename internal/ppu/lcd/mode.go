package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1 of
// the types.STAT register.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM scan mode, the PPU searches OAM for the objects on the line.
	OAM
	// VRAM is the pixel transfer mode, the line is drawn when it ends.
	VRAM
)

// Duration of each mode, in T-cycles. VBlank lasts 10 lines of
// ScanlineCycles each.
const (
	OAMCycles      = 80
	VRAMCycles     = 172
	HBlankCycles   = 204
	ScanlineCycles = OAMCycles + VRAMCycles + HBlankCycles
)
