package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte being transferred over
	// the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Writing
	// any value to it resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2   - Timer Enable
	//  Bit 1-0 - Input Clock Select
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register. The LCDC
	// hardware register is used to control the LCD.
	//
	//  Bit 7 - LCD Display Enable             (0=Off, 1=On)
	//  Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5 - Window Display Enable          (0=Off, 1=On)
	//  Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0 - BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register. The STAT
	// hardware register contains the status of the LCD, and is
	// used to select the conditions for the LCD STAT interrupt.
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the SCY hardware register. The SCY
	// hardware register is used to scroll the background vertically.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the SCX hardware register. The SCX
	// hardware register is used to scroll the background horizontally.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the LY hardware register. The LY
	// hardware register indicates the vertical line to which
	// the present data is transferred to the LCD. It is read-only.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the LYC hardware register. The LYC
	// hardware register is compared to LY, and when both are equal
	// the coincidence flag in STAT is set.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. Writing to
	// it copies 160 bytes from XX00-XX9F into the sprite attribute
	// table.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the BGP hardware register. The BGP
	// hardware register assigns shades of grey to the colour numbers
	// of the background and window tiles.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the OBP0 hardware register. It works
	// like BGP, except the lower two bits are ignored as colour
	// number 0 is transparent for sprites.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the OBP1 hardware register. It works
	// exactly like OBP0.
	OBP1 HardwareAddress = 0xFF49
	// WY is the address of the WY hardware register, the Y position
	// of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the address of the WX hardware register, the X position
	// of the window minus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS is the address of the boot ROM disable register. Writing a
	// non-zero value unmaps the boot ROM.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts, with the
	// same bit layout as IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the address space.
const (
	ROMBank0Start  uint16 = 0x0000
	ROMBankNStart  uint16 = 0x4000
	VRAMStart      uint16 = 0x8000
	ExternalRAM    uint16 = 0xA000
	WRAMStart      uint16 = 0xC000
	EchoRAMStart   uint16 = 0xE000
	OAMStart       uint16 = 0xFE00
	UnusableStart  uint16 = 0xFEA0
	IOStart        uint16 = 0xFF00
	HRAMStart      uint16 = 0xFF80
	HardwareMask   uint16 = 0x007F
	AudioStart     uint16 = 0xFF10
	AudioEnd       uint16 = 0xFF3F
	BootROMMaxSize        = 0x100
)
