package io

import "github.com/thelolagemann/dmg/internal/types"

const (
	// dmaLength is the number of bytes copied into OAM.
	dmaLength = 0xA0
	// DMACycles is the number of T-cycles an OAM DMA transfer takes.
	DMACycles = 640
)

// startDMATransfer copies 160 bytes from XX00-XX9F into OAM, where XX
// is the value written to types.DMA. The copy completes at once and
// the CPU is charged for the duration of the transfer through
// TakeStall.
func (b *Bus) startDMATransfer(v uint8) {
	b.dmaSource = v

	source := uint16(v) << 8
	// sources above work RAM read from the echo
	if source >= types.EchoRAMStart {
		source -= 0x2000
	}

	for i := uint16(0); i < dmaLength; i++ {
		b.video.Write(types.OAMStart+i, b.Read(source+i))
	}
	b.stall += DMACycles
}
