package gameboy

import (
	"fmt"

	"github.com/thelolagemann/dmg/internal/cartridge"
)

// battery returns the cartridge's RAM when it is battery backed.
func (g *GameBoy) battery() (cartridge.Battery, bool) {
	cart := g.bus.AddressSpace().Cart
	if !cart.Header().CartridgeType.HasBattery() {
		return nil, false
	}
	b, ok := cart.(cartridge.Battery)
	return b, ok
}

// BatteryRAM returns a copy of the external RAM of a battery backed
// cartridge. ok is false for cartridges without a battery.
func (g *GameBoy) BatteryRAM() (ram []byte, ok bool) {
	b, ok := g.battery()
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.RAM()...), true
}

// LoadBatteryRAM restores the external RAM of a battery backed
// cartridge, as returned by BatteryRAM.
func (g *GameBoy) LoadBatteryRAM(ram []byte) error {
	b, ok := g.battery()
	if !ok {
		return fmt.Errorf("gameboy: %s has no battery", g.Header().CartridgeType)
	}
	if err := b.LoadRAM(ram); err != nil {
		return fmt.Errorf("gameboy: %w", err)
	}
	return nil
}
