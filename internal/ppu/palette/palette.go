// Package palette maps the 2-bit shades produced by the PPU to RGB
// colours.
package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Colour is one of the four shades of grey the DMG can display,
// 0 being the lightest and 3 the darkest.
type Colour uint8

const (
	White Colour = iota
	LightGrey
	DarkGrey
	Black
)

// Map returns the shade a palette register (types.BGP, types.OBP0,
// types.OBP1) assigns to the given colour number.
//
//	Bit 7-6 - Shade for Color Number 3
//	Bit 5-4 - Shade for Color Number 2
//	Bit 3-2 - Shade for Color Number 1
//	Bit 1-0 - Shade for Color Number 0
func Map(register uint8, colourNumber uint8) Colour {
	return Colour(register >> (colourNumber * 2) & 0x03)
}

// Scheme selects one of the available palettes.
type Scheme = int

const (
	// Greyscale is the default greyscale palette.
	Greyscale Scheme = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// one for each shade.
type Palette struct {
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes, indexed by Scheme.
var Palettes = []Palette{
	// Greyscale
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	},
	// Green
	{
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	// Red
	{
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	// Yellow
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

var schemeNames = map[string]Scheme{
	"greyscale": Greyscale,
	"grayscale": Greyscale,
	"green":     Green,
	"red":       Red,
	"yellow":    Yellow,
}

// ByName returns the palette with the given name.
func ByName(name string) (Palette, error) {
	s, ok := schemeNames[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q", name)
	}
	return Palettes[s], nil
}

// RGBA returns the colour the palette assigns to the given shade.
func (p Palette) RGBA(c Colour) color.RGBA {
	rgb := p.Colors[c&0x03]
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
}
