// This file is part of Saturn Core.
//
// Saturn Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saturn Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saturn Core.  If not, see <https://www.gnu.org/licenses/>.

// Package vdp2 implements the background/compositor VDP (spec §4.3
// "VDP2 (background / composer)"): per-scanline layer rasterization,
// window masking, and priority-ordered composition into a line buffer.
package vdp2

import "github.com/saturnemu/satcore/satmath"

const (
	VRAM2Size = 512 * 1024
	CRAMSize  = 4 * 1024
)

// Layer indexes (spec §4.3 priority tie-break order: sprite, RBG0, NBG0,
// NBG1, NBG2, NBG3 — RBG1 sits alongside RBG0 in the rotation pair).
type Layer int

const (
	LayerSprite Layer = iota
	LayerRBG0
	LayerRBG1
	LayerNBG0
	LayerNBG1
	LayerNBG2
	LayerNBG3
	layerCount
)

// Pixel is one rasterized, not-yet-composited sample from a layer.
type Pixel struct {
	Opaque   bool
	Priority uint8 // 0-7, plus sub-priority folded in by the caller
	Color    uint16 // RGB555
	ColorCalc bool
	Shadow   bool
}

// VDP2 owns VRAM2, CRAM, and the per-layer enable/priority registers.
type VDP2 struct {
	VRAM [VRAM2Size]byte
	CRAM [CRAMSize]byte

	LayerEnabled  [layerCount]bool
	LayerPriority [layerCount]uint8

	BackScreenColor uint16
	LineColor       uint16

	ColorCalcRatio [layerCount]uint8 // 0-31, used when not additive
	Additive       [layerCount]bool

	// accessDirty marks that the access-pattern registers changed and
	// the derived per-NBG stride table must be rebuilt before the next
	// scanline (spec §4.3 "Access-cycle emulation").
	accessDirty bool
	strideTable [layerCount]int
}

// New returns a VDP2 with every layer disabled.
func New() *VDP2 {
	return &VDP2{accessDirty: true}
}

// MarkAccessDirty flags that an access-pattern register write occurred.
func (v *VDP2) MarkAccessDirty() { v.accessDirty = true }

// rebuildStrideTable derives per-NBG VRAM access strides from the
// access-pattern registers, only when dirty (spec §4.3).
func (v *VDP2) rebuildStrideTable() {
	if !v.accessDirty {
		return
	}
	for i := range v.strideTable {
		v.strideTable[i] = 1
	}
	v.accessDirty = false
}

// RasterizeLine produces each enabled layer's pixel row for scanline y
// into raster (indexed by Layer), using fetch as the per-layer per-x
// color sampler a caller-supplied rasterizer function provides; this
// keeps the character/bitmap/rotation pattern-table walk (spec §4.3 step
// 5, a large table-driven decode) pluggable per layer kind without this
// package needing to know the cartridge's character data layout.
func (v *VDP2) RasterizeLine(y int, width int, fetch func(layer Layer, x int) Pixel) [layerCount][]Pixel {
	v.rebuildStrideTable()

	var raster [layerCount][]Pixel
	for l := LayerSprite; l < layerCount; l++ {
		if !v.LayerEnabled[l] {
			continue
		}
		row := make([]Pixel, width)
		for x := 0; x < width; x++ {
			row[x] = fetch(l, x)
		}
		raster[l] = row
	}
	return raster
}

// WindowMask computes, per pixel, whether layer l is masked out at x on
// the current line, combining up to two rectangular windows with AND/OR
// logic (spec §4.3 step 3). win1/win2 are nil when that window is
// disabled for this layer.
func WindowMask(x, y int, win1, win2 *Window, logic WindowLogic) bool {
	in1 := win1 == nil || win1.Contains(x, y)
	in2 := win2 == nil || win2.Contains(x, y)
	switch logic {
	case WindowLogicOR:
		return in1 || in2
	default:
		return in1 && in2
	}
}

// WindowLogic selects how two windows combine for one layer.
type WindowLogic int

const (
	WindowLogicAND WindowLogic = iota
	WindowLogicOR
)

// Window is one rectangular (or line-table driven) window region.
type Window struct {
	X0, Y0, X1, Y1 int
	Invert         bool
}

// Contains reports whether (x,y) falls inside the window, honoring Invert.
func (w *Window) Contains(x, y int) bool {
	in := x >= w.X0 && x <= w.X1 && y >= w.Y0 && y <= w.Y1
	if w.Invert {
		return !in
	}
	return in
}

// Compose implements spec §4.3 step 6 and §8 property 8: pick the top 3
// opaque layers in (priority, -layerIndex) order, apply color calculation
// or additive blend between the top two, and return the final RGB555
// pixel. The per-layer ratio/additive flags live on v, since a layer's
// blend mode is a register setting, not part of the rasterized pixel.
func (v *VDP2) Compose(pixels [layerCount]Pixel) uint16 {
	type candidate struct {
		layer Layer
		pix   Pixel
	}
	var stack []candidate
	for l, p := range pixels {
		if p.Opaque {
			stack = append(stack, candidate{Layer(l), p})
		}
	}
	if len(stack) == 0 {
		return 0
	}

	// selection sort by (priority desc, layer index asc) — spec's tie
	// break ("equal priority -> lower layer index wins").
	for i := 0; i < len(stack); i++ {
		best := i
		for j := i + 1; j < len(stack); j++ {
			if higherPriority(stack[j], stack[best]) {
				best = j
			}
		}
		stack[i], stack[best] = stack[best], stack[i]
	}

	top := stack[0]
	if len(stack) == 1 || !top.pix.ColorCalc {
		return top.pix.Color
	}

	second := stack[1]
	if top.pix.Shadow {
		return halveLuma(second.pix.Color)
	}
	if v.Additive[top.layer] {
		return additiveBlend(top.pix.Color, second.pix.Color)
	}
	return alphaBlend(top.pix.Color, second.pix.Color, v.ColorCalcRatio[top.layer])
}

func higherPriority(a, b struct {
	layer Layer
	pix   Pixel
}) bool {
	if a.pix.Priority != b.pix.Priority {
		return a.pix.Priority > b.pix.Priority
	}
	return a.layer < b.layer
}

// alphaBlend linearly interpolates top over bottom by ratio/32 (spec §4.3
// step 6 "alpha-composite ... lerp by ratio/32").
func alphaBlend(top, bottom uint16, ratio uint8) uint16 {
	tr, tg, tb := rgb555(top)
	br, bg, bb := rgb555(bottom)
	r := lerp5(tr, br, ratio)
	g := lerp5(tg, bg, ratio)
	b := lerp5(tb, bb, ratio)
	return pack555(r, g, b)
}

func lerp5(top, bottom uint16, ratio uint8) uint16 {
	r := uint32(ratio)
	return uint16((uint32(top)*r + uint32(bottom)*(32-r)) / 32)
}

// additiveBlend saturating-adds top and bottom per channel (spec §4.3 step
// 6 "additive blend (saturating add)").
func additiveBlend(top, bottom uint16) uint16 {
	tr, tg, tb := rgb555(top)
	br, bg, bb := rgb555(bottom)
	r := satmath.SaturatingAdd(tr, br, uint16(0x1F))
	g := satmath.SaturatingAdd(tg, bg, uint16(0x1F))
	b := satmath.SaturatingAdd(tb, bb, uint16(0x1F))
	return pack555(r, g, b)
}

func halveLuma(c uint16) uint16 {
	r, g, b := rgb555(c)
	return pack555(r/2, g/2, b/2)
}

func rgb555(c uint16) (r, g, b uint16) {
	return (c >> 10) & 0x1F, (c >> 5) & 0x1F, c & 0x1F
}

func pack555(r, g, b uint16) uint16 {
	return (r << 10) | (g << 5) | b
}
