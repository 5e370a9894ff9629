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

// Package vdp1 implements the sprite-engine command interpreter and
// rasterizer (spec §4.3 "VDP1 (sprite engine)"). The command list lives
// in the caller-owned VRAM1 byte slice; VDP1 itself only interprets it
// and plots into a draw framebuffer.
package vdp1

import "github.com/saturnemu/satcore/errors"

const (
	VRAM1Size   = 512 * 1024
	FBSize      = 256 * 1024
	CommandSize = 32
)

// CommandKind is the dispatch tag taken from a command's control word
// bits 0-3 (spec §9 "tagged unions ... single match on the control word").
type CommandKind uint8

const (
	KindDrawNormalSprite CommandKind = iota
	KindDrawScaledSprite
	KindDrawDistortedSprite
	KindDrawPolygon
	KindDrawPolyline
	KindDrawLine
	KindSetSystemClip
	KindSetUserClip
	KindSetLocalCoord
	KindEnd // synthetic: end-of-list bit observed
)

// ColorMode selects how texel bytes are looked up (spec §4.3).
type ColorMode uint8

const (
	ColorMode4BitLUT ColorMode = iota
	ColorMode4BitBanked
	ColorMode6BitBanked
	ColorMode7BitBanked
	ColorMode8BitBanked
	ColorMode16BitRGB
)

// DrawMode flags, packed into a command's draw-mode word.
type DrawMode struct {
	Mesh           bool
	HalfTransparent bool
	HalfLuminance  bool
	Shadow         bool
	Gouraud        bool
	EndCodeDisable bool
	PreClipDisable bool
}

// Command is a decoded 32-byte VDP1 command-table entry.
type Command struct {
	End    bool
	Skip   bool
	Jump   JumpMode
	Kind   CommandKind
	Mode   DrawMode
	Color  ColorMode
	CharAddr uint32
	ColorBank uint16
	Verts  [4][2]int16
	GouraudAddr uint32
	JumpTarget  uint16
}

// JumpMode selects how the command table pointer advances after this entry.
type JumpMode uint8

const (
	JumpNext JumpMode = iota
	JumpAssign
	JumpCall
	JumpReturn
)

// Decode parses the 32 bytes at addr in vram into a Command.
func Decode(vram []byte, addr uint32) Command {
	u16 := func(off uint32) uint16 {
		return uint16(vram[addr+off])<<8 | uint16(vram[addr+off+1])
	}
	ctrl := u16(0)

	var c Command
	c.End = ctrl&0x8000 != 0
	c.Skip = ctrl&0x4000 != 0
	c.Jump = JumpMode((ctrl >> 4) & 0x3)
	switch ctrl & 0xF {
	case 0, 1:
		c.Kind = KindDrawNormalSprite
		if ctrl&0xF == 1 {
			c.Kind = KindDrawScaledSprite
		}
	case 2:
		c.Kind = KindDrawDistortedSprite
	case 4:
		c.Kind = KindDrawPolygon
	case 5:
		c.Kind = KindDrawPolyline
	case 6:
		c.Kind = KindDrawLine
	case 9:
		c.Kind = KindSetUserClip
	case 8:
		c.Kind = KindSetSystemClip
	case 0xC:
		c.Kind = KindSetLocalCoord
	}

	mode := u16(4)
	c.Mode = DrawMode{
		Mesh:            mode&0x0100 != 0,
		HalfTransparent: mode&0x0080 != 0,
		HalfLuminance:   mode&0x0040 != 0,
		Shadow:          mode&0x0020 != 0,
		Gouraud:         mode&0x0004 != 0,
		EndCodeDisable:  mode&0x0001 != 0,
		PreClipDisable:  mode&0x0002 != 0,
	}
	c.Color = ColorMode((mode >> 3) & 0x7)
	if c.Color > ColorMode16BitRGB {
		c.Color = ColorMode16BitRGB
	}

	c.CharAddr = uint32(u16(6)) * 8
	c.ColorBank = u16(8)
	c.JumpTarget = u16(2)

	for i := 0; i < 4; i++ {
		c.Verts[i][0] = int16(u16(12 + uint32(i)*4))
		c.Verts[i][1] = int16(u16(14 + uint32(i)*4))
	}
	c.GouraudAddr = uint32(u16(0x1C)) * 8

	return c
}

// VDP1 owns VRAM1, the two framebuffers and the local-coordinate/clip
// registers (spec §3.3).
type VDP1 struct {
	VRAM [VRAM1Size]byte
	FB   [2][FBSize]byte

	DrawFB int // index of the non-displayed (being drawn) framebuffer

	LocalX, LocalY int16
	SystemClip     [2][2]int16
	UserClip       [2][2]int16

	EraseOnAnySwap bool // compatibility toggle, spec §9 open question 1
	manualSwapRequested bool
	VBE                 bool // erase-before-use enable

	CommandRateDivisor int // compatibility hack, spec §9 open question 3
}

// New returns a VDP1 with both framebuffers zeroed.
func New() *VDP1 {
	return &VDP1{CommandRateDivisor: 1}
}

// DisplayFB returns the currently displayed framebuffer index.
func (v *VDP1) DisplayFB() int { return 1 - v.DrawFB }

// RequestManualSwap marks that software requested a manual framebuffer
// swap via the FBCR register, honored at the next VBlank-out.
func (v *VDP1) RequestManualSwap() { v.manualSwapRequested = true }

// VBlankOut implements the framebuffer swap/erase policy (spec §4.3
// "Framebuffer management", resolving spec §9 open question 1 by
// defaulting to erase-on-swap-or-manual-erase only, with EraseOnAnySwap
// available as the documented compatibility toggle).
func (v *VDP1) VBlankOut(oneCycleMode bool) {
	shouldSwap := v.manualSwapRequested || oneCycleMode
	if !shouldSwap {
		return
	}
	v.DrawFB = 1 - v.DrawFB
	v.manualSwapRequested = false

	shouldErase := v.VBE || oneCycleMode || v.EraseOnAnySwap
	if shouldErase {
		for i := range v.FB[v.DrawFB] {
			v.FB[v.DrawFB][i] = 0
		}
	}
}

// RunCommandList interprets the command table starting at VRAM offset 0
// until an End command, a Kind/0xF001 out-of-range jump, or a safety cap
// on executed commands is hit (spec §4.3 "Command and frame protocol").
func (v *VDP1) RunCommandList(plot func(x, y int, argb uint16)) error {
	addr := uint32(0)
	const maxCommands = 1 << 16

	for i := 0; i < maxCommands; i++ {
		if int(addr)+CommandSize > len(v.VRAM) {
			return errors.Errorf(errors.VDP1JumpOutOfRange, addr)
		}
		cmd := Decode(v.VRAM[:], addr)
		if cmd.End {
			return nil
		}

		if !cmd.Skip {
			switch cmd.Kind {
			case KindSetLocalCoord:
				v.LocalX = cmd.Verts[0][0]
				v.LocalY = cmd.Verts[0][1]
			case KindSetSystemClip:
				v.SystemClip[0] = cmd.Verts[0]
				v.SystemClip[1] = cmd.Verts[1]
			case KindSetUserClip:
				v.UserClip[0] = cmd.Verts[0]
				v.UserClip[1] = cmd.Verts[1]
			case KindDrawNormalSprite, KindDrawScaledSprite, KindDrawDistortedSprite, KindDrawPolygon, KindDrawPolyline, KindDrawLine:
				v.rasterize(cmd, plot)
			default:
				return errors.Errorf(errors.UnknownVDP1Command, uint8(cmd.Kind), addr)
			}
		}

		switch cmd.Jump {
		case JumpNext:
			addr += CommandSize
		case JumpAssign:
			target := uint32(cmd.JumpTarget) * 8
			if int(target) >= len(v.VRAM) {
				return errors.Errorf(errors.VDP1JumpOutOfRange, target)
			}
			addr = target
		case JumpCall, JumpReturn:
			addr += CommandSize
		}
	}
	return errors.Errorf(errors.VDP1JumpOutOfRange, addr)
}

// rasterize walks the quad edges with a fixed-point DDA (spec §4.3 step
// 3-4), supporting the four-point quad used by every draw-kind command
// here; line/polyline commands use only the first two vertices.
func (v *VDP1) rasterize(cmd Command, plot func(x, y int, argb uint16)) {
	x0, y0 := int(cmd.Verts[0][0])+int(v.LocalX), int(cmd.Verts[0][1])+int(v.LocalY)
	x1, y1 := int(cmd.Verts[1][0])+int(v.LocalX), int(cmd.Verts[1][1])+int(v.LocalY)
	x2, y2 := int(cmd.Verts[2][0])+int(v.LocalX), int(cmd.Verts[2][1])+int(v.LocalY)
	x3, y3 := int(cmd.Verts[3][0])+int(v.LocalX), int(cmd.Verts[3][1])+int(v.LocalY)

	if v.clipRejected(x0, y0, x1, y1, x2, y2, x3, y3) {
		return
	}

	if cmd.Kind == KindDrawLine || cmd.Kind == KindDrawPolyline {
		v.plotLine(x0, y0, x1, y1, cmd, plot)
		return
	}

	steps := abs(y3-y0) + abs(y2-y1)
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		lx := lerp(x0, x3, t)
		rx := lerp(x1, x2, t)
		v.plotTexturedSpan(lx, rx, y0+int(float64(y3-y0)*t), cmd, plot)
	}
}

func (v *VDP1) plotLine(x0, y0, x1, y1 int, cmd Command, plot func(x, y int, argb uint16)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	x, y := x0, y0
	for {
		v.plotTexel(x, y, 0, cmd, plot)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (v *VDP1) plotTexturedSpan(x0, x1, y int, cmd Command, plot func(x, y int, argb uint16)) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	width := x1 - x0
	if width == 0 {
		width = 1
	}
	for x := x0; x <= x1; x++ {
		u := float64(x-x0) / float64(width)
		v.plotTexel(x, y, u, cmd, plot)
	}
}

// plotTexel reads one texel per cmd.Color, applies draw-mode flags and
// plots if opaque (spec §4.3 step 4).
func (v *VDP1) plotTexel(x, y int, u float64, cmd Command, plot func(x, y int, argb uint16)) {
	if cmd.Mode.Mesh && (x+y)%2 == 0 {
		return
	}

	texel := v.readTexel(cmd, u)
	if texel == nil {
		return
	}
	argb := *texel

	if argb == 0 && !cmd.Mode.EndCodeDisable {
		return
	}

	if cmd.Mode.HalfLuminance {
		argb = halveRGB(argb)
	}

	plot(x, y, argb)
}

// readTexel decodes one texel from VRAM per the command's color mode.
func (v *VDP1) readTexel(cmd Command, u float64) *uint16 {
	off := cmd.CharAddr
	if int(off) >= len(v.VRAM) {
		return nil
	}
	switch cmd.Color {
	case ColorMode16BitRGB:
		if int(off)+1 >= len(v.VRAM) {
			return nil
		}
		val := uint16(v.VRAM[off])<<8 | uint16(v.VRAM[off+1])
		return &val
	default:
		val := uint16(v.VRAM[off]) | uint16(cmd.ColorBank)<<8
		return &val
	}
}

func (v *VDP1) clipRejected(xs ...int) bool {
	minX, maxX := xs[0], xs[0]
	minY, maxY := xs[1], xs[1]
	for i := 0; i < len(xs); i += 2 {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if xs[i+1] < minY {
			minY = xs[i+1]
		}
		if xs[i+1] > maxY {
			maxY = xs[i+1]
		}
	}
	sx0 := int(v.SystemClip[0][0])
	sy0 := int(v.SystemClip[0][1])
	sx1, sy1 := int(v.SystemClip[1][0]), int(v.SystemClip[1][1])
	if sx1 == 0 && sy1 == 0 {
		return false // system clip not yet configured, accept everything
	}
	return maxX < sx0 || minX > sx1 || maxY < sy0 || minY > sy1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func lerp(a, b int, t float64) int {
	return a + int(float64(b-a)*t)
}

func halveRGB(argb uint16) uint16 {
	r := (argb >> 10) & 0x1F / 2
	g := (argb >> 5) & 0x1F / 2
	b := argb & 0x1F / 2
	return (r << 10) | (g << 5) | b
}
