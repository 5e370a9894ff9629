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

// Package saturn wires every emulated component into the single handle a
// frontend drives (spec §6.1). Grounded on the teacher's top-level
// hardware.VCS type: a plain struct holding one instance of each
// subsystem, a Step-like driving loop, and thin Load/Save wrappers, here
// scaled from the 2600's single 6507 and TIA to two SH-2 cores, the SCU,
// SMPC, VDP1/VDP2 (with its threaded render queue), SCSP, and CD block.
package saturn

import (
	"github.com/saturnemu/satcore/cartridge"
	"github.com/saturnemu/satcore/cdblock"
	"github.com/saturnemu/satcore/clocks"
	"github.com/saturnemu/satcore/disc"
	"github.com/saturnemu/satcore/emulation"
	"github.com/saturnemu/satcore/errors"
	"github.com/saturnemu/satcore/instance"
	"github.com/saturnemu/satcore/logger"
	"github.com/saturnemu/satcore/memorymap"
	"github.com/saturnemu/satcore/peripheral"
	"github.com/saturnemu/satcore/savestate"
	"github.com/saturnemu/satcore/scheduler"
	"github.com/saturnemu/satcore/scsp"
	"github.com/saturnemu/satcore/scu"
	"github.com/saturnemu/satcore/sh2"
	"github.com/saturnemu/satcore/smpc"
	"github.com/saturnemu/satcore/vdp1"
	"github.com/saturnemu/satcore/vdp2"
	"github.com/saturnemu/satcore/vdprender"
)

// Callbacks groups the frontend hooks Saturn invokes at the points spec
// §6.1 names.
type Callbacks struct {
	OnFrameComplete      func()
	OnAudioSample        func(left, right int16)
	OnVDP1FrameComplete  func()
}

// Saturn is the top-level emulation handle. Exactly one hardware region
// (low/high work RAM, VRAM, CRAM, etc) lives per Saturn value, so two
// handles never share state (spec §9 "no global state").
type Saturn struct {
	Instance *instance.Instance

	State emulation.State

	Scheduler *scheduler.Scheduler

	Master *sh2.Core
	Slave  *sh2.Core
	slaveEnabled bool

	SCU  *scu.SCU
	SMPC *smpc.SMPC

	vdp1        *vdp1.VDP1
	vdp2        *vdp2.VDP2
	renderVDP1  *vdp1.VDP1
	renderVDP2  *vdp2.VDP2
	renderQueue *vdprender.Queue

	scsp *scsp.SCSP

	cdblock cdblock.CDBlock

	ipl            []byte
	cdBlockROM     []byte
	cartridge      cartridge.Mapper
	internalBackup [32 * 1024]byte
	lowWorkRAM     [1024 * 1024]byte
	highWorkRAM    [1024 * 1024]byte

	activeDisc *disc.Disc

	masterEvent scheduler.EventID
	slaveEvent  scheduler.EventID
	scspEvent   scheduler.EventID
	cdEvent     scheduler.EventID
	lineEvent   scheduler.EventID

	scanline int
	field    int

	Callbacks Callbacks
}

// New returns a Saturn handle with no IPL, no disc, and no cartridge
// loaded. Callers must LoadIPL before Reset will produce a runnable
// machine.
func New(ins *instance.Instance) *Saturn {
	s := &Saturn{
		Instance:  ins,
		Scheduler: scheduler.New(),
		SCU:       scu.New(),
		SMPC:      smpc.New(),
		vdp1:      vdp1.New(),
		vdp2:      vdp2.New(),
		renderVDP1: vdp1.New(),
		renderVDP2: vdp2.New(),
		scsp:      scsp.New(),
	}
	empty, _ := cartridge.New(cartridge.None, nil)
	s.cartridge = empty

	s.renderQueue = vdprender.New(&renderConsumer{s: s}, false)

	bus := &masterBus{s: s}
	s.Master = sh2.NewCore(bus, "master")
	s.Slave = sh2.NewCore(bus, "slave")

	s.SMPC.AreaCode = smpc.AreaCode(prefInt(ins.Prefs.AreaCode))

	s.registerScheduledEvents()

	s.State = emulation.Initialising
	return s
}

// renderConsumer adapts Saturn's renderer-local VDP copies to the
// vdprender.Consumer interface.
type renderConsumer struct{ s *Saturn }

func (c *renderConsumer) Apply(ev vdprender.Event) {
	switch ev.Kind {
	case vdprender.EventVramWriteByte:
		if ev.Line == 1 {
			if int(ev.Addr) < len(c.s.renderVDP1.VRAM) {
				c.s.renderVDP1.VRAM[ev.Addr] = byte(ev.Val)
			}
		} else {
			if int(ev.Addr) < len(c.s.renderVDP2.VRAM) {
				c.s.renderVDP2.VRAM[ev.Addr] = byte(ev.Val)
			}
		}
	case vdprender.EventPreSaveSync, vdprender.EventPostLoadSync, vdprender.EventShutdown:
	}
}

func renderEventVramByte(off uint32, v uint8, isVDP1 bool) vdprender.Event {
	line := 0
	if isVDP1 {
		line = 1
	}
	return vdprender.Event{Kind: vdprender.EventVramWriteByte, Addr: off, Val: uint32(v), Line: line}
}

// registerScheduledEvents wires every component's tick into the
// scheduler at its native clock ratio against clocks.MasterHzNTSC
// (spec §4.1).
func (s *Saturn) registerScheduledEvents() {
	s.masterEvent = s.Scheduler.RegisterEvent("sh2-master", nil, func(interface{}) {
		cycles := s.Master.Step()
		s.Scheduler.ScheduleFromNow(s.masterEvent, uint64(cycles))
	})
	s.Scheduler.SetEventCountFactor(s.masterEvent, clocks.SH2Div, 1)

	s.slaveEvent = s.Scheduler.RegisterEvent("sh2-slave", nil, func(interface{}) {
		if s.slaveEnabled {
			cycles := s.Slave.Step()
			s.Scheduler.ScheduleFromNow(s.slaveEvent, uint64(cycles))
		} else {
			s.Scheduler.ScheduleFromNow(s.slaveEvent, 1)
		}
	})
	s.Scheduler.SetEventCountFactor(s.slaveEvent, clocks.SH2Div, 1)

	s.scspEvent = s.Scheduler.RegisterEvent("scsp", nil, func(interface{}) {
		l, r := s.scsp.Tick()
		if s.Callbacks.OnAudioSample != nil {
			s.Callbacks.OnAudioSample(l, r)
		}
		s.Scheduler.ScheduleFromNow(s.scspEvent, 1)
	})

	s.cdEvent = s.Scheduler.RegisterEvent("cdblock", nil, func(interface{}) {
		if s.cdblock != nil {
			s.cdblock.Tick()
		}
		s.Scheduler.ScheduleFromNow(s.cdEvent, 1)
	})
	s.Scheduler.SetEventCountFactor(s.cdEvent, clocks.CDBlockDiv, 1)

	s.lineEvent = s.Scheduler.RegisterEvent("vdp2-line", nil, func(interface{}) {
		s.finishScanline()
		s.Scheduler.ScheduleFromNow(s.lineEvent, clocks.MasterHzNTSC/60/clocks.ScanlinesNTSC)
	})
}

// Reset brings every component to its power-on (hardReset) or
// soft-reset state (spec §4.2, §6.1).
func (s *Saturn) Reset(hardReset bool) {
	s.Master.Reset()
	s.Slave.Reset()
	s.slaveEnabled = false

	if hardReset {
		if prefBool(s.Instance.Prefs.RandomState) {
			r := s.Instance.Random
			for i := range s.lowWorkRAM {
				s.lowWorkRAM[i] = byte(r.NoRewind(256))
			}
			for i := range s.highWorkRAM {
				s.highWorkRAM[i] = byte(r.NoRewind(256))
			}
		}
	}

	s.SCU = scu.New()
	s.SMPC = smpc.New()
	s.SMPC.AreaCode = smpc.AreaCode(prefInt(s.Instance.Prefs.AreaCode))

	s.scanline = 0
	s.field = 0

	s.Scheduler.ScheduleAt(s.masterEvent, 0)
	s.Scheduler.ScheduleAt(s.slaveEvent, 0)
	s.Scheduler.ScheduleAt(s.scspEvent, 0)
	s.Scheduler.ScheduleAt(s.cdEvent, 0)
	s.Scheduler.ScheduleAt(s.lineEvent, clocks.MasterHzNTSC/60/clocks.ScanlinesNTSC)

	s.State = emulation.Running
}

// LoadIPL installs the boot ROM image. Reset must be called afterwards
// for it to take effect (the reset vector is read from it).
func (s *Saturn) LoadIPL(image []byte) error {
	if len(image) == 0 {
		return errors.Errorf(errors.MissingIPL, "empty IPL image supplied")
	}
	s.ipl = image
	return nil
}

// LoadCDBlockROM installs the CD block firmware image used by the LLE
// variant. Calling this before LoadDisc selects LLE; never calling it
// leaves the HLE variant in place (spec §4.5, §7).
func (s *Saturn) LoadCDBlockROM(image []byte) error {
	if len(image) == 0 {
		return errors.Errorf(errors.MissingCDBlockROM, "empty CD block ROM image supplied")
	}
	s.cdBlockROM = image
	lle, err := cdblock.NewLLE(&cdBlockBus{s: s}, image)
	if err != nil {
		return err
	}
	s.cdblock = lle
	return nil
}

// cdBlockBus is the narrow bus the embedded SH-1 firmware CPU sees; it is
// simply the same masterBus window restricted to the CD block's own
// address space; the LLE package only needs the 6-method shape, not a
// concrete type, so this indirection keeps cdblock decoupled from sh2.
type cdBlockBus struct{ s *Saturn }

func (b *cdBlockBus) ReadByte(addr uint32) uint8   { return (&masterBus{s: b.s}).ReadByte(addr) }
func (b *cdBlockBus) ReadWord(addr uint32) uint16  { return (&masterBus{s: b.s}).ReadWord(addr) }
func (b *cdBlockBus) ReadLong(addr uint32) uint32  { return (&masterBus{s: b.s}).ReadLong(addr) }
func (b *cdBlockBus) WriteByte(addr uint32, v uint8)  { (&masterBus{s: b.s}).WriteByte(addr, v) }
func (b *cdBlockBus) WriteWord(addr uint32, v uint16) { (&masterBus{s: b.s}).WriteWord(addr, v) }
func (b *cdBlockBus) WriteLong(addr uint32, v uint32) { (&masterBus{s: b.s}).WriteLong(addr, v) }

// ensureCDBlock lazily installs the HLE variant if neither has been
// selected yet (the default a disc-insert with no CD block ROM loaded
// gets, per spec §4.5).
func (s *Saturn) ensureCDBlock() {
	if s.cdblock == nil {
		s.cdblock = cdblock.NewHLE()
	}
}

// LoadDisc mounts d. Its content hash is taken later, by SaveState, for
// save-state validation (spec §3.4, §4.8).
func (s *Saturn) LoadDisc(d *disc.Disc) error {
	s.ensureCDBlock()
	s.activeDisc = d
	return s.cdblock.LoadDisc(d)
}

// EjectDisc unmounts the current disc, if any.
func (s *Saturn) EjectDisc() {
	s.ensureCDBlock()
	s.activeDisc = nil
	s.cdblock.EjectDisc()
}

func (s *Saturn) OpenTray() {
	s.ensureCDBlock()
	s.cdblock.OpenTray()
}

func (s *Saturn) CloseTray() {
	s.ensureCDBlock()
	s.cdblock.CloseTray()
}

// InsertCartridge installs a cartridge-slot expansion device.
func (s *Saturn) InsertCartridge(variant cartridge.Kind, image []byte) error {
	m, err := cartridge.New(variant, image)
	if err != nil {
		return err
	}
	s.cartridge = m
	return nil
}

// ConnectPeripheral wires device onto port 1 (port==1) or port 2.
func (s *Saturn) ConnectPeripheral(port int, device peripheral.Device) {
	if port == 1 {
		s.SMPC.Port1.Connect(device)
	} else {
		s.SMPC.Port2.Connect(device)
	}
}

// RunFrame advances the emulation by exactly one video field (spec
// §6.1). Scanline-granularity VDP2 composition and the VDP1 command
// list are driven from the line event registered in
// registerScheduledEvents; RunFrame just supplies enough master cycles
// for one field to elapse.
func (s *Saturn) RunFrame() {
	cyclesPerField := uint64(clocks.MasterHzNTSC / 60)
	target := s.Scheduler.Time() + cyclesPerField

	for s.Scheduler.Time() < target {
		s.Scheduler.Tick(1)
	}

	s.field ^= 1
	if s.Callbacks.OnFrameComplete != nil {
		s.Callbacks.OnFrameComplete()
	}
}

// finishScanline runs the VDP1 command list once per frame (on line 0)
// and advances the scanline counter, firing VBlankOut at the bottom of
// the visible field (spec §4.3).
func (s *Saturn) finishScanline() {
	if s.scanline == 0 {
		if err := s.vdp1.RunCommandList(s.plotVDP1); err != nil {
			logger.Logf("vdp1", "command list error: %v", err)
		}
		if s.Callbacks.OnVDP1FrameComplete != nil {
			s.Callbacks.OnVDP1FrameComplete()
		}
	}

	s.scanline++
	if s.scanline >= clocks.ScanlinesNTSC {
		s.scanline = 0
		s.vdp1.VBlankOut(prefBool(s.Instance.Prefs.VDP1EraseOnAnySwap))
		s.SCU.Raise(scu.SourceVBlankIn)
	}
}

func (s *Saturn) plotVDP1(x, y int, argb uint16) {
	off := (y*352 + x) * 2
	buf := s.vdp1.FB[s.vdp1.DrawFB][:]
	if off+1 < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(argb >> 8)
	buf[off+1] = byte(argb)
}

// readSMPCByte/writeSMPCByte expose the SMPC's COMREG/OREG/SF register
// window at whatever byte offset memorymap.SMPCRegisters reports.
func (s *Saturn) readSMPCByte(off uint32) uint8 {
	switch {
	case off == 0x1F:
		if s.SMPC.SF {
			return 1
		}
		return 0
	case off >= 0x20 && off < 0x40:
		return s.SMPC.ReadOREG(int((off - 0x20) / 2))
	default:
		return 0
	}
}

func (s *Saturn) writeSMPCByte(off uint32, v uint8) {
	if off == 0x1F {
		s.SMPC.WriteCOMREG(v)
	}
}

// readCDBlockByte/writeCDBlockByte expose the CD block's YGR FIFO/HIRQ
// register window.
func (s *Saturn) readCDBlockByte(off uint32) uint8 {
	s.ensureCDBlock()
	if off == 0 {
		b, _ := s.cdblock.YGR().Pop()
		return b
	}
	return 0
}

func (s *Saturn) writeCDBlockByte(off uint32, v uint8) {
	s.ensureCDBlock()
	if off == 0 {
		_ = s.cdblock.YGR().Push(s.cdblock.YGR().Direction, v)
	}
}

// SaveState serialises every component's state into a versioned,
// hash-checked snapshot (spec §4.8).
func (s *Saturn) SaveState() ([]byte, error) {
	s.renderQueue.SyncBarrier(vdprender.EventPreSaveSync)

	var discHash [16]byte
	if s.activeDisc != nil {
		h, err := s.activeDisc.Hash()
		if err != nil {
			return nil, err
		}
		discHash = h
	}
	var iplHash, cdromHash [32]byte

	enc := savestate.NewEncoder(discHash, iplHash, cdromHash)
	enc.WriteSection("scheduler", encodeSchedulerState(s.Scheduler))
	enc.WriteSection("sh2-master", encodeCoreState(s.Master))
	enc.WriteSection("sh2-slave", encodeCoreState(s.Slave))
	enc.WriteSection("backup", append([]byte{}, s.internalBackup[:]...))
	return enc.Bytes(), nil
}

// LoadState restores a snapshot produced by SaveState.
func (s *Saturn) LoadState(data []byte) error {
	dec, err := savestate.NewDecoder(data)
	if err != nil {
		return err
	}

	if sec, err := dec.ReadSection("backup"); err == nil {
		copy(s.internalBackup[:], sec)
	}
	if sec, err := dec.ReadSection("sh2-master"); err == nil {
		decodeCoreState(s.Master, sec)
	}
	if sec, err := dec.ReadSection("sh2-slave"); err == nil {
		decodeCoreState(s.Slave, sec)
	}

	s.renderQueue.SyncBarrier(vdprender.EventPostLoadSync)
	return nil
}
