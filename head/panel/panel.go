// Package panel is a setpoint controller screen.
//
//	 UP   SP 21 DOWN
//	SAVE   ON  START
//
// Setpoint is kept in EEPROM as big-endian int16 at SetpointAddr
// followed by CRC-8 byte.
package panel

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/hardware/eeprom"
	"github.com/temoto/lcdmenu/log2"
	"github.com/temoto/lcdmenu/menu"
)

const (
	SetpointAddr uint16 = 0
	SetpointMax  int16  = 999
	SetpointMin  int16  = -99
)

const (
	SlotUp = iota
	SlotDown
	SlotSave
	SlotRun
)

var (
	textUp    = menu.TextOf(" UP  ")
	textDown  = menu.TextOf("DOWN ")
	textSave  = menu.TextOf("SAVE ")
	textSaved = menu.TextOf("SAVED")
	textErr   = menu.TextOf("ERR  ")
	textStart = menu.TextOf("START")
	textStop  = menu.TextOf("STOP ")
	textOn    = menu.TextOf("  ON ")
	textOff   = menu.TextOf(" OFF ")
)

type Panel struct {
	Log *log2.Log

	cells    eeprom.Cells
	setpoint int16
	stored   int16
	valid    bool
	running  bool
	saveErr  error
}

// New loads setpoint from EEPROM.
// Blank or corrupted record gives zero setpoint, out of range value is clamped.
func New(cells eeprom.Cells, log *log2.Log) (*Panel, error) {
	if cells == nil {
		panic("code error panel.New cells=nil")
	}
	self := &Panel{Log: log, cells: cells}
	v, err := eeprom.ReadInt16Checked(cells, SetpointAddr)
	switch {
	case err == nil:
		self.valid = true
	case eeprom.IsChecksum(err):
		log.Infof("panel no stored setpoint (%v), using 0", err)
		v = 0
	default:
		return nil, errors.Annotate(err, "panel load setpoint")
	}
	self.stored = v
	self.setpoint = clamp(v)
	if self.setpoint != v {
		log.Infof("panel stored setpoint=%d out of range, using %d", v, self.setpoint)
	}
	return self, nil
}

func (self *Panel) Setpoint() int16 { return self.setpoint }
func (self *Panel) Running() bool   { return self.running }
func (self *Panel) Dirty() bool     { return !self.valid || self.setpoint != self.stored }
func (self *Panel) SaveErr() error  { return self.saveErr }

func (self *Panel) Up()   { self.setpoint = clamp(self.setpoint + 1) }
func (self *Panel) Down() { self.setpoint = clamp(self.setpoint - 1) }

func (self *Panel) Toggle() {
	self.running = !self.running
	self.Log.Infof("panel running=%t setpoint=%d", self.running, self.setpoint)
}

// Save writes setpoint to EEPROM, only if changed since last save.
func (self *Panel) Save() {
	if !self.Dirty() {
		self.saveErr = nil
		return
	}
	if err := eeprom.WriteInt16Checked(self.cells, SetpointAddr, self.setpoint); err != nil {
		self.saveErr = errors.Annotatef(err, "panel save setpoint=%d", self.setpoint)
		self.Log.Error(self.saveErr)
		return
	}
	self.saveErr = nil
	self.stored = self.setpoint
	self.valid = true
	self.Log.Debugf("panel saved setpoint=%d", self.setpoint)
}

// Menu builds a screen bound to this panel state.
func (self *Panel) Menu(surface menu.Surface) *menu.Menu {
	items := [menu.MenuSlots]*menu.MenuItem{
		SlotUp:   menu.NewClickableItem(textUp, self.Up, true),
		SlotDown: menu.NewClickableItem(textDown, self.Down, true),
		SlotSave: menu.NewClickableUpdatableAutoItem(textSave, self.Save, self.saveText, true, true),
		SlotRun:  menu.NewClickableUpdatableItem(textStart, self.Toggle, self.runText, true),
	}
	statics := [menu.StaticSlots]menu.Item{
		menu.NewUpdatableItem(menu.Blank, self.setpointText),
		menu.NewUpdatableItem(textOff, self.stateText),
	}
	m := menu.NewMenu(surface, items, statics)
	m.Log = self.Log
	return m
}

func (self *Panel) saveText() menu.Text {
	switch {
	case self.saveErr != nil:
		return textErr
	case self.Dirty():
		return textSave
	}
	return textSaved
}

func (self *Panel) runText() menu.Text {
	if self.running {
		return textStop
	}
	return textStart
}

func (self *Panel) setpointText() menu.Text {
	return menu.TextOf(fmt.Sprintf("SP%3d", self.setpoint))
}

func (self *Panel) stateText() menu.Text {
	if self.running {
		return textOn
	}
	return textOff
}

func clamp(v int16) int16 {
	if v > SetpointMax {
		return SetpointMax
	}
	if v < SetpointMin {
		return SetpointMin
	}
	return v
}
