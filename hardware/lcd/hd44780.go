// Package lcd drives HD44780 compatible character displays
// and adapts them to menu.Surface.
package lcd

import (
	"strconv"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/gpio-cdev-go"
)

type Command byte

const (
	CommandClear   Command = 0x01
	CommandReturn  Command = 0x02
	CommandControl Command = 0x08
	CommandAddress Command = 0x80
)

type Control byte

const (
	ControlOn         Control = 0x04
	ControlUnderscore Control = 0x02
	ControlBlink      Control = 0x01
)

const (
	MaxWidth   = 40
	MaxRows    = 2
	ddramWidth = 0x40
)

// Devicer is a character display, rows and columns are 1-based.
type Devicer interface {
	Clear()
	CursorYX(row, col uint8) bool
	Write(b []byte)
}

// LCD is HD44780 on a 4-bit GPIO bus.
type LCD struct {
	control Control
	pins    gpio.Lineser
	pin_rs  gpio.LineSetFunc // command/data, aliases: A0, RS
	pin_rw  gpio.LineSetFunc // read/write
	pin_e   gpio.LineSetFunc // enable
	pin_d4  gpio.LineSetFunc
	pin_d5  gpio.LineSetFunc
	pin_d6  gpio.LineSetFunc
	pin_d7  gpio.LineSetFunc
	sleep   func(time.Duration)
}

var _ Devicer = new(LCD)

type PinMap struct {
	RS string `hcl:"rs"`
	RW string `hcl:"rw"`
	E  string `hcl:"e"`
	D4 string `hcl:"d4"`
	D5 string `hcl:"d5"`
	D6 string `hcl:"d6"`
	D7 string `hcl:"d7"`
}

func (pm PinMap) lines() ([]uint32, error) {
	names := []string{pm.RS, pm.RW, pm.E, pm.D4, pm.D5, pm.D6, pm.D7}
	result := make([]uint32, len(names))
	for i, s := range names {
		x, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, errors.Annotatef(err, "lcd pinmap line='%s'", s)
		}
		result[i] = uint32(x)
	}
	return result, nil
}

// Open is Init on a freshly opened GPIO chip.
func Open(chipName string, pinmap PinMap, page1 bool) (*LCD, error) {
	chip, err := gpio.Open(chipName, "lcd")
	if err != nil {
		return nil, errors.Annotatef(err, "lcd gpio open chip=%s", chipName)
	}
	self := new(LCD)
	if err = self.Init(chip, pinmap, page1); err != nil {
		chip.Close()
		return nil, err
	}
	return self, nil
}

func (self *LCD) Init(chip gpio.Chiper, pinmap PinMap, page1 bool) error {
	lines, err := pinmap.lines()
	if err != nil {
		return err
	}
	self.pins, err = chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, "lcd", lines...)
	if err != nil {
		return errors.Annotate(err, "lcd gpio open lines")
	}
	self.pin_rs = self.pins.SetFunc(lines[0])
	self.pin_rw = self.pins.SetFunc(lines[1])
	self.pin_e = self.pins.SetFunc(lines[2])
	self.pin_d4 = self.pins.SetFunc(lines[3])
	self.pin_d5 = self.pins.SetFunc(lines[4])
	self.pin_d6 = self.pins.SetFunc(lines[5])
	self.pin_d7 = self.pins.SetFunc(lines[6])
	if self.sleep == nil {
		self.sleep = time.Sleep
	}

	self.init4(page1)
	return nil
}

func (self *LCD) Close() error {
	if self.pins == nil {
		return nil
	}
	return self.pins.Close()
}

func (self *LCD) setAllPins(b byte) {
	self.pin_rs(b)
	self.pin_rw(b)
	self.pin_e(b)
	self.pin_d4(b)
	self.pin_d5(b)
	self.pin_d6(b)
	self.pin_d7(b)
	self.pins.Flush() //nolint:errcheck
}

func (self *LCD) blinkE() {
	self.pin_e(1)
	self.pins.Flush() //nolint:errcheck
	self.sleep(1 * time.Microsecond)
	self.pin_e(0)
	self.pins.Flush() //nolint:errcheck
	self.sleep(1 * time.Microsecond)
}

func (self *LCD) send4(rs, d4, d5, d6, d7 byte) {
	self.pin_rs(rs)
	self.pin_d4(d4)
	self.pin_d5(d5)
	self.pin_d6(d6)
	self.pin_d7(d7)
	self.blinkE()
}

func (self *LCD) init4(page1 bool) {
	self.sleep(20 * time.Millisecond)

	// special sequence
	self.Command(0x33)
	self.Command(0x32)

	self.SetFunction(false, page1)
	self.SetControl(0) // off
	self.SetControl(ControlOn)
	self.Clear()
	self.SetEntryMode(true, false)
}

func bb(b, bit byte) byte {
	if b&(1<<bit) == 0 {
		return 0
	}
	return 1
}

func (self *LCD) Command(c Command) {
	b := byte(c)
	self.send4(0, bb(b, 4), bb(b, 5), bb(b, 6), bb(b, 7))
	self.send4(0, bb(b, 0), bb(b, 1), bb(b, 2), bb(b, 3))
	// TODO poll busy flag, needs RW line switched to input
	self.sleep(40 * time.Microsecond)
	self.setAllPins(0)
}

func (self *LCD) Data(b byte) {
	self.send4(1, bb(b, 4), bb(b, 5), bb(b, 6), bb(b, 7))
	self.send4(1, bb(b, 0), bb(b, 1), bb(b, 2), bb(b, 3))
	self.sleep(40 * time.Microsecond)
	self.setAllPins(0)
}

func (self *LCD) Write(bs []byte) {
	for _, b := range bs {
		self.Data(b)
	}
}

func (self *LCD) Clear() {
	self.Command(CommandClear)
	self.sleep(2 * time.Millisecond)
}

func (self *LCD) Return() {
	self.Command(CommandReturn)
}

func (self *LCD) SetEntryMode(right, shift bool) {
	var cmd Command = 0x04
	if right {
		cmd |= 0x02
	}
	if shift {
		cmd |= 0x01
	}
	self.Command(cmd)
}

func (self *LCD) Control() Control {
	return self.control
}
func (self *LCD) SetControl(new Control) Control {
	old := self.control
	self.control = new
	self.Command(CommandControl | Command(new))
	return old
}

func (self *LCD) SetFunction(bits8, page1 bool) {
	var cmd Command = 0x28
	if bits8 {
		cmd |= 0x10
	}
	if page1 {
		cmd |= 0x02
	}
	self.Command(cmd)
}

func (self *LCD) CursorYX(row, col uint8) bool {
	addr, ok := ddramAddr(row, col)
	if !ok {
		return false
	}
	self.Command(CommandAddress | Command(addr))
	return true
}

func ddramAddr(row, col uint8) (uint8, bool) {
	if !(row > 0 && row <= MaxRows) {
		return 0, false
	}
	if !(col > 0 && col <= MaxWidth) {
		return 0, false
	}
	return (row-1)*ddramWidth + (col - 1), true
}
