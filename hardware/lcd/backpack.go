package lcd

import (
	"github.com/juju/errors"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
	"tinygo.org/x/drivers/hd44780i2c"
)

const DefaultBackpackAddr = 0x27

// Backpack is HD44780 behind a PCF8574 I2C expander.
type Backpack struct {
	dev   hd44780i2c.Device
	bus   i2c.BusCloser
	width uint8
}

var _ Devicer = new(Backpack)

// bridges periph I2C bus to tinygo drivers bus interface
type periphBus struct{ bus i2c.Bus }

func (self periphBus) Tx(addr uint16, w, r []byte) error {
	return self.bus.Tx(addr, w, r)
}

func OpenBackpack(busName string, addr uint8, width uint8) (*Backpack, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "periph/init")
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Annotatef(err, "lcd i2c open bus=%s", busName)
	}
	if addr == 0 {
		addr = DefaultBackpackAddr
	}
	dev := hd44780i2c.New(periphBus{bus}, addr)
	err = dev.Configure(hd44780i2c.Config{
		Width:  width,
		Height: MaxRows,
	})
	if err != nil {
		_ = bus.Close()
		return nil, errors.Annotatef(err, "lcd i2c configure bus=%s addr=%#x", busName, addr)
	}
	return &Backpack{dev: dev, bus: bus, width: width}, nil
}

func (self *Backpack) Close() error { return self.bus.Close() }

func (self *Backpack) Clear() { self.dev.ClearDisplay() }

func (self *Backpack) CursorYX(row, col uint8) bool {
	if _, ok := ddramAddr(row, col); !ok || col > self.width {
		return false
	}
	self.dev.SetCursor(col-1, row-1)
	return true
}

func (self *Backpack) Write(b []byte) { self.dev.Print(b) }
