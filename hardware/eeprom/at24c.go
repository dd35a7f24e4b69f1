package eeprom

import (
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/log2"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

const DefaultAT24CAddr = 0x50

// AT24C write cycle, chip ignores the bus until it completes
const at24cWriteDelay = 5 * time.Millisecond

type txer interface {
	Tx(w, r []byte) error
}

// AT24C is an I2C EEPROM chip (24C32 and larger, two byte cell address).
type AT24C struct {
	Log   *log2.Log
	mu    sync.Mutex
	dev   txer
	bus   i2c.BusCloser
	size  int
	sleep func(time.Duration)
}

var _ Cells = new(AT24C)

func NewAT24C(busName string, addr uint16, size int, log *log2.Log) (*AT24C, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "periph/init")
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Annotatef(err, "eeprom i2c open bus=%s", busName)
	}
	if addr == 0 {
		addr = DefaultAT24CAddr
	}
	self := newAT24C(&i2c.Dev{Bus: bus, Addr: addr}, size, log)
	self.bus = bus
	return self, nil
}

func newAT24C(dev txer, size int, log *log2.Log) *AT24C {
	return &AT24C{
		Log:   log,
		dev:   dev,
		size:  size,
		sleep: time.Sleep,
	}
}

func (self *AT24C) Size() int { return self.size }

func (self *AT24C) Close() error {
	if self.bus == nil {
		return nil
	}
	return self.bus.Close()
}

func (self *AT24C) ReadCell(addr uint16) (byte, error) {
	if err := checkAddr(addr, self.size); err != nil {
		return 0, err
	}
	self.mu.Lock()
	defer self.mu.Unlock()
	var r [1]byte
	if err := self.dev.Tx([]byte{byte(addr >> 8), byte(addr)}, r[:]); err != nil {
		return 0, errors.Annotatef(err, "at24c read addr=%d", addr)
	}
	return r[0], nil
}

func (self *AT24C) WriteCell(addr uint16, b byte) error {
	if err := checkAddr(addr, self.size); err != nil {
		return err
	}
	self.mu.Lock()
	defer self.mu.Unlock()
	if err := self.dev.Tx([]byte{byte(addr >> 8), byte(addr), b}, nil); err != nil {
		return errors.Annotatef(err, "at24c write addr=%d", addr)
	}
	self.Log.Debugf("at24c write addr=%d value=%02x", addr, b)
	self.sleep(at24cWriteDelay)
	return nil
}
