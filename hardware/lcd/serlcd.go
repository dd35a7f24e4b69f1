package lcd

import (
	"io"

	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/helpers"
	"github.com/temoto/lcdmenu/log2"
	"go.bug.st/serial"
)

const (
	serlcdCommand byte = 0xfe
	serlcdClear   byte = 0x01
	serlcdAddress byte = 0x80
)

// SerLCD is a serial backpack that takes raw HD44780 commands after 0xFE prefix.
type SerLCD struct {
	Log  *log2.Log
	port io.WriteCloser
}

var _ Devicer = new(SerLCD)

func OpenSerLCD(portName string, baud int, log *log2.Log) (*SerLCD, error) {
	if baud == 0 {
		baud = 9600
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, errors.Annotatef(err, "serlcd open port=%s", portName)
	}
	return &SerLCD{Log: log, port: port}, nil
}

func (self *SerLCD) Close() error { return self.port.Close() }

func (self *SerLCD) Clear() {
	self.send([]byte{serlcdCommand, serlcdClear})
}

func (self *SerLCD) CursorYX(row, col uint8) bool {
	addr, ok := ddramAddr(row, col)
	if !ok {
		return false
	}
	self.send([]byte{serlcdCommand, serlcdAddress | addr})
	return true
}

func (self *SerLCD) Write(b []byte) {
	buf := make([]byte, len(b))
	for i, x := range b {
		if x == serlcdCommand {
			// would start a command sequence
			x = '?'
		}
		buf[i] = x
	}
	self.send(buf)
}

func (self *SerLCD) send(b []byte) {
	if err := helpers.WriteAll(self.port, b); err != nil {
		self.Log.Errorf("serlcd write err=%v", err)
	}
}
