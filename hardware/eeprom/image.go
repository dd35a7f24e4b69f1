package eeprom

import (
	"sync"
)

// Image is volatile Cells in memory. Fresh cells read 0xff like erased EEPROM.
type Image struct {
	mu sync.Mutex
	b  []byte
}

var _ Cells = new(Image)

func NewImage(size int) *Image {
	b := make([]byte, size)
	for i := range b {
		b[i] = 0xff
	}
	return &Image{b: b}
}

func (self *Image) Size() int { return len(self.b) }

func (self *Image) ReadCell(addr uint16) (byte, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if err := checkAddr(addr, len(self.b)); err != nil {
		return 0, err
	}
	return self.b[addr], nil
}

func (self *Image) WriteCell(addr uint16, b byte) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if err := checkAddr(addr, len(self.b)); err != nil {
		return err
	}
	self.b[addr] = b
	return nil
}

func (self *Image) MarshalBinary() ([]byte, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]byte(nil), self.b...), nil
}

// UnmarshalBinary keeps image size, shorter input leaves the tail untouched.
func (self *Image) UnmarshalBinary(b []byte) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	copy(self.b, b)
	return nil
}
