// Package eeprom is byte addressable persistent storage
// with the two-cell big-endian int16 codec on top.
package eeprom

import (
	"math"

	"github.com/juju/errors"
)

// Cells is byte addressable storage, like Arduino EEPROM.read/write.
type Cells interface {
	ReadCell(addr uint16) (byte, error)
	WriteCell(addr uint16, b byte) error
}

// Size returns number of cells, or full 16-bit address space when c does not tell.
func Size(c Cells) int {
	if s, ok := c.(interface{ Size() int }); ok {
		return s.Size()
	}
	return math.MaxUint16 + 1
}

// ReadInt16 reads high byte at addr, low byte at addr+1.
func ReadInt16(c Cells, addr uint16) (int16, error) {
	if err := checkSpan(addr, 2); err != nil {
		return 0, err
	}
	high, err := c.ReadCell(addr)
	if err != nil {
		return 0, errors.Annotatef(err, "eeprom read int16 addr=%d high", addr)
	}
	low, err := c.ReadCell(addr + 1)
	if err != nil {
		return 0, errors.Annotatef(err, "eeprom read int16 addr=%d low", addr)
	}
	return int16(uint16(high)<<8 | uint16(low)), nil
}

// WriteInt16 writes high byte at addr, then low byte at addr+1.
func WriteInt16(c Cells, addr uint16, v int16) error {
	if err := checkSpan(addr, 2); err != nil {
		return err
	}
	u := uint16(v)
	if err := c.WriteCell(addr, byte(u>>8)); err != nil {
		return errors.Annotatef(err, "eeprom write int16 addr=%d high", addr)
	}
	if err := c.WriteCell(addr+1, byte(u)); err != nil {
		return errors.Annotatef(err, "eeprom write int16 addr=%d low", addr)
	}
	return nil
}

func checkAddr(addr uint16, size int) error {
	if int(addr) >= size {
		return errors.NotValidf("eeprom addr=%d size=%d", addr, size)
	}
	return nil
}

// checkSpan rejects records that would wrap past the last address to cell 0.
func checkSpan(addr uint16, n uint32) error {
	if uint32(addr)+n-1 > math.MaxUint16 {
		return errors.NotValidf("eeprom addr=%d span=%d", addr, n)
	}
	return nil
}
