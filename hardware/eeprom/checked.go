package eeprom

import (
	"github.com/juju/errors"
	"github.com/temoto/lcdmenu/crc"
)

// ErrChecksum is returned as error cause when stored checksum does not match.
// Fresh chip (all 0xff) reads with this error.
var ErrChecksum = errors.New("eeprom checksum mismatch")

// CheckedSize is number of cells used by checked int16.
const CheckedSize = 3

// ReadInt16Checked reads int16 at addr and CRC-8 of its two bytes at addr+2.
func ReadInt16Checked(c Cells, addr uint16) (int16, error) {
	if err := checkSpan(addr, CheckedSize); err != nil {
		return 0, err
	}
	v, err := ReadInt16(c, addr)
	if err != nil {
		return 0, errors.Trace(err)
	}
	sum, err := c.ReadCell(addr + 2)
	if err != nil {
		return 0, errors.Annotatef(err, "eeprom read int16 addr=%d crc", addr)
	}
	if expect := checksum16(v); sum != expect {
		return v, errors.Annotatef(ErrChecksum, "addr=%d stored=%02x expected=%02x", addr, sum, expect)
	}
	return v, nil
}

// WriteInt16Checked writes value first, then checksum,
// so interrupted write is detected on next read.
func WriteInt16Checked(c Cells, addr uint16, v int16) error {
	if err := checkSpan(addr, CheckedSize); err != nil {
		return err
	}
	if err := WriteInt16(c, addr, v); err != nil {
		return errors.Trace(err)
	}
	if err := c.WriteCell(addr+2, checksum16(v)); err != nil {
		return errors.Annotatef(err, "eeprom write int16 addr=%d crc", addr)
	}
	return nil
}

func IsChecksum(err error) bool { return errors.Cause(err) == ErrChecksum }

func checksum16(v int16) byte {
	u := uint16(v)
	return crc.Checksum(byte(u>>8), byte(u))
}
