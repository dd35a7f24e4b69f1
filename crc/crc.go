// Package crc is CRC-8 with polynomial 0x93, MSB first, no reflection.
package crc

const Poly93 byte = 0x93

func Update(crc, data byte) byte {
	crc ^= data
	for i := 0; i < 8; i++ {
		if crc&0x80 != 0 {
			crc = crc<<1 ^ Poly93
		} else {
			crc <<= 1
		}
	}
	return crc
}

// Checksum of bs with zero initial value.
func Checksum(bs ...byte) byte {
	var crc byte
	for _, b := range bs {
		crc = Update(crc, b)
	}
	return crc
}
