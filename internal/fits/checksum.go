package fits

import (
	"strconv"
	"strings"
)

// Sum32 folds buf into the running ones-complement 32-bit checksum
// used by the CHECKSUM convention. buf length must be a multiple of
// four, which every whole FITS block satisfies.
func Sum32(buf []byte, sum uint32) uint32 {
	hi := sum >> 16
	lo := sum & 0xFFFF
	for i := 0; i+4 <= len(buf); i += 4 {
		hi += uint32(buf[i])<<8 | uint32(buf[i+1])
		lo += uint32(buf[i+2])<<8 | uint32(buf[i+3])
	}
	for hi>>16 != 0 || lo>>16 != 0 {
		hiCarry := hi >> 16
		loCarry := lo >> 16
		hi = (hi & 0xFFFF) + loCarry
		lo = (lo & 0xFFFF) + hiCarry
	}
	return hi<<16 | lo
}

var checksumExcludes = []byte{':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^', '_', '`'}

// EncodeChecksum renders a 32-bit sum as the 16-character ASCII form
// stored in the CHECKSUM keyword. The sum is complemented, spread over
// 16 printable characters avoiding punctuation, and rotated right one
// place.
func EncodeChecksum(sum uint32) string {
	value := ^sum
	var ascii [16]byte
	for i := 0; i < 4; i++ {
		b := byte(value >> (24 - 8*i))
		quotient := b/4 + '0'
		remainder := b % 4
		asc := [4]byte{quotient, quotient, quotient, quotient}
		asc[0] += remainder
		for changed := true; changed; {
			changed = false
			for _, ex := range checksumExcludes {
				for k := 0; k < 4; k += 2 {
					if asc[k] == ex || asc[k+1] == ex {
						asc[k]++
						asc[k+1]--
						changed = true
					}
				}
			}
		}
		for j := 0; j < 4; j++ {
			ascii[4*j+i] = asc[j]
		}
	}
	var out [16]byte
	for i := 0; i < 16; i++ {
		out[(i+1)%16] = ascii[i]
	}
	return string(out[:])
}

// ChecksumStatus is the outcome of one checksum comparison: +1 when it
// verifies, -1 when it does not, 0 when the keyword is absent.
type ChecksumStatus int

const (
	ChecksumMissing ChecksumStatus = 0
	ChecksumOK      ChecksumStatus = 1
	ChecksumBad     ChecksumStatus = -1
)

// VerifyChecksums computes the data and whole-HDU checksums and
// compares them against the DATASUM and CHECKSUM keywords.
func (f *File) VerifyChecksums(hdu *HDU) (dataOK, hduOK ChecksumStatus, err error) {
	var haveData, haveHDU bool
	var declared uint64
	for i := 0; i < hdu.NCards; i++ {
		card := hdu.Card(i)
		if len(card) < 8 {
			continue
		}
		switch strings.TrimRight(card[:8], " ") {
		case "DATASUM":
			s := stringValue(rawValue(card))
			v, perr := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
			if perr == nil {
				haveData = true
				declared = v
			}
		case "CHECKSUM":
			haveHDU = true
		}
	}
	if !haveData && !haveHDU {
		return ChecksumMissing, ChecksumMissing, nil
	}

	dataLen := blockRound(hdu.DataSize)
	var dataSum uint32
	for off := int64(0); off < dataLen; off += BlockSize {
		block, rerr := f.DataBytes(hdu, off, BlockSize)
		if rerr != nil {
			return ChecksumMissing, ChecksumMissing, rerr
		}
		dataSum = Sum32(block, dataSum)
	}

	if haveData {
		if uint64(dataSum) == declared {
			dataOK = ChecksumOK
		} else {
			dataOK = ChecksumBad
		}
	}
	if haveHDU {
		total := Sum32(hdu.headerRaw, dataSum)
		// 0xFFFFFFFF is minus zero in ones-complement arithmetic.
		if total == 0xFFFFFFFF || total == 0 {
			hduOK = ChecksumOK
		} else {
			hduOK = ChecksumBad
		}
	}
	return dataOK, hduOK, nil
}
