package fits

import (
	"bytes"
	"fmt"
	"testing"
)

func TestSum32(t *testing.T) {
	if got := Sum32([]byte{0, 0, 0, 1}, 0); got != 1 {
		t.Errorf("Sum32 = %#x, want 1", got)
	}
	if got := Sum32([]byte{1, 0, 0, 0}, 0); got != 0x01000000 {
		t.Errorf("Sum32 = %#x, want 0x01000000", got)
	}
	if got := Sum32([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 0); got != 0xFFFFFFFF {
		t.Errorf("Sum32 = %#x, want 0xFFFFFFFF", got)
	}
	// Carries wrap around in ones-complement arithmetic.
	if got := Sum32([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 2}, 0); got != 2 {
		t.Errorf("Sum32 with carry = %#x, want 2", got)
	}
	// The seed continues a running sum.
	buf := []byte{0, 0, 0, 5}
	if got := Sum32(buf, 10); got != 15 {
		t.Errorf("Sum32 with seed = %#x, want 15", got)
	}
}

func TestEncodeChecksumAllOnes(t *testing.T) {
	// The complement of an all-ones sum is zero, which encodes as the
	// writer's placeholder string.
	if got := EncodeChecksum(0xFFFFFFFF); got != "0000000000000000" {
		t.Errorf("EncodeChecksum(0xFFFFFFFF) = %q", got)
	}
}

func TestEncodeChecksumAlphabet(t *testing.T) {
	for _, sum := range []uint32{0, 1, 0x01020304, 0xDEADBEEF, 0x868380E8} {
		enc := EncodeChecksum(sum)
		if len(enc) != 16 {
			t.Fatalf("EncodeChecksum(%#x) length = %d", sum, len(enc))
		}
		for i := 0; i < len(enc); i++ {
			c := enc[i]
			if c < '0' || c > 'z' {
				t.Errorf("EncodeChecksum(%#x) byte %d = %q out of range", sum, i, c)
			}
			for _, ex := range checksumExcludes {
				if c == ex {
					t.Errorf("EncodeChecksum(%#x) contains excluded %q", sum, c)
				}
			}
		}
	}
}

func checksummedFile(data []byte) []byte {
	dataBlocks := padBlock(data)
	dataSum := Sum32(dataBlocks, 0)

	header := headerBlock(
		logicalCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 1),
		intCard("NAXIS1", int64(len(data))),
		fmt.Sprintf("%-8s= '%10d'", "DATASUM", dataSum),
		strCard("CHECKSUM", "0000000000000000"),
		"END",
	)
	total := Sum32(header, dataSum)
	patch := []byte(EncodeChecksum(total))
	i := bytes.Index(header, []byte("0000000000000000"))
	copy(header[i:], patch)

	return append(header, dataBlocks...)
}

func TestVerifyChecksumsOK(t *testing.T) {
	f, err := OpenMemory(checksummedFile([]byte{1, 2, 3, 4}), "sum.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	dataOK, hduOK, err := f.VerifyChecksums(f.HDU(1))
	if err != nil {
		t.Fatalf("VerifyChecksums: %v", err)
	}
	if dataOK != ChecksumOK {
		t.Errorf("data status = %d, want OK", dataOK)
	}
	if hduOK != ChecksumOK {
		t.Errorf("HDU status = %d, want OK", hduOK)
	}
}

func TestVerifyChecksumsCorruptData(t *testing.T) {
	buf := checksummedFile([]byte{1, 2, 3, 4})
	buf[BlockSize] ^= 0xFF // first data byte
	f, err := OpenMemory(buf, "corrupt.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	dataOK, hduOK, err := f.VerifyChecksums(f.HDU(1))
	if err != nil {
		t.Fatalf("VerifyChecksums: %v", err)
	}
	if dataOK != ChecksumBad {
		t.Errorf("data status = %d, want Bad", dataOK)
	}
	if hduOK != ChecksumBad {
		t.Errorf("HDU status = %d, want Bad", hduOK)
	}
}

func TestVerifyChecksumsMissing(t *testing.T) {
	f, err := OpenMemory(minimalPrimary(), "plain.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	dataOK, hduOK, err := f.VerifyChecksums(f.HDU(1))
	if err != nil {
		t.Fatalf("VerifyChecksums: %v", err)
	}
	if dataOK != ChecksumMissing || hduOK != ChecksumMissing {
		t.Errorf("status = (%d, %d), want missing", dataOK, hduOK)
	}
}
