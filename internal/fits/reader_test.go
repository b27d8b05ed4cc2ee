package fits

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
)

func padCard(s string) string {
	for len(s) < CardLen {
		s += " "
	}
	return s[:CardLen]
}

func logicalCard(name string, v bool) string {
	c := "F"
	if v {
		c = "T"
	}
	return fmt.Sprintf("%-8s= %20s", name, c)
}

func intCard(name string, v int64) string {
	return fmt.Sprintf("%-8s= %20d", name, v)
}

func strCard(name, v string) string {
	return fmt.Sprintf("%-8s= '%s'", name, v)
}

func headerBlock(cards ...string) []byte {
	var buf bytes.Buffer
	for _, c := range cards {
		buf.WriteString(padCard(c))
	}
	for buf.Len()%BlockSize != 0 {
		buf.WriteByte(' ')
	}
	return buf.Bytes()
}

func padBlock(data []byte) []byte {
	out := make([]byte, blockRound(int64(len(data))))
	copy(out, data)
	return out
}

func minimalPrimary() []byte {
	return headerBlock(
		logicalCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 0),
		"END",
	)
}

func TestOpenMemoryMinimal(t *testing.T) {
	f, err := OpenMemory(minimalPrimary(), "mem.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	if f.Name() != "mem.fits" {
		t.Errorf("Name = %q", f.Name())
	}
	if f.NumHDUs() != 1 {
		t.Fatalf("NumHDUs = %d, want 1", f.NumHDUs())
	}
	hdu := f.HDU(1)
	if hdu.Type != PrimaryArray {
		t.Errorf("Type = %v, want PrimaryArray", hdu.Type)
	}
	if !hdu.EndFound {
		t.Error("END not found")
	}
	if hdu.NCards != 4 {
		t.Errorf("NCards = %d, want 4", hdu.NCards)
	}
	if hdu.DataSize != 0 {
		t.Errorf("DataSize = %d, want 0", hdu.DataSize)
	}
	if f.ExtraBytes() != 0 {
		t.Errorf("ExtraBytes = %d, want 0", f.ExtraBytes())
	}
	if f.HDU(0) != nil || f.HDU(2) != nil {
		t.Error("out-of-range HDU lookup must return nil")
	}
}

func TestOpenMemoryRejectsNonFITS(t *testing.T) {
	buf := bytes.Repeat([]byte{'x'}, BlockSize)
	if _, err := OpenMemory(buf, "junk"); !errors.Is(err, ErrNotFITS) {
		t.Fatalf("err = %v, want ErrNotFITS", err)
	}
}

func TestOpenMemoryRejectsShortFile(t *testing.T) {
	if _, err := OpenMemory(make([]byte, 100), "short"); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("err = %v, want ErrEmptyFile", err)
	}
}

func TestOpenMemoryMultiHDU(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(headerBlock(
		logicalCard("SIMPLE", true),
		intCard("BITPIX", 16),
		intCard("NAXIS", 2),
		intCard("NAXIS1", 4),
		intCard("NAXIS2", 2),
		"END",
	))
	buf.Write(padBlock(make([]byte, 16)))
	buf.Write(headerBlock(
		strCard("XTENSION", "IMAGE"),
		intCard("BITPIX", 8),
		intCard("NAXIS", 1),
		intCard("NAXIS1", 5),
		intCard("PCOUNT", 0),
		intCard("GCOUNT", 1),
		"END",
	))
	buf.Write(padBlock([]byte{1, 2, 3, 4, 5}))

	f, err := OpenMemory(buf.Bytes(), "multi.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	if f.NumHDUs() != 2 {
		t.Fatalf("NumHDUs = %d, want 2", f.NumHDUs())
	}
	p := f.HDU(1)
	if p.DataSize != 16 {
		t.Errorf("primary DataSize = %d, want 16", p.DataSize)
	}
	if p.DataStart != BlockSize {
		t.Errorf("primary DataStart = %d, want %d", p.DataStart, BlockSize)
	}
	ext := f.HDU(2)
	if ext.Type != ImageExt {
		t.Errorf("extension Type = %v, want ImageExt", ext.Type)
	}
	if ext.HeaderStart != 2*BlockSize {
		t.Errorf("extension HeaderStart = %d, want %d", ext.HeaderStart, 2*BlockSize)
	}
	if ext.DataSize != 5 {
		t.Errorf("extension DataSize = %d, want 5", ext.DataSize)
	}
}

func TestOpenMemoryMissingEnd(t *testing.T) {
	block := headerBlock(
		logicalCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 0),
	)
	f, err := OpenMemory(block, "noend.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	hdu := f.HDU(1)
	if hdu == nil {
		t.Fatal("no HDU")
	}
	if hdu.EndFound {
		t.Error("EndFound = true, want false")
	}
	if hdu.NCards != cardsPerBlock {
		t.Errorf("NCards = %d, want %d", hdu.NCards, cardsPerBlock)
	}
}

func TestOpenMemoryExtraBytes(t *testing.T) {
	buf := append(minimalPrimary(), bytes.Repeat([]byte{'x'}, 100)...)
	f, err := OpenMemory(buf, "trailing.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()
	if f.ExtraBytes() != 100 {
		t.Errorf("ExtraBytes = %d, want 100", f.ExtraBytes())
	}
}

func TestOpenMemoryExtraBlock(t *testing.T) {
	buf := append(minimalPrimary(), bytes.Repeat([]byte{'x'}, BlockSize)...)
	f, err := OpenMemory(buf, "trailing.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()
	if f.NumHDUs() != 1 {
		t.Errorf("NumHDUs = %d, want 1", f.NumHDUs())
	}
	if f.ExtraBytes() != BlockSize {
		t.Errorf("ExtraBytes = %d, want %d", f.ExtraBytes(), BlockSize)
	}
}

func TestDataBytes(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(headerBlock(
		logicalCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 1),
		intCard("NAXIS1", 10),
		"END",
	))
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	buf.Write(padBlock(data))

	f, err := OpenMemory(buf.Bytes(), "data.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()
	hdu := f.HDU(1)

	got, err := f.DataBytes(hdu, 0, 10)
	if err != nil {
		t.Fatalf("DataBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("DataBytes = %v, want %v", got, data)
	}
	got, err = f.DataBytes(hdu, 4, 3)
	if err != nil {
		t.Fatalf("DataBytes offset: %v", err)
	}
	if !bytes.Equal(got, []byte{4, 5, 6}) {
		t.Errorf("DataBytes offset = %v", got)
	}

	if _, err := f.DataBytes(hdu, 5000, 10); err == nil {
		t.Error("read past end of file did not fail")
	}
	if len(f.ErrorStack()) == 0 {
		t.Error("failed read left no message on the error stack")
	}
	f.ClearErrors()
	if len(f.ErrorStack()) != 0 {
		t.Error("ClearErrors left messages behind")
	}
}

func descriptorTable(t *testing.T, tform string, rowLen int64, rowData []byte, heap []byte) *File {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(minimalPrimary())
	buf.Write(headerBlock(
		strCard("XTENSION", "BINTABLE"),
		intCard("BITPIX", 8),
		intCard("NAXIS", 2),
		intCard("NAXIS1", rowLen),
		intCard("NAXIS2", 1),
		intCard("PCOUNT", int64(len(heap))),
		intCard("GCOUNT", 1),
		intCard("TFIELDS", 1),
		strCard("TFORM1", tform),
		"END",
	))
	buf.Write(padBlock(append(append([]byte{}, rowData...), heap...)))

	f, err := OpenMemory(buf.Bytes(), "vla.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	return f
}

func TestReadDescriptorP(t *testing.T) {
	row := make([]byte, 8)
	binary.BigEndian.PutUint32(row[0:4], 3)
	binary.BigEndian.PutUint32(row[4:8], 12)
	f := descriptorTable(t, "1PE(4)", 8, row, make([]byte, 24))
	defer f.Close()

	length, offset, err := f.ReadDescriptor(f.HDU(2), 1, 1)
	if err != nil {
		t.Fatalf("ReadDescriptor: %v", err)
	}
	if length != 3 || offset != 12 {
		t.Errorf("descriptor = (%d, %d), want (3, 12)", length, offset)
	}
}

func TestReadDescriptorPUnsigned(t *testing.T) {
	row := make([]byte, 8)
	binary.BigEndian.PutUint32(row[0:4], 2)
	binary.BigEndian.PutUint32(row[4:8], 0x80000000)
	f := descriptorTable(t, "1PE(4)", 8, row, make([]byte, 24))
	defer f.Close()

	length, offset, err := f.ReadDescriptor(f.HDU(2), 1, 1)
	if err != nil {
		t.Fatalf("ReadDescriptor: %v", err)
	}
	if length != 2 || offset != 1<<31 {
		t.Errorf("descriptor = (%d, %d), want (2, %d)", length, offset, int64(1)<<31)
	}
}

func TestReadDescriptorQ(t *testing.T) {
	row := make([]byte, 16)
	binary.BigEndian.PutUint64(row[0:8], 5)
	binary.BigEndian.PutUint64(row[8:16], 40)
	f := descriptorTable(t, "1QD(8)", 16, row, make([]byte, 80))
	defer f.Close()

	length, offset, err := f.ReadDescriptor(f.HDU(2), 1, 1)
	if err != nil {
		t.Fatalf("ReadDescriptor: %v", err)
	}
	if length != 5 || offset != 40 {
		t.Errorf("descriptor = (%d, %d), want (5, 40)", length, offset)
	}
}

func TestReadDescriptorRejectsScalarColumn(t *testing.T) {
	f := descriptorTable(t, "1J", 4, make([]byte, 4), nil)
	defer f.Close()
	if _, _, err := f.ReadDescriptor(f.HDU(2), 1, 1); err == nil {
		t.Error("scalar column accepted as descriptor")
	}
	if _, _, err := f.ReadDescriptor(f.HDU(2), 9, 1); err == nil {
		t.Error("out-of-range column accepted")
	}
}

func TestHeaderFill(t *testing.T) {
	f, err := OpenMemory(minimalPrimary(), "fill.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	fill := f.HDU(1).HeaderFill()
	if len(fill) != BlockSize-4*CardLen {
		t.Fatalf("fill length = %d, want %d", len(fill), BlockSize-4*CardLen)
	}
	for _, b := range fill {
		if b != ' ' {
			t.Fatalf("fill contains %q, want spaces", b)
		}
	}
}

func TestDataFill(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(headerBlock(
		logicalCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 1),
		intCard("NAXIS1", 10),
		"END",
	))
	buf.Write(padBlock(bytes.Repeat([]byte{7}, 10)))

	f, err := OpenMemory(buf.Bytes(), "datafill.fits")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer f.Close()

	fill, err := f.DataFill(f.HDU(1))
	if err != nil {
		t.Fatalf("DataFill: %v", err)
	}
	if len(fill) != BlockSize-10 {
		t.Errorf("fill length = %d, want %d", len(fill), BlockSize-10)
	}
}
