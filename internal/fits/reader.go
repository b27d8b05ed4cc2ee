package fits

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrNotFITS indicates the file does not begin with a SIMPLE card.
	ErrNotFITS = errors.New("block 1 does not begin with a SIMPLE card")
	// ErrEmptyFile indicates the file holds less than one FITS block.
	ErrEmptyFile = errors.New("file is shorter than one FITS block")
)

const maxErrStack = 20

// File is an open FITS file with its HDUs located. All reads go
// through the File so that failures land on its error stack, which
// the verifier drains into diagnostics.
type File struct {
	name string
	src  dataSource

	hdus       []*HDU
	extraBytes int64

	errstack []string
}

func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, err
	}
	f := &File{name: path, src: newBlockSource(fh, stat.Size(), 0)}
	if err := f.scan(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// OpenMemory opens a FITS image held in a byte buffer. The label is
// used wherever a file name would be reported.
func OpenMemory(buf []byte, label string) (*File, error) {
	f := &File{name: label, src: &memSource{data: buf}}
	if err := f.scan(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (f *File) Close() error {
	if f.src == nil {
		return nil
	}
	err := f.src.Close()
	f.src = nil
	return err
}

func (f *File) Name() string { return f.name }

func (f *File) Size() int64 { return f.src.Size() }

func (f *File) NumHDUs() int { return len(f.hdus) }

// HDU returns the n-th HDU, 1-based. Returns nil when out of range.
func (f *File) HDU(n int) *HDU {
	if n < 1 || n > len(f.hdus) {
		return nil
	}
	return f.hdus[n-1]
}

// ExtraBytes reports how many bytes follow the last recognized HDU.
func (f *File) ExtraBytes() int64 { return f.extraBytes }

func (f *File) pushErr(format string, args ...interface{}) {
	if len(f.errstack) < maxErrStack {
		f.errstack = append(f.errstack, fmt.Sprintf(format, args...))
	}
}

// ErrorStack returns the accumulated low-level read error messages.
func (f *File) ErrorStack() []string {
	out := make([]string, len(f.errstack))
	copy(out, f.errstack)
	return out
}

func (f *File) ClearErrors() { f.errstack = nil }

func blockRound(n int64) int64 {
	return (n + BlockSize - 1) / BlockSize * BlockSize
}

func (f *File) scan() error {
	size := f.src.Size()
	if size < BlockSize {
		f.pushErr("file %s is only %d bytes long", f.name, size)
		return ErrEmptyFile
	}
	pos := int64(0)
	for pos+BlockSize <= size {
		probe, err := f.src.Slice(pos, 8)
		if err != nil {
			f.pushErr("cannot read block at byte %d: %v", pos, err)
			return err
		}
		lead := string(probe)
		if len(f.hdus) == 0 {
			if lead != "SIMPLE  " {
				f.pushErr("block 1 does not begin with a SIMPLE card")
				return ErrNotFITS
			}
		} else if lead != "XTENSION" {
			// Anything after the last HDU that is not an extension
			// header is unrecognized trailing content.
			f.extraBytes = size - pos
			return nil
		}
		hdu, next, err := f.scanHDU(pos)
		if err != nil {
			return err
		}
		hdu.Num = len(f.hdus) + 1
		if hdu.Num == 1 {
			hdu.Type = PrimaryArray
		}
		f.hdus = append(f.hdus, hdu)
		pos = next
	}
	if pos < size {
		f.extraBytes = size - pos
	}
	return nil
}

// scanHDU reads header blocks from start until the END card, collects
// the keyword values needed to size the data region, and returns the
// offset of the next HDU.
func (f *File) scanHDU(start int64) (*HDU, int64, error) {
	hdu := &HDU{HeaderStart: start, Type: UnknownExt, Gcount: 1, Bitpix: 8}
	size := f.src.Size()

	tform := map[int64]string{}
	ttype := map[int64]string{}
	tbcol := map[int64]int64{}

	pos := start
	for !hdu.EndFound && pos+BlockSize <= size {
		block, err := f.src.Slice(pos, BlockSize)
		if err != nil {
			f.pushErr("cannot read header block at byte %d: %v", pos, err)
			return nil, 0, err
		}
		hdu.headerRaw = append(hdu.headerRaw, block...)
		for i := 0; i < cardsPerBlock; i++ {
			card := string(block[i*CardLen : (i+1)*CardLen])
			hdu.NCards++
			if card[:8] == "END     " {
				hdu.EndFound = true
				break
			}
			f.scanCard(hdu, card, tform, ttype, tbcol)
		}
		pos += BlockSize
	}
	hdu.HeaderSize = pos - start
	hdu.DataStart = pos

	if !hdu.EndFound {
		// Without an END card the header swallows the rest of the
		// file. The verifier reports the missing END.
		return hdu, size, nil
	}

	buildColumns(hdu, tform, ttype, tbcol)
	hdu.DataSize = dataSizeOf(hdu)
	next := hdu.DataStart + blockRound(hdu.DataSize)
	if next > size {
		f.pushErr("data region of HDU at byte %d extends past end of file", start)
		next = size
	}
	return hdu, next, nil
}

func dataSizeOf(hdu *HDU) int64 {
	if hdu.Naxis == 0 {
		return 0
	}
	elems := int64(1)
	for _, n := range hdu.Naxes {
		if n < 0 {
			return 0
		}
		elems *= n
	}
	bytesPer := hdu.Bitpix
	if bytesPer < 0 {
		bytesPer = -bytesPer
	}
	bytesPer /= 8
	if bytesPer == 0 {
		bytesPer = 1
	}
	gcount := hdu.Gcount
	if gcount < 1 {
		gcount = 1
	}
	return bytesPer * gcount * (hdu.Pcount + elems)
}

func (f *File) scanCard(hdu *HDU, card string, tform map[int64]string, ttype map[int64]string, tbcol map[int64]int64) {
	name := strings.TrimRight(card[:8], " ")
	switch {
	case name == "XTENSION":
		switch stringValue(rawValue(card)) {
		case "IMAGE", "IUEIMAGE":
			hdu.Type = ImageExt
		case "TABLE":
			hdu.Type = AsciiTable
		case "BINTABLE", "A3DTABLE", "3DTABLE":
			hdu.Type = BinTable
		default:
			hdu.Type = UnknownExt
		}
	case name == "BITPIX":
		if v, ok := intValue(rawValue(card)); ok {
			hdu.Bitpix = v
		}
	case name == "NAXIS":
		if v, ok := intValue(rawValue(card)); ok && v >= 0 && v <= 999 {
			hdu.Naxis = v
			hdu.Naxes = make([]int64, v)
		}
	case name == "PCOUNT":
		if v, ok := intValue(rawValue(card)); ok {
			hdu.Pcount = v
		}
	case name == "GCOUNT":
		if v, ok := intValue(rawValue(card)); ok {
			hdu.Gcount = v
		}
	case name == "TFIELDS":
		if v, ok := intValue(rawValue(card)); ok && v >= 0 {
			hdu.Tfields = v
		}
	case name == "THEAP":
		if v, ok := intValue(rawValue(card)); ok {
			hdu.Theap = v
		}
	case strings.HasPrefix(name, "NAXIS"):
		if n, ok := keyIndex(name, "NAXIS"); ok && n >= 1 && int(n) <= len(hdu.Naxes) {
			if v, ok := intValue(rawValue(card)); ok {
				hdu.Naxes[n-1] = v
			}
		}
	case strings.HasPrefix(name, "TFORM"):
		if n, ok := keyIndex(name, "TFORM"); ok {
			tform[n] = stringValue(rawValue(card))
		}
	case strings.HasPrefix(name, "TTYPE"):
		if n, ok := keyIndex(name, "TTYPE"); ok {
			ttype[n] = stringValue(rawValue(card))
		}
	case strings.HasPrefix(name, "TBCOL"):
		if n, ok := keyIndex(name, "TBCOL"); ok {
			if v, vok := intValue(rawValue(card)); vok {
				tbcol[n] = v
			}
		}
	}
}

func keyIndex(name, prefix string) (int64, bool) {
	suffix := name[len(prefix):]
	if suffix == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// rawValue returns the value field of a card with the comment stripped
// and surrounding blanks removed. Cards without the "= " indicator
// yield "".
func rawValue(card string) string {
	if len(card) < 10 || card[8] != '=' || card[9] != ' ' {
		return ""
	}
	v := card[10:]
	inQuote := false
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' {
			inQuote = !inQuote
			continue
		}
		if v[i] == '/' && !inQuote {
			v = v[:i]
			break
		}
	}
	return strings.TrimSpace(v)
}

// stringValue strips the quotes from a string value and collapses the
// '' escape. Non-string input is returned trimmed.
func stringValue(raw string) string {
	if len(raw) < 2 || raw[0] != '\'' {
		return strings.TrimSpace(raw)
	}
	body := raw[1:]
	if i := strings.LastIndexByte(body, '\''); i >= 0 {
		body = body[:i]
	}
	body = strings.ReplaceAll(body, "''", "'")
	return strings.TrimRight(body, " ")
}

func intValue(raw string) (int64, bool) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DataBytes reads n bytes of the HDU data region starting at off,
// both relative to the start of the data.
func (f *File) DataBytes(hdu *HDU, off, n int64) ([]byte, error) {
	if off < 0 || n < 0 {
		return nil, fmt.Errorf("negative data range %d+%d", off, n)
	}
	abs := hdu.DataStart + off
	if abs+n > f.src.Size() {
		f.pushErr("read of %d bytes at data offset %d runs past end of file", n, off)
		return nil, fmt.Errorf("data read past end of file")
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := f.src.ReadAt(buf, abs); err != nil {
		f.pushErr("read at data offset %d: %v", off, err)
		return nil, err
	}
	return buf, nil
}

// ReadDescriptor reads the variable-length array descriptor of the
// given column (1-based) in the given row (1-based) and returns the
// element count and heap offset.
func (f *File) ReadDescriptor(hdu *HDU, col int, row int64) (length, offset int64, err error) {
	if col < 1 || col > len(hdu.Columns) {
		return 0, 0, fmt.Errorf("column %d out of range", col)
	}
	c := hdu.Columns[col-1]
	if !c.Variable {
		return 0, 0, fmt.Errorf("column %d is not a descriptor column", col)
	}
	pos := (row-1)*hdu.RowLen() + c.Offset
	buf, err := f.DataBytes(hdu, pos, c.Width)
	if err != nil {
		return 0, 0, err
	}
	if c.DescChar == 'Q' {
		length = int64(be64(buf[0:8]))
		offset = int64(be64(buf[8:16]))
	} else {
		length = int64(be32(buf[0:4]))
		offset = int64(be32(buf[4:8]))
	}
	return length, offset, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func be64(b []byte) uint64 {
	return uint64(be32(b[0:4]))<<32 | uint64(be32(b[4:8]))
}

// HeaderFill returns the header bytes after the END card up to the end
// of the last header block.
func (hdu *HDU) HeaderFill() []byte {
	off := hdu.NCards * CardLen
	if off > len(hdu.headerRaw) {
		return nil
	}
	return hdu.headerRaw[off:]
}

// DataFill reads the bytes between the end of the data and the end of
// the last data block.
func (f *File) DataFill(hdu *HDU) ([]byte, error) {
	fill := blockRound(hdu.DataSize) - hdu.DataSize
	if fill == 0 {
		return nil, nil
	}
	if hdu.DataStart+hdu.DataSize+fill > f.src.Size() {
		return nil, nil
	}
	return f.DataBytes(hdu, hdu.DataSize, fill)
}
