package fits

const (
	// BlockSize is the FITS logical record length. Headers and data
	// regions both occupy whole blocks.
	BlockSize = 2880

	// CardLen is the length of one header card image.
	CardLen = 80

	cardsPerBlock = BlockSize / CardLen
)

type HDUType int

const (
	PrimaryArray HDUType = iota
	ImageExt
	AsciiTable
	BinTable
	UnknownExt
)

func (t HDUType) String() string {
	switch t {
	case PrimaryArray:
		return "Primary Array"
	case ImageExt:
		return "Image Array"
	case AsciiTable:
		return "ASCII Table"
	case BinTable:
		return "Binary Table"
	}
	return "Unknown HDU"
}

// Column carries the layout of one table column as declared by the
// TFORMn (and, for ASCII tables, TBCOLn) keywords. Fields that do not
// apply to the table type are left zero.
type Column struct {
	Name  string
	TForm string

	// Binary table layout.
	Repeat   int64
	TypeChar byte  // L X B I J K A E D C M, or the element type of a descriptor
	Variable bool  // true for P and Q descriptor columns
	DescChar byte  // 'P' or 'Q' when Variable
	MaxLen   int64 // declared maximum element count, -1 when absent
	Offset   int64 // byte offset of the field within a row
	Width    int64 // byte width of the field within a row

	// ASCII table layout.
	TBCol     int64 // 1-based starting column
	FieldWide int64 // w from the TFORMn
	Decimals  int64 // d from the TFORMn, -1 when absent
}

// Floating reports whether an ASCII table column holds floating-point
// values (F, E, or D format).
func (c Column) Floating() bool {
	switch c.TypeChar {
	case 'F', 'E', 'D':
		return true
	}
	return false
}

// HDU describes one header-data unit located during the open scan.
// The scan reads just enough of each header to size the data region;
// full conformance checking happens card by card in the verifier.
type HDU struct {
	Num  int // 1-based position in the file
	Type HDUType

	HeaderStart int64
	HeaderSize  int64 // whole blocks
	DataStart   int64
	DataSize    int64 // exact byte count, before fill

	Bitpix  int64
	Naxis   int64
	Naxes   []int64
	Pcount  int64
	Gcount  int64
	Tfields int64
	Theap   int64
	Columns []Column

	EndFound bool
	NCards   int // cards up to and including END, or all scanned cards when END is missing

	headerRaw []byte
}

// RowLen returns the byte length of one table row (NAXIS1), or 0 for
// non-table HDUs.
func (h *HDU) RowLen() int64 {
	if len(h.Naxes) < 1 {
		return 0
	}
	return h.Naxes[0]
}

// Rows returns the table row count (NAXIS2), or 0 for non-table HDUs.
func (h *HDU) Rows() int64 {
	if len(h.Naxes) < 2 {
		return 0
	}
	return h.Naxes[1]
}

// HeapStart returns the byte offset of the heap from the start of the
// data region. THEAP overrides the default of NAXIS1*NAXIS2.
func (h *HDU) HeapStart() int64 {
	if h.Theap > 0 {
		return h.Theap
	}
	return h.RowLen() * h.Rows()
}

// Card returns the i-th card image (0-based) padded to 80 characters.
func (h *HDU) Card(i int) string {
	off := i * CardLen
	if off < 0 || off+CardLen > len(h.headerRaw) {
		return ""
	}
	return string(h.headerRaw[off : off+CardLen])
}

func elementWidth(typeChar byte) int64 {
	switch typeChar {
	case 'L', 'B', 'A':
		return 1
	case 'I':
		return 2
	case 'J', 'E':
		return 4
	case 'K', 'D', 'C':
		return 8
	case 'M':
		return 16
	case 'X':
		return -1 // bit column, width depends on the repeat count
	}
	return 0
}
