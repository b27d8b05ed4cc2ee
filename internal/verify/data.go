package verify

import (
	"math"
	"strings"

	"example.com/fitsgate/internal/fits"
)

// verifyData runs the optional data-region tests on one HDU: checksum
// agreement, fill areas, and table cell content.
func (c *Context) verifyData(f *fits.File, hdu *fits.HDU) {
	if c.opts.TestChecksum {
		c.checkChecksums(f, hdu)
	}
	if c.opts.TestFill {
		if hdu.Type == fits.AsciiTable {
			c.checkAsciiGaps(f, hdu)
		}
		c.checkDataFill(f, hdu)
	}
	if !c.opts.TestData {
		return
	}
	if hdu.Type != fits.AsciiTable && hdu.Type != fits.BinTable {
		return
	}
	if len(hdu.Columns) == 0 || hdu.Rows() == 0 {
		return
	}
	if hdu.Rows() > math.MaxInt32 {
		c.info("Cannot test data in tables with more than 2**31 (2147483647) rows.")
		return
	}
	c.checkTableData(f, hdu)
	if hdu.Type == fits.BinTable {
		c.checkDescriptors(f, hdu)
	}
}

func (c *Context) checkChecksums(f *fits.File, hdu *fits.HDU) {
	dataOK, hduOK, err := f.VerifyChecksums(hdu)
	if err != nil {
		c.readerErrf(CodeReadFail, err, "Failed to compute the checksum of HDU %d.", hdu.Num)
		return
	}
	if dataOK == fits.ChecksumBad {
		c.warnf(WarnBadChecksum, "Data checksum is not consistent with  the DATASUM keyword")
	}
	if hduOK == fits.ChecksumBad {
		if dataOK == fits.ChecksumOK {
			c.warnf(WarnBadChecksum, "Invalid CHECKSUM means header has been modified. (DATASUM is OK)")
		} else {
			c.warnf(WarnBadChecksum, "HDU checksum is not in agreement with CHECKSUM.")
		}
	}
}

// checkDataFill verifies the fill between the end of the data and the
// end of the last data block: zeros everywhere, except in ASCII tables
// where blanks are the required fill.
func (c *Context) checkDataFill(f *fits.File, hdu *fits.HDU) {
	fill, err := f.DataFill(hdu)
	if err != nil {
		c.readerErrf(CodeReadFail, err, "Failed to read the data fill area of HDU %d.", hdu.Num)
		return
	}
	want := byte(0)
	if hdu.Type == fits.AsciiTable {
		want = ' '
	}
	for _, b := range fill {
		if b != want {
			if hdu.Type == fits.AsciiTable {
				c.errf(CodeDataFill, "Data fill area (between the end of the data and the end of the block) contains non-blank characters.")
			} else {
				c.errf(CodeDataFill, "Data fill area (between the end of the data and the end of the block) contains non-zero values.")
			}
			return
		}
	}
}

// checkAsciiGaps scans the full rows of an ASCII table for characters
// that never belong in one: bytes above 127 anywhere, and non-printable
// ASCII inside the defined data fields.
func (c *Context) checkAsciiGaps(f *fits.File, hdu *fits.HDU) {
	rowlen := hdu.RowLen()
	if rowlen <= 0 || hdu.Rows() <= 0 {
		return
	}

	// template marks the byte positions covered by data fields
	inField := make([]bool, rowlen)
	for _, col := range hdu.Columns {
		if col.TBCol < 1 {
			continue
		}
		for p := col.TBCol - 1; p < col.TBCol-1+col.FieldWide && p < rowlen; p++ {
			inField[p] = true
		}
	}

	var nbad int64
	reportedHigh := false
	reportedCtrl := false
	for row := int64(1); row <= hdu.Rows(); row++ {
		if c.maxErrorsReached {
			return
		}
		buf, err := f.DataBytes(hdu, (row-1)*rowlen, rowlen)
		if err != nil {
			c.readerErrf(CodeReadFail, err, "Failed to read row %d of HDU %d.", row, hdu.Num)
			return
		}
		for i, b := range buf {
			if b > 127 {
				nbad++
				if !reportedHigh {
					c.errf(CodeNonasciiTable, "row %d contains non-ASCII characters.", row)
					reportedHigh = true
				}
			} else if b < 32 && inField[i] {
				nbad++
				if !reportedCtrl {
					c.errf(CodeNonasciiTable, "row %d data contains non-ASCII-text characters.", row)
					reportedCtrl = true
				}
			}
		}
	}
	if nbad > 0 {
		c.info("This ASCII table contains %d non-ASCII-text characters", nbad)
	}
}

// colChecks records which content errors have already been reported
// for a column, so that each kind is reported once with a note that
// later rows may repeat it.
type colChecks struct {
	bitFill  bool
	nonascii bool
	logical  bool
	decimal  bool
	embedded bool
}

// checkTableData walks the fixed-width table cells row by row. ASCII
// tables get numeric formatting checks; binary tables get bit fill,
// logical, and character content checks.
func (c *Context) checkTableData(f *fits.File, hdu *fits.HDU) {
	rowlen := hdu.RowLen()
	if rowlen <= 0 {
		return
	}
	found := make([]colChecks, len(hdu.Columns))

	for row := int64(1); row <= hdu.Rows(); row++ {
		if c.maxErrorsReached {
			return
		}
		buf, err := f.DataBytes(hdu, (row-1)*rowlen, rowlen)
		if err != nil {
			c.readerErrf(CodeReadFail, err, "Failed to read row %d of HDU %d.", row, hdu.Num)
			return
		}
		for n := range hdu.Columns {
			col := &hdu.Columns[n]
			if col.Variable || col.TypeChar == 0 {
				continue
			}
			if hdu.Type == fits.AsciiTable {
				c.checkAsciiCell(buf, hdu, col, n+1, row, &found[n])
			} else {
				c.checkBinaryCell(buf, hdu, col, n+1, row, &found[n])
			}
		}
	}
}

func asciiField(buf []byte, col *fits.Column) []byte {
	lo := col.TBCol - 1
	hi := lo + col.FieldWide
	if lo < 0 || hi > int64(len(buf)) {
		return nil
	}
	return buf[lo:hi]
}

func (c *Context) checkAsciiCell(buf []byte, hdu *fits.HDU, col *fits.Column, colnum int, row int64, found *colChecks) {
	field := asciiField(buf, col)
	if field == nil {
		return
	}
	val := strings.TrimSpace(string(field))

	if col.TypeChar == 'A' {
		if found.nonascii {
			return
		}
		for _, b := range field {
			if b < 32 || b > 126 {
				found.nonascii = true
				c.hintForColumn(colnum)
				c.errf(CodeNonasciiData, "String in row #%d, column #%d contains non-ASCII text.", row, colnum)
				c.info("             (Other rows may have errors).")
				return
			}
		}
		return
	}

	// numeric field; a blank field is a legal null
	if val == "" {
		return
	}
	if !found.embedded && strings.ContainsRune(val, ' ') {
		found.embedded = true
		c.hintForColumn(colnum)
		c.errf(CodeEmbeddedSpace, "Number in row #%d, column #%d has embedded space:", row, colnum)
		c.info("%s", val)
		c.info("  (Other rows may have similar errors).")
	}
	if col.Floating() && !found.decimal && !strings.ContainsRune(val, '.') {
		found.decimal = true
		c.hintForColumn(colnum)
		c.errf(CodeNoDecimal, "Number in row #%d, column #%d has no decimal point:", row, colnum)
		c.info("%s", val)
		c.info("  (Other rows may have similar errors).")
	}
}

func (c *Context) checkBinaryCell(buf []byte, hdu *fits.HDU, col *fits.Column, colnum int, row int64, found *colChecks) {
	lo := col.Offset
	hi := lo + col.Width
	if lo < 0 || hi > int64(len(buf)) {
		return
	}
	field := buf[lo:hi]

	switch col.TypeChar {
	case 'X':
		if found.bitFill || col.Repeat%8 == 0 || len(field) == 0 {
			return
		}
		mask := byte(255 >> (col.Repeat % 8))
		last := field[len(field)-1]
		if last&mask != 0 {
			found.bitFill = true
			c.hintForColumn(colnum)
			c.severef(CodeBitNotJustified, "Row #%d, and Column #%d: X vector with last byte 0x%02x is not left justified.",
				row, colnum, last)
			c.info("             (Other rows may have errors).")
		}
	case 'L':
		if found.logical {
			return
		}
		for _, b := range field {
			if b != 'T' && b != 'F' && b != 0 {
				found.logical = true
				c.hintForColumn(colnum)
				c.errf(CodeBadLogicalData, "Logical value in row #%d, column #%d not equal to 'T', 'F', or 0", row, colnum)
				c.info("             (Other rows may have similar errors).")
				return
			}
		}
	case 'A':
		if found.nonascii {
			return
		}
		for _, b := range field {
			if (b < 32 || b > 126) && b != 0 {
				found.nonascii = true
				c.hintForColumn(colnum)
				c.errf(CodeNonasciiData, "String in row #%d, column #%d contains non-ASCII text.", row, colnum)
				c.info("             (Other rows may have errors).")
				return
			}
		}
	}
}

// checkDescriptors validates every variable-length array descriptor in
// a binary table: declared maximum, heap bounds, and the content of
// variable string and logical arrays.
func (c *Context) checkDescriptors(f *fits.File, hdu *fits.HDU) {
	var descCols []int
	for n := range hdu.Columns {
		if hdu.Columns[n].Variable {
			descCols = append(descCols, n+1)
		}
	}
	if len(descCols) == 0 {
		return
	}

	found := make([]colChecks, len(hdu.Columns))
	warned32len := false
	warned32off := false

	for row := int64(1); row <= hdu.Rows(); row++ {
		if c.maxErrorsReached {
			return
		}
		for _, colnum := range descCols {
			col := &hdu.Columns[colnum-1]
			c.hintForColumn(colnum)
			length, offset, err := f.ReadDescriptor(hdu, colnum, row)
			if err != nil {
				c.readerErrf(CodeReadFail, err, "Failed to read the descriptor of column #%d at row %d.", colnum, row)
				return
			}

			if col.DescChar != 'Q' {
				if !warned32len && length > math.MaxInt32 {
					warned32len = true
					c.warnf(WarnVarExceeds32bit, "Var row length exceeds maximum 32-bit signed int.  First detected for Row #%d Column #%d",
						row, colnum)
				}
				if !warned32off && offset > math.MaxInt32 {
					warned32off = true
					c.warnf(WarnVarExceeds32bit, "Heap offset for var length row exceeds maximum 32-bit signed int.  First detected for Row #%d Column #%d",
						row, colnum)
				}
			}

			if col.MaxLen > -1 && length > col.MaxLen {
				c.hintForColumn(colnum)
				c.setVarMaxLenHint(hdu, col, colnum, row, length)
				c.errf(CodeVarExceedsMaxLen, "Descriptor of Column #%d at Row %d: nelem(%d) > maxlen(%d) given by TFORM%d.",
					colnum, row, length, col.MaxLen, colnum)
			}

			perbyte := fits.VarElementWidth(col.TypeChar)
			var bytelength int64
			if perbyte < 0 {
				bytelength = length / 8
			} else {
				bytelength = length * perbyte
			}
			if offset < 0 || offset+bytelength > hdu.Pcount {
				c.hintForColumn(colnum)
				if perbyte < 0 {
					c.severef(CodeVarExceedsHeap, "Descriptor of Column #%d at Row %d:  offset of first element(%d) + nelem(%d)/8 >  total heap area  = %d.",
						colnum, row, offset, length, hdu.Pcount)
				} else {
					c.severef(CodeVarExceedsHeap, "Descriptor of Column #%d at Row %d:  offset of first element(%d) + nelem(%d)*%d >  total heap area  = %d.",
						colnum, row, offset, length, perbyte, hdu.Pcount)
				}
				continue
			}

			c.checkVarContent(f, hdu, col, colnum, row, length, offset, &found[colnum-1])
		}
	}
}

// setVarMaxLenHint composes the repair hint for a descriptor whose
// element count exceeds the declared maximum.
func (c *Context) setVarMaxLenHint(hdu *fits.HDU, col *fits.Column, colnum int, row, length int64) {
	if col.Name != "" {
		c.hintFix("Column '%s' (col %d) has TFORM%d = '%s' declaring max %d elements, but row %d contains %d. Change TFORM%d to '1%c%c(%d)'.",
			col.Name, colnum, colnum, strings.TrimSpace(col.TForm), col.MaxLen, row, length,
			colnum, col.DescChar, col.TypeChar, length)
	} else {
		c.hintFix("Column %d has TFORM%d = '%s' declaring max %d elements, but row %d contains %d. Change TFORM%d to '1%c%c(%d)'.",
			colnum, colnum, strings.TrimSpace(col.TForm), col.MaxLen, row, length,
			colnum, col.DescChar, col.TypeChar, length)
	}
	c.hintExplain("Variable-length array columns use TFORM = '1%c<type>(<max>)' where <max> must be at least the largest element count stored in any row. See FITS Standard Section 7.3.5.",
		col.DescChar)
}

// checkVarContent applies the string and logical content checks to an
// in-range variable-length array stored in the heap.
func (c *Context) checkVarContent(f *fits.File, hdu *fits.HDU, col *fits.Column, colnum int, row, length, offset int64, found *colChecks) {
	if length <= 0 {
		return
	}
	switch col.TypeChar {
	case 'A':
		if found.nonascii {
			return
		}
		buf, err := f.DataBytes(hdu, hdu.HeapStart()+offset, length)
		if err != nil {
			return
		}
		for _, b := range buf {
			if (b < 32 || b > 126) && b != 0 {
				found.nonascii = true
				c.hintForColumn(colnum)
				c.errf(CodeNonasciiData, "String in row #%d, column #%d contains non-ASCII text.", row, colnum)
				c.info("             (Other rows may have errors).")
				return
			}
		}
	case 'L':
		if found.logical {
			return
		}
		buf, err := f.DataBytes(hdu, hdu.HeapStart()+offset, length)
		if err != nil {
			return
		}
		for _, b := range buf {
			if b != 'T' && b != 'F' && b != 0 {
				found.logical = true
				c.hintForColumn(colnum)
				c.errf(CodeBadLogicalData, "Logical value in row #%d, column #%d not equal to 'T', 'F', or 0", row, colnum)
				c.info("             (Other rows may have similar errors).")
				return
			}
		}
	}
}
