package advice

import "strings"

// KeywordPurpose returns a one-sentence description of what a keyword
// records, used when composing explanations. Empty when the keyword
// has no entry.
func KeywordPurpose(name string) string {
	kw := strings.TrimRight(name, " ")
	switch kw {
	case "":
		return ""
	case "SIMPLE":
		return "'SIMPLE' indicates whether the file conforms to the FITS Standard (T = conforming)."
	case "BITPIX":
		return "'BITPIX' specifies the number of bits per data element (e.g., 8 for bytes, 16 for short integers, -32 for single-precision floats)."
	case "NAXIS":
		return "'NAXIS' specifies the number of axes (dimensions) in the data array."
	case "XTENSION":
		return "'XTENSION' identifies the type of extension (e.g., 'IMAGE', 'TABLE', 'BINTABLE')."
	case "PCOUNT":
		return "'PCOUNT' is the number of bytes of supplemental data following the main data table (the heap for variable-length arrays)."
	case "GCOUNT":
		return "'GCOUNT' is the number of groups (always 1 for standard extensions)."
	case "TFIELDS":
		return "'TFIELDS' specifies the number of columns in a table."
	case "EXTEND":
		return "'EXTEND' indicates whether the file may contain extensions after the primary HDU."
	case "END":
		return "'END' marks the end of the header; all remaining bytes to the 2880-byte boundary must be blank (ASCII 32)."
	case "BSCALE":
		return "'BSCALE' is the linear scaling factor for image pixels: physical = raw * BSCALE + BZERO."
	case "BZERO":
		return "'BZERO' is the offset applied after scaling for image pixels."
	case "BUNIT":
		return "'BUNIT' specifies the physical units of the image pixel values."
	case "BLANK":
		return "'BLANK' defines the integer value used to represent undefined pixels in integer images."
	case "DATAMAX":
		return "'DATAMAX' records the maximum data value in the image."
	case "DATAMIN":
		return "'DATAMIN' records the minimum data value in the image."
	case "BLOCKED":
		return "'BLOCKED' is a deprecated keyword formerly used for tape blocking."
	case "EPOCH":
		return "'EPOCH' is deprecated; use 'EQUINOX' instead to specify the equinox of celestial coordinates."
	case "THEAP":
		return "'THEAP' specifies the byte offset of the heap area in a binary table with variable-length arrays."
	case "WCSAXES":
		return "'WCSAXES' declares the number of WCS axes, which may differ from NAXIS."
	case "TIMESYS":
		return "'TIMESYS' specifies the time scale used for time-related keywords (e.g., UTC, TAI, TDB)."
	case "MJDREF":
		return "'MJDREF' specifies the reference Modified Julian Date for time coordinates."
	case "DATEREF":
		return "'DATEREF' specifies the reference date/time for time coordinates in ISO 8601 format."
	case "TIMEUNIT":
		return "'TIMEUNIT' specifies the units of time-related keywords (e.g., 's' for seconds, 'd' for days)."
	}
	switch {
	case strings.HasPrefix(kw, "NAXIS"):
		return "NAXISn specifies the size of axis n in the data array."
	case strings.HasPrefix(kw, "TFORM"):
		return "TFORMn specifies the data format for column n (e.g., '1J' for 32-bit integer, '20A' for 20-character string)."
	case strings.HasPrefix(kw, "TTYPE"):
		return "TTYPEn gives column n a descriptive name for identification."
	case strings.HasPrefix(kw, "TUNIT"):
		return "TUNITn specifies the physical units of the data in column n."
	case strings.HasPrefix(kw, "TBCOL"):
		return "TBCOLn specifies the starting byte position of column n within each row of an ASCII table."
	case strings.HasPrefix(kw, "TSCAL"):
		return "TSCALn is the linear scaling factor for column n: physical = raw * TSCALn + TZEROn."
	case strings.HasPrefix(kw, "TZERO"):
		return "TZEROn is the offset applied after scaling for column n: physical = raw * TSCALn + TZEROn."
	case strings.HasPrefix(kw, "TNULL"):
		return "TNULLn defines the value used to represent undefined (null) entries in integer column n."
	case strings.HasPrefix(kw, "TDISP"):
		return "TDISPn specifies the display format for column n (e.g., 'I10', 'F12.5')."
	case strings.HasPrefix(kw, "TDIM"):
		return "TDIMn describes the multi-dimensional shape of column n's array data (e.g., '(100,200)')."
	}
	return ""
}

// KeywordSection returns the FITS Standard section defining a keyword,
// or "" when not specifically known.
func KeywordSection(name string) string {
	kw := strings.TrimRight(name, " ")
	switch kw {
	case "":
		return ""
	case "SIMPLE", "BITPIX", "NAXIS":
		return "Section 4.4.1.1"
	case "XTENSION", "PCOUNT", "GCOUNT":
		return "Section 7.1"
	case "TFIELDS":
		return "Section 7.2.1"
	case "EXTEND":
		return "Section 4.4.2.1"
	case "END":
		return "Section 4.3.1"
	case "BSCALE", "BZERO", "BUNIT", "BLANK":
		return "Section 4.4.2.1"
	case "THEAP":
		return "Section 7.3.1"
	case "WCSAXES":
		return "Section 8.2"
	case "TIMESYS", "MJDREF", "DATEREF", "TIMEUNIT":
		return "Section 8.4 (WCS Paper IV)"
	}
	switch {
	case strings.HasPrefix(kw, "NAXIS"):
		return "Section 4.4.1.1"
	case strings.HasPrefix(kw, "TFORM"):
		return "Section 7.2.1 (ASCII), Section 7.3.1 (binary)"
	case strings.HasPrefix(kw, "TTYPE"), strings.HasPrefix(kw, "TBCOL"):
		return "Section 7.2.1"
	case strings.HasPrefix(kw, "TSCAL"), strings.HasPrefix(kw, "TZERO"),
		strings.HasPrefix(kw, "TNULL"), strings.HasPrefix(kw, "TDIM"):
		return "Section 7.3.2"
	case strings.HasPrefix(kw, "TDISP"):
		return "Section 7.3.3"
	}
	return ""
}
