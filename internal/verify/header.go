package verify

import (
	"strconv"
	"strings"

	"example.com/fitsgate/internal/fits"
)

var legalBitpix = map[int64]bool{8: true, 16: true, 32: true, 64: true, -32: true, -64: true}

var standardXtensions = map[string]bool{"IMAGE": true, "TABLE": true, "BINTABLE": true}

// headerIdentity carries the extension identity found while verifying
// a header, fed into the HDU ledger.
type headerIdentity struct {
	extname string
	extver  int64
}

// verifyHeader runs every header-level check on one HDU and returns
// the extension identity for the ledger.
func (c *Context) verifyHeader(hdu *fits.HDU) headerIdentity {
	cards := make([]Card, 0, hdu.NCards)
	byName := make(map[string][]*Card)
	for i := 0; i < hdu.NCards; i++ {
		image := hdu.Card(i)
		if c.opts.PrintHeader {
			c.info("%s", image)
		}
		card := c.parseCard(i+1, image)
		cards = append(cards, card)
		if card.Type != TypeCommentary && card.Type != TypeEnd && card.Name != "" {
			byName[card.Name] = append(byName[card.Name], &cards[len(cards)-1])
		}
		if c.maxErrorsReached {
			return headerIdentity{}
		}
	}

	if !hdu.EndFound {
		c.severef(CodeMissingEnd, "END keyword is not found in the header.")
	}

	c.checkMandatory(hdu, cards, byName)
	c.checkDuplicates(hdu, byName)
	c.checkReserved(hdu, cards, byName)
	c.checkWCS(hdu, cards, byName)
	if hdu.Type == fits.AsciiTable || hdu.Type == fits.BinTable {
		c.checkColumns(hdu, byName)
	}
	if c.opts.TestFill {
		c.checkHeaderFill(hdu)
	}

	id := headerIdentity{}
	if card := firstCard(byName, "EXTNAME"); card != nil {
		if v, ok := c.checkString(card); ok {
			id.extname = v
		}
	}
	if card := firstCard(byName, "EXTVER"); card != nil {
		if v, ok := c.checkInt(card); ok {
			id.extver = v
		}
	}
	return id
}

func firstCard(byName map[string][]*Card, name string) *Card {
	if list := byName[name]; len(list) > 0 {
		return list[0]
	}
	return nil
}

func cardImage(hdu *fits.HDU, card *Card) string {
	return hdu.Card(card.Index - 1)
}

// mandatorySequence returns the ordered mandatory keywords for an HDU.
// Indexed NAXISn entries depend on the NAXIS value already scanned by
// the reader.
func mandatorySequence(hdu *fits.HDU) []string {
	var seq []string
	if hdu.Num == 1 {
		seq = []string{"SIMPLE", "BITPIX", "NAXIS"}
	} else {
		seq = []string{"XTENSION", "BITPIX", "NAXIS"}
	}
	for i := 1; i <= int(hdu.Naxis); i++ {
		seq = append(seq, "NAXIS"+strconv.Itoa(i))
	}
	if hdu.Num > 1 {
		seq = append(seq, "PCOUNT", "GCOUNT")
	}
	if hdu.Type == fits.AsciiTable || hdu.Type == fits.BinTable {
		seq = append(seq, "TFIELDS")
	}
	return seq
}

// checkMandatory enforces presence, order, fixed format, datatype, and
// legal values of the mandatory keywords.
func (c *Context) checkMandatory(hdu *fits.HDU, cards []Card, byName map[string][]*Card) {
	seq := mandatorySequence(hdu)
	for i, want := range seq {
		list := byName[want]
		if len(list) == 0 {
			c.hintFor(want)
			if i == 0 {
				c.severef(CodeMissingKeyword, "The mandatory keyword %s is missing in HDU %d.", want, hdu.Num)
			} else {
				c.errf(CodeMissingKeyword, "The mandatory keyword %s is missing in HDU %d.", want, hdu.Num)
			}
			continue
		}
		card := list[0]
		if card.Index != i+1 {
			c.hintFor(want)
			c.errf(CodeKeywordOrder, "Keyword %s is at position %d but the mandatory order requires position %d.",
				want, card.Index, i+1)
		}
		c.checkMandatoryValue(hdu, card, cardImage(hdu, card), want)
	}
}

func (c *Context) checkMandatoryValue(hdu *fits.HDU, card *Card, image, want string) {
	switch {
	case want == "SIMPLE":
		if v, ok := c.checkLogical(card); ok {
			c.checkFixedLogical(image)
			if !v {
				c.warnf(WarnSimpleFalse, "SIMPLE = F means the file may not conform to the FITS Standard.")
			}
		}

	case want == "XTENSION":
		if v, ok := c.checkString(card); ok {
			c.checkFixedString(image)
			if strings.HasPrefix(v, " ") {
				c.hintFor("XTENSION")
				c.errf(CodeLeadingSpace, "Keyword #%d, XTENSION: The value '%s' has leading space(s).", card.Index, v)
				v = strings.TrimLeft(v, " ")
			}
			if !standardXtensions[v] {
				c.hintFor("XTENSION")
				c.warnf(WarnLegacyXtension, "XTENSION = '%s' is not one of the registered extension types IMAGE, TABLE, or BINTABLE.", v)
			}
		}

	case want == "BITPIX":
		if v, ok := c.checkInt(card); ok {
			c.checkFixedInt(image)
			if !legalBitpix[v] {
				c.hintFor("BITPIX")
				c.errf(CodeKeywordValue, "Keyword #%d, BITPIX: value %d is not one of the legal values 8, 16, 32, 64, -32, or -64.",
					card.Index, v)
			} else if (hdu.Type == fits.AsciiTable || hdu.Type == fits.BinTable) && v != 8 {
				c.hintFor("BITPIX")
				c.errf(CodeKeywordValue, "Keyword #%d, BITPIX: value %d must be 8 in a table extension.", card.Index, v)
			}
		}

	case want == "NAXIS":
		if v, ok := c.checkInt(card); ok {
			c.checkFixedInt(image)
			if v < 0 || v > 999 {
				c.hintFor("NAXIS")
				c.errf(CodeKeywordValue, "Keyword #%d, NAXIS: value %d is outside the legal range 0 - 999.", card.Index, v)
			} else if (hdu.Type == fits.AsciiTable || hdu.Type == fits.BinTable) && v != 2 {
				c.hintFor("NAXIS")
				c.errf(CodeKeywordValue, "Keyword #%d, NAXIS: value %d must be 2 in a table extension.", card.Index, v)
			}
		}

	case strings.HasPrefix(want, "NAXIS"):
		if v, ok := c.checkInt(card); ok {
			c.checkFixedInt(image)
			if v < 0 {
				c.hintFor(want)
				c.errf(CodeKeywordValue, "Keyword #%d, %s: value %d is negative.", card.Index, want, v)
			}
		}

	case want == "PCOUNT":
		if v, ok := c.checkInt(card); ok {
			c.checkFixedInt(image)
			if hdu.Type == fits.ImageExt && v != 0 {
				c.hintFor("PCOUNT")
				c.errf(CodeKeywordValue, "Keyword #%d, PCOUNT: value %d must be 0 in an image extension.", card.Index, v)
			} else if hdu.Type == fits.AsciiTable && v != 0 {
				c.hintFor("PCOUNT")
				c.errf(CodeKeywordValue, "Keyword #%d, PCOUNT: value %d must be 0 in an ASCII table.", card.Index, v)
			} else if v < 0 {
				c.hintFor("PCOUNT")
				c.errf(CodeKeywordValue, "Keyword #%d, PCOUNT: value %d is negative.", card.Index, v)
			}
		}

	case want == "GCOUNT":
		if v, ok := c.checkInt(card); ok {
			c.checkFixedInt(image)
			if v != 1 {
				c.hintFor("GCOUNT")
				c.errf(CodeKeywordValue, "Keyword #%d, GCOUNT: value %d must be 1 in a standard extension.", card.Index, v)
			}
		}

	case want == "TFIELDS":
		if v, ok := c.checkInt(card); ok {
			c.checkFixedInt(image)
			if v < 0 || v > 999 {
				c.hintFor("TFIELDS")
				c.errf(CodeKeywordValue, "Keyword #%d, TFIELDS: value %d is outside the legal range 0 - 999.", card.Index, v)
			} else if int(v) != len(hdu.Columns) {
				c.errf(CodeTfieldsMismatch, "TFIELDS = %d but %d TFORMn keywords are defined.", v, len(hdu.Columns))
			}
		}
	}
}

// checkDuplicates warns for any non-commentary keyword appearing more
// than once.
func (c *Context) checkDuplicates(hdu *fits.HDU, byName map[string][]*Card) {
	for name, list := range byName {
		if len(list) > 1 {
			c.hintFor(name)
			c.warnf(WarnDuplicateKeyword, "Keyword %s is duplicated in HDU %d (cards #%d and #%d).",
				name, hdu.Num, list[0].Index, list[1].Index)
		}
	}
}

// indexedKeyword splits a trailing integer off a keyword name, e.g.
// "TFORM12" -> ("TFORM", 12, true).
func indexedKeyword(name string) (prefix string, n int, ok bool) {
	i := len(name)
	for i > 0 && isDigit(name[i-1]) {
		i--
	}
	if i == len(name) || i == 0 {
		return name, 0, false
	}
	n, err := strconv.Atoi(name[i:])
	if err != nil || n <= 0 {
		return name, 0, false
	}
	return name[:i], n, true
}

var tableIndexedKeys = map[string]bool{
	"TTYPE": true, "TFORM": true, "TUNIT": true, "TNULL": true,
	"TSCAL": true, "TZERO": true, "TDISP": true, "TDIM": true,
	"TBCOL": true,
}

var tableWCSKeys = map[string]bool{
	"TCTYP": true, "TCRPX": true, "TCRVL": true, "TCDLT": true,
	"TCROT": true, "TCUNI": true,
}

var imageOnlyKeys = map[string]bool{
	"BSCALE": true, "BZERO": true, "BUNIT": true, "BLANK": true,
	"DATAMAX": true, "DATAMIN": true,
}

// checkReserved polices keyword placement per HDU type and verifies
// the datatype of every reserved keyword present.
func (c *Context) checkReserved(hdu *fits.HDU, cards []Card, byName map[string][]*Card) {
	isTable := hdu.Type == fits.AsciiTable || hdu.Type == fits.BinTable
	isImage := hdu.Num == 1 || hdu.Type == fits.ImageExt

	for i := range cards {
		card := &cards[i]
		if card.Type == TypeCommentary || card.Type == TypeEnd {
			continue
		}
		name := card.Name
		c.checkReservedType(hdu, card)

		switch name {
		case "XTENSION":
			if hdu.Num == 1 {
				c.hintFor(name)
				c.errf(CodeXtensionInPrimary, "Keyword #%d, XTENSION is not allowed in the primary HDU.", card.Index)
			}
		case "SIMPLE", "EXTEND", "BLOCKED":
			if hdu.Num > 1 {
				c.hintFor(name)
				c.errf(CodePrimaryKeyInExt, "Keyword #%d, %s is only allowed in the primary HDU.", card.Index, name)
			}
			if name == "BLOCKED" {
				c.hintFor(name)
				c.warnf(WarnDeprecated, "Keyword #%d, BLOCKED is deprecated.", card.Index)
			}
		case "EPOCH":
			c.hintFor(name)
			c.warnf(WarnDeprecated, "Keyword #%d, EPOCH is deprecated. Use EQUINOX instead.", card.Index)
		case "TFIELDS", "THEAP":
			if !isTable {
				c.hintFor(name)
				c.errf(CodeTableKeyInImage, "Keyword #%d, %s is only allowed in table extensions.", card.Index, name)
			} else if name == "THEAP" && hdu.Pcount == 0 {
				c.hintFor(name)
				c.errf(CodeTheapNoPcount, "Keyword #%d, THEAP is present but PCOUNT = 0 (no heap exists).", card.Index)
			}
		}

		if imageOnlyKeys[name] && isTable {
			c.hintFor(name)
			c.errf(CodeImageKeyInTable, "Keyword #%d, %s is only allowed in image HDUs.", card.Index, name)
		}

		if prefix, n, ok := indexedKeyword(name); ok {
			switch {
			case tableIndexedKeys[prefix]:
				if !isTable {
					c.hintFor(name)
					c.errf(CodeTableKeyInImage, "Keyword #%d, %s is only allowed in table extensions.", card.Index, name)
					continue
				}
				if int64(n) > hdu.Tfields {
					c.hintFor(name)
					c.errf(CodeIndexExceedsTfields, "Keyword #%d, %s: index %d exceeds TFIELDS = %d.",
						card.Index, name, n, hdu.Tfields)
					continue
				}
				switch prefix {
				case "TDIM":
					if hdu.Type == fits.AsciiTable {
						c.hintFor(name)
						c.errf(CodeTdimInAscii, "Keyword #%d, %s is not allowed in an ASCII table.", card.Index, name)
					}
				case "TBCOL":
					if hdu.Type == fits.BinTable {
						c.hintFor(name)
						c.errf(CodeTbcolInBinary, "Keyword #%d, %s is not allowed in a binary table.", card.Index, name)
					}
				case "TSCAL", "TZERO":
					c.checkScaleColumn(hdu, card, name, n)
				case "TNULL":
					c.checkNullColumn(hdu, card, name, n)
				case "TDISP":
					c.checkTdisp(hdu, card, name, n)
				}
			case tableWCSKeys[prefix]:
				if isImage {
					c.hintFor(name)
					c.errf(CodeTableWCSInImage, "Keyword #%d, %s is a table WCS keyword and is not allowed in an image HDU.",
						card.Index, name)
				} else if isTable && int64(n) > hdu.Tfields {
					c.hintFor(name)
					c.errf(CodeIndexExceedsTfields, "Keyword #%d, %s: index %d exceeds TFIELDS = %d.",
						card.Index, name, n, hdu.Tfields)
				}
			}
		}
	}

	c.checkBlankRange(hdu, byName)
	c.checkContinue(hdu, cards, byName)
	c.checkGroups(hdu, byName)
}

// reservedTypes maps reserved keywords to the value type the standard
// requires. Indexed keywords are matched by prefix after the trailing
// digits are stripped.
var reservedTypes = map[string]KeyType{
	"EXTNAME": TypeString, "EXTVER": TypeInteger, "EXTLEVEL": TypeInteger,
	"EXTEND": TypeLogical, "GROUPS": TypeLogical, "INHERIT": TypeLogical,
	"BSCALE": TypeFloat, "BZERO": TypeFloat, "BUNIT": TypeString,
	"BLANK": TypeInteger, "DATAMAX": TypeFloat, "DATAMIN": TypeFloat,
	"EPOCH": TypeFloat, "EQUINOX": TypeFloat,
	"DATE": TypeString, "DATE-OBS": TypeString, "ORIGIN": TypeString,
	"TELESCOP": TypeString, "INSTRUME": TypeString, "OBSERVER": TypeString,
	"OBJECT": TypeString, "AUTHOR": TypeString, "REFERENC": TypeString,
	"CHECKSUM": TypeString, "DATASUM": TypeString, "TIMESYS": TypeString,
	"LONGSTRN": TypeString, "THEAP": TypeInteger, "WCSAXES": TypeInteger,
}

var reservedIndexedTypes = map[string]KeyType{
	"TTYPE": TypeString, "TUNIT": TypeString, "TFORM": TypeString,
	"TDISP": TypeString, "TDIM": TypeString,
	"TBCOL": TypeInteger, "TNULL": TypeInteger,
	"TSCAL": TypeFloat, "TZERO": TypeFloat,
	"CRPIX": TypeFloat, "CRVAL": TypeFloat, "CDELT": TypeFloat,
	"CROTA": TypeFloat,
	"CTYPE": TypeString, "CUNIT": TypeString,
	"NAXIS": TypeInteger,
}

func (c *Context) checkReservedType(hdu *fits.HDU, card *Card) {
	want, ok := reservedTypes[card.Name]
	if !ok {
		if prefix, _, isIdx := indexedKeyword(card.Name); isIdx {
			want, ok = reservedIndexedTypes[prefix]
		}
	}
	if !ok {
		return
	}
	switch want {
	case TypeString:
		if card.Type != TypeString {
			c.checkString(card)
		} else {
			c.checkDateValue(hdu, card)
		}
	case TypeInteger:
		c.checkInt(card)
	case TypeFloat:
		c.checkFloat(card)
	case TypeLogical:
		c.checkLogical(card)
	}
}

var timeScales = map[string]bool{
	"UTC": true, "TAI": true, "TDB": true, "TT": true, "ET": true,
	"UT1": true, "UT": true, "TCG": true, "TCB": true, "TDT": true,
	"IAT": true, "GPS": true, "LOCAL": true,
}

// checkDateValue applies per-keyword value conventions to reserved
// string keywords that carry more structure than a plain string.
func (c *Context) checkDateValue(hdu *fits.HDU, card *Card) {
	switch card.Name {
	case "DATE", "DATE-OBS":
		if isOldStyleDate(card.Value) {
			c.hintFor(card.Name)
			c.warnf(WarnY2KDate, "Keyword #%d, %s: the value '%s' uses the ambiguous DD/MM/YY date format. Use 'YYYY-MM-DD' instead.",
				card.Index, card.Name, card.Value)
		}
	case "TIMESYS":
		v := strings.TrimSpace(card.Value)
		if v != "" && !timeScales[strings.ToUpper(v)] {
			c.hintFor(card.Name)
			c.warnf(WarnTimesysValue, "Keyword #%d, TIMESYS: value '%s' is not a recognized time scale.", card.Index, v)
		}
	}
}

// isOldStyleDate reports whether a date value looks like the pre-2000
// DD/MM/YY convention.
func isOldStyleDate(v string) bool {
	if len(v) != 8 {
		return false
	}
	for i := 0; i < 8; i++ {
		switch i {
		case 2, 5:
			if v[i] != '/' {
				return false
			}
		default:
			if !isDigit(v[i]) {
				return false
			}
		}
	}
	return true
}

func (c *Context) checkScaleColumn(hdu *fits.HDU, card *Card, name string, n int) {
	if v, ok := c.checkFloat(card); ok && v == 0 && strings.HasPrefix(name, "TSCAL") {
		c.hintFor(name)
		c.warnf(WarnZeroScale, "Keyword #%d, %s has a zero scale factor.", card.Index, name)
	}
	if hdu.Type != fits.BinTable || n > len(hdu.Columns) {
		return
	}
	switch hdu.Columns[n-1].TypeChar {
	case 'A', 'L', 'X':
		c.hintFor(name)
		c.errf(CodeTscalWrongCol, "Keyword #%d, %s is not allowed for the %c-type column %d.",
			card.Index, name, hdu.Columns[n-1].TypeChar, n)
	}
}

// integer ranges per column type for TNULL and per BITPIX for BLANK
func intRange(typeChar byte) (lo, hi int64, ok bool) {
	switch typeChar {
	case 'B':
		return 0, 255, true
	case 'I':
		return -32768, 32767, true
	case 'J':
		return -2147483648, 2147483647, true
	case 'K':
		return -9223372036854775808, 9223372036854775807, true
	}
	return 0, 0, false
}

func (c *Context) checkNullColumn(hdu *fits.HDU, card *Card, name string, n int) {
	v, ok := c.checkInt(card)
	if hdu.Type != fits.BinTable || n > len(hdu.Columns) {
		return
	}
	col := hdu.Columns[n-1]
	switch col.TypeChar {
	case 'E', 'D', 'C', 'M':
		c.hintFor(name)
		c.errf(CodeTnullWrongType, "Keyword #%d, %s is not allowed for the floating point column %d. Use NaN for nulls.",
			card.Index, name, n)
	default:
		if ok {
			if lo, hi, known := intRange(col.TypeChar); known && (v < lo || v > hi) {
				c.hintFor(name)
				c.warnf(WarnNullRange, "Keyword #%d, %s: value %d is out of range for the %c-type column %d.",
					card.Index, name, v, col.TypeChar, n)
			}
		}
	}
}

func (c *Context) checkBlankRange(hdu *fits.HDU, byName map[string][]*Card) {
	card := firstCard(byName, "BLANK")
	if card == nil || hdu.Type == fits.AsciiTable || hdu.Type == fits.BinTable {
		return
	}
	if hdu.Bitpix < 0 {
		c.hintFor("BLANK")
		c.errf(CodeBlankWrongType, "Keyword #%d, BLANK must not be used with floating point data (BITPIX = %d).",
			card.Index, hdu.Bitpix)
		return
	}
	if card.Type != TypeInteger {
		return
	}
	v, err := strconv.ParseInt(strings.TrimSpace(card.Value), 10, 64)
	if err != nil {
		return
	}
	var lo, hi int64
	switch hdu.Bitpix {
	case 8:
		lo, hi = 0, 255
	case 16:
		lo, hi = -32768, 32767
	case 32:
		lo, hi = -2147483648, 2147483647
	default:
		return
	}
	if v < lo || v > hi {
		c.hintFor("BLANK")
		c.warnf(WarnNullRange, "Keyword #%d, BLANK: value %d is out of range for BITPIX = %d.",
			card.Index, v, hdu.Bitpix)
	}
}

// checkContinue verifies the OGIP long string convention is declared
// when CONTINUE cards are used.
func (c *Context) checkContinue(hdu *fits.HDU, cards []Card, byName map[string][]*Card) {
	used := false
	for i := range cards {
		if cards[i].Name == "CONTINUE" {
			used = true
			break
		}
	}
	if used && firstCard(byName, "LONGSTRN") == nil {
		c.warnf(WarnMissingLongstrn, "The OGIP long string keyword convention is used without the recommended LONGSTRN keyword.")
	}
}

// checkGroups flags the deprecated random groups structure and INHERIT
// misuse.
func (c *Context) checkGroups(hdu *fits.HDU, byName map[string][]*Card) {
	if hdu.Num == 1 {
		if card := firstCard(byName, "GROUPS"); card != nil && card.Value == "T" &&
			hdu.Naxis >= 1 && len(hdu.Naxes) > 0 && hdu.Naxes[0] == 0 {
			c.warnf(WarnRandomGroups, "This file uses the deprecated random groups structure. Binary tables are recommended instead.")
		}
		return
	}
	if card := firstCard(byName, "INHERIT"); card != nil && card.Value == "T" && c.primaryHasData {
		c.hintFor("INHERIT")
		c.warnf(WarnInheritPrimary, "Keyword #%d, INHERIT = T but the primary array contains data.", card.Index)
	}
}

// checkColumns validates the table column layout: TFORMn presence and
// syntax, TBCOLn placement, NAXIS1 consistency, column name quality,
// and heap bookkeeping.
func (c *Context) checkColumns(hdu *fits.HDU, byName map[string][]*Card) {
	rowlen := int64(0)
	names := map[string]int{}
	hasVar := false

	for n := 1; n <= int(hdu.Tfields); n++ {
		tform := "TFORM" + strconv.Itoa(n)
		card := firstCard(byName, tform)
		if card == nil {
			c.hintFor(tform)
			c.errf(CodeMissingKeyword, "The mandatory keyword %s is missing in HDU %d.", tform, hdu.Num)
			continue
		}
		val, ok := c.checkString(card)
		if !ok {
			continue
		}
		c.checkFixedString(cardImage(hdu, card))
		if strings.HasPrefix(val, " ") {
			c.hintFor(tform)
			c.errf(CodeLeadingSpace, "Keyword #%d, %s: The value '%s' has leading space(s).", card.Index, tform, val)
		}

		if n > len(hdu.Columns) {
			continue
		}
		col := &hdu.Columns[n-1]
		if col.TypeChar == 0 {
			c.hintFor(tform)
			c.errf(CodeBadTform, "Keyword #%d, %s: '%s' is not a valid column format.", card.Index, tform, val)
			continue
		}
		if col.Variable {
			hasVar = true
		}
		rowlen += int64(col.Width)

		if hdu.Type == fits.BinTable && col.TypeChar == 'A' {
			c.checkSubstringWidth(card, tform, val, n)
		}

		if hdu.Type == fits.AsciiTable {
			c.checkTbcol(hdu, byName, col, n)
		}
	}

	if hdu.Type == fits.BinTable && rowlen > 0 && rowlen != hdu.RowLen() {
		c.errf(CodeNaxis1Mismatch, "NAXIS1 = %d but the sum of the column widths is %d.", hdu.RowLen(), rowlen)
	}

	if hdu.Type == fits.BinTable && hdu.Pcount > 0 && !hasVar {
		c.warnf(WarnPcountNoVla, "PCOUNT = %d but there are no variable-length array columns; the heap is unused.", hdu.Pcount)
	}

	for n := 1; n <= int(hdu.Tfields); n++ {
		ttype := "TTYPE" + strconv.Itoa(n)
		card := firstCard(byName, ttype)
		if card == nil {
			c.hintForColumn(n)
			c.heasarcf(WarnNoColumnName, "Column #%d has no name (TTYPE%d keyword is not present).", n, n)
			continue
		}
		name, ok := c.checkString(card)
		if !ok || name == "" {
			continue
		}
		c.checkColumnName(card, ttype, name, n)
		if prev, seen := names[name]; seen {
			c.hintForColumn(n)
			c.warnf(WarnDuplicateColumn, "Columns #%d and #%d have the same name '%s'.", prev, n, name)
		} else {
			names[name] = n
		}
	}
}

func (c *Context) checkColumnName(card *Card, ttype, name string, n int) {
	if strings.Contains(name, "&") {
		c.hintFor(ttype)
		c.warnf(WarnContinueChar, "Keyword #%d, %s: the column name '%s' contains the continuation character '&'.",
			card.Index, ttype, name)
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || isDigit(ch) || ch == '_' {
			continue
		}
		c.hintForColumn(n)
		c.heasarcf(WarnBadColumnName, "Column #%d: name '%s' contains char '%c' which is not a letter, digit, or \"_\".",
			n, name, ch)
		break
	}
}

// checkSubstringWidth warns when an rAw character column's repeat is
// not a multiple of the substring width.
func (c *Context) checkSubstringWidth(card *Card, tform, val string, n int) {
	i := 0
	for i < len(val) && isDigit(val[i]) {
		i++
	}
	if i >= len(val) || val[i] != 'A' {
		return
	}
	repeat := 1
	if i > 0 {
		repeat, _ = strconv.Atoi(val[:i])
	}
	j := i + 1
	k := j
	for k < len(val) && isDigit(val[k]) {
		k++
	}
	if k == j {
		return
	}
	width, _ := strconv.Atoi(val[j:k])
	if width > 0 && repeat%width != 0 {
		c.hintFor(tform)
		c.warnf(WarnRawMultiple, "Keyword #%d, %s = '%s': the repeat count %d is not a multiple of the substring width %d.",
			card.Index, tform, val, repeat, width)
	}
}

func (c *Context) checkTbcol(hdu *fits.HDU, byName map[string][]*Card, col *fits.Column, n int) {
	tbcol := "TBCOL" + strconv.Itoa(n)
	card := firstCard(byName, tbcol)
	if card == nil {
		c.hintFor(tbcol)
		c.errf(CodeMissingKeyword, "The mandatory keyword %s is missing in HDU %d.", tbcol, hdu.Num)
		return
	}
	v, ok := c.checkInt(card)
	if !ok {
		return
	}
	c.checkFixedInt(cardImage(hdu, card))
	if v < 1 || v+int64(col.FieldWide)-1 > hdu.RowLen() {
		c.hintFor(tbcol)
		c.errf(CodeBadTbcol, "Keyword #%d, %s: column %d (start %d, width %d) does not fit in the row of NAXIS1 = %d bytes.",
			card.Index, tbcol, n, v, col.FieldWide, hdu.RowLen())
	}
}

// checkTdisp validates a display format against the column datatype.
func (c *Context) checkTdisp(hdu *fits.HDU, card *Card, name string, n int) {
	val, ok := c.checkString(card)
	if !ok || n > len(hdu.Columns) {
		return
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return
	}
	col := &hdu.Columns[n-1]
	disp := val[0]
	valid := map[byte]bool{'A': true, 'L': true, 'I': true, 'B': true,
		'O': true, 'Z': true, 'F': true, 'E': true, 'D': true, 'G': true}
	if !valid[disp] {
		c.hintFor(name)
		c.errf(CodeBadTdisp, "Keyword #%d, %s: '%s' is not a valid display format.", card.Index, name, val)
		return
	}
	colType := col.TypeChar
	mismatch := false
	switch disp {
	case 'A':
		mismatch = colType != 'A' && colType != 0
	case 'L':
		mismatch = colType != 'L'
	case 'I', 'B', 'O', 'Z':
		mismatch = colType == 'A' || colType == 'L' || col.Floating() ||
			colType == 'C' || colType == 'M'
	case 'F', 'E', 'D', 'G':
		mismatch = colType == 'A' || colType == 'L' || colType == 'X'
	}
	if mismatch {
		c.hintFor(name)
		c.hintFix("Change '%s' in HDU %d to a display format compatible with the %c-type column %d.",
			name, c.curHDU, colType, n)
		c.errf(CodeBadTdisp, "Keyword #%d, %s: display format '%s' is not compatible with the %c-type column %d.",
			card.Index, name, val, colType, n)
	}
}

// wcsIndexed matches per-axis WCS keywords.
var wcsPrefixes = []string{"CRPIX", "CRVAL", "CDELT", "CROTA", "CRDER",
	"CSYER", "CTYPE", "CUNIT"}

// checkWCS enforces WCSAXES ordering and axis index bounds.
func (c *Context) checkWCS(hdu *fits.HDU, cards []Card, byName map[string][]*Card) {
	wcsaxes := int64(-1)
	wcsaxesIndex := 0
	if card := firstCard(byName, "WCSAXES"); card != nil {
		if v, ok := c.checkInt(card); ok {
			wcsaxes = v
			wcsaxesIndex = card.Index
		}
	}

	firstWCS := 0
	firstWCSName := ""
	for i := range cards {
		card := &cards[i]
		prefix, n, ok := indexedKeyword(card.Name)
		if !ok {
			continue
		}
		isWCS := false
		for _, p := range wcsPrefixes {
			if prefix == p {
				isWCS = true
				break
			}
		}
		if !isWCS {
			continue
		}
		if firstWCS == 0 {
			firstWCS = card.Index
			firstWCSName = card.Name
		}
		if wcsaxes >= 0 {
			if int64(n) > wcsaxes {
				c.hintFor(card.Name)
				c.errf(CodeWcsIndexBound, "Keyword #%d, %s: axis index %d exceeds WCSAXES = %d.",
					card.Index, card.Name, n, wcsaxes)
			}
		} else if int64(n) > hdu.Naxis {
			c.hintFor(card.Name)
			c.warnf(WarnWcsIndexNoAxes, "Keyword #%d, %s: axis index %d exceeds NAXIS = %d and no WCSAXES keyword is present.",
				card.Index, card.Name, n, hdu.Naxis)
		}
	}

	if wcsaxesIndex > 0 && firstWCS > 0 && wcsaxesIndex > firstWCS {
		c.hintFor(firstWCSName)
		c.errf(CodeWcsaxesOrder, "Keyword #%d, WCSAXES appears after the WCS keyword %s (card #%d).",
			wcsaxesIndex, firstWCSName, firstWCS)
	}
}

// checkHeaderFill verifies that the bytes between END and the end of
// the header block are all blanks.
func (c *Context) checkHeaderFill(hdu *fits.HDU) {
	fill := hdu.HeaderFill()
	for i := 0; i < len(fill); i++ {
		if fill[i] != ' ' {
			c.errf(CodeHeaderFill, "Header fill area (between the END keyword and the end of the block) contains non-blank characters.")
			return
		}
	}
}
