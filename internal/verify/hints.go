package verify

import (
	"fmt"
	"strings"

	"example.com/fitsgate/internal/advice"
	"example.com/fitsgate/internal/fits"
)

func hduTypeName(t fits.HDUType) string {
	switch t {
	case fits.ImageExt:
		return "an image extension"
	case fits.AsciiTable:
		return "an ASCII table"
	case fits.BinTable:
		return "a binary table"
	}
	return "an HDU"
}

func hduTypeNameWithPrimary(t fits.HDUType, hdu int) string {
	if hdu == 1 {
		return "a primary array"
	}
	return hduTypeName(t)
}

func mandatoryKeywordList(t fits.HDUType, hdu int) string {
	if hdu == 1 {
		return "SIMPLE, BITPIX, NAXIS, NAXISn, END"
	}
	switch t {
	case fits.ImageExt:
		return "XTENSION, BITPIX, NAXIS, NAXISn, PCOUNT, GCOUNT, END"
	case fits.AsciiTable:
		return "XTENSION, BITPIX, NAXIS, NAXIS1, NAXIS2, PCOUNT, GCOUNT, TFIELDS, TBCOLn, TFORMn, END"
	case fits.BinTable:
		return "XTENSION, BITPIX, NAXIS, NAXIS1, NAXIS2, PCOUNT, GCOUNT, TFIELDS, TFORMn, END"
	}
	return "XTENSION, BITPIX, NAXIS, NAXISn, PCOUNT, GCOUNT, END"
}

func orSection(section string) string {
	if section == "" {
		return "(see relevant section)"
	}
	return section
}

// generateHint composes the fix and explanation text for a diagnostic,
// combining the static advice entry with the current keyword or column
// context. Text supplied explicitly by a call site always wins.
func (c *Context) generateHint(code Code) (fix, explain string) {
	entry, haveEntry := c.advice.Lookup(int(code))

	hasKw := c.hint.keyword != ""
	hasCol := c.hint.colnum > 0
	if !hasKw && !hasCol && !c.hint.fixSet && !c.hint.explainSet {
		if haveEntry {
			return entry.Fix, entry.Explain
		}
		return "", ""
	}

	kw := c.hint.keyword
	hdu := c.curHDU
	hduName := hduTypeNameWithPrimary(c.curType, hdu)
	purpose := ""
	section := ""
	if hasKw {
		purpose = advice.KeywordPurpose(kw)
		section = advice.KeywordSection(kw)
	}

	if !c.hint.fixSet && haveEntry {
		fix = entry.Fix
	} else if c.hint.fixSet {
		fix = c.hint.fix
	}
	if !c.hint.explainSet && haveEntry {
		explain = entry.Explain
	} else if c.hint.explainSet {
		explain = c.hint.explain
	}

	setFix := func(format string, args ...interface{}) {
		if !c.hint.fixSet {
			fix = fmt.Sprintf(format, args...)
		}
	}
	setExplain := func(format string, args ...interface{}) {
		if !c.hint.explainSet {
			explain = fmt.Sprintf(format, args...)
		}
	}

	switch code {
	case CodeMissingKeyword:
		if hasKw {
			setFix("Add the keyword '%s' to the header of HDU %d. The mandatory keywords for %s in order are: %s.",
				kw, hdu, hduName, mandatoryKeywordList(c.curType, hdu))
			if purpose != "" {
				setExplain("%s Without it, FITS readers cannot interpret the %s. See FITS Standard %s.",
					purpose, hduName, orSection(section))
			}
		}

	case CodeKeywordOrder:
		if hasKw {
			setFix("Move keyword '%s' to its required position in HDU %d. The mandatory order for %s is: %s.",
				kw, hdu, hduName, mandatoryKeywordList(c.curType, hdu))
			setExplain("FITS requires mandatory keywords in a fixed order at the start of each header. '%s' must appear in its designated position. See FITS Standard Section 4.4.1.",
				kw)
		}

	case CodeKeywordDuplicate:
		if hasKw {
			setFix("Remove the duplicate '%s' keyword in HDU %d; it must appear exactly once.", kw, hdu)
			setExplain("Mandatory keywords must appear only once. Having two '%s' keywords creates ambiguity about which value should be used. See FITS Standard Section 4.4.1.",
				kw)
		}

	case CodeKeywordValue:
		if hasKw {
			setFix("Correct the value of '%s' in HDU %d to a legal value per the FITS Standard.", kw, hdu)
			if purpose != "" {
				setExplain("%s The current value is not permitted. See FITS Standard %s.",
					purpose, orSection(section))
			}
		}

	case CodeKeywordType:
		if hasKw {
			setFix("Change the value of '%s' in HDU %d to the required datatype.", kw, hdu)
			if purpose != "" {
				setExplain("%s The value must use the correct datatype (e.g., BITPIX must be an integer). See FITS Standard %s.",
					purpose, orSection(section))
			}
		}

	case CodeNotFixedFormat:
		if hasKw {
			setFix("Write '%s' in HDU %d using fixed format (value indicator '= ' in columns 9-10, value right-justified in columns 11-30).",
				kw, hdu)
			setExplain("Mandatory keywords must use fixed-format notation so that any reader can parse them without interpreting free-format values. '%s' must have its value in columns 11-30. See FITS Standard Section 4.2.1.",
				kw)
		}

	case CodeIllegalNameChar, CodeNameNotJustified:
		if hasKw {
			setFix("Fix keyword '%s' in HDU %d: names must use only uppercase A-Z, digits 0-9, hyphen, and underscore, left-justified in columns 1-8.",
				kw, hdu)
		}

	case CodeBadString, CodeMissingQuote, CodeBadLogical, CodeBadNumber,
		CodeLowercaseExponent, CodeNoTrailParen, CodeNoComma,
		CodeTooManyComma, CodeBadReal, CodeBadImag, CodeNoStartSlash,
		CodeBadComment, CodeUnknownType, CodeNonTextChars:
		if hasKw && haveEntry {
			if entry.Fix != "" {
				setFix("Keyword '%s' in HDU %d: %s", kw, hdu, entry.Fix)
			}
			if entry.Explain != "" {
				setExplain("Keyword '%s': %s See FITS Standard Section 4.2.", kw, entry.Explain)
			}
		}

	case CodeWrongType:
		if c.hint.fixSet || c.hint.explainSet {
			if !c.hint.explainSet && purpose != "" {
				setExplain("%s The value must match the expected type. See FITS Standard %s.",
					purpose, orSection(section))
			}
		} else if hasKw {
			expected := expectedTypeName(kw)
			if expected != "" {
				setFix("Change '%s' in HDU %d to a %s. If the value is currently a quoted string, remove the quotes.",
					kw, hdu, expected)
			} else {
				setFix("Change the value of '%s' in HDU %d to the expected datatype.", kw, hdu)
			}
			if purpose != "" {
				setExplain("%s The value must match the expected type. See FITS Standard %s.",
					purpose, orSection(section))
			} else {
				setExplain("Keyword '%s' has a value of the wrong datatype. Check the FITS Standard for the required type.", kw)
			}
		}

	case CodeNullValue:
		if hasKw {
			setFix("Provide a value for '%s' in HDU %d, or remove it if not needed.", kw, hdu)
			if purpose != "" {
				setExplain("%s The keyword currently has no value (blank value field).", purpose)
			}
		}

	case CodeLeadingSpace:
		if hasKw {
			setFix("Remove leading spaces from the value of '%s' in HDU %d.", kw, hdu)
			setExplain("Keyword '%s': certain keyword values (XTENSION, TFORMn, TDISPn, TDIMn) must not have leading spaces within the quoted string. See FITS Standard Section 4.2.1.",
				kw)
		}

	case CodeKeywordNotAllowed:
		if hasKw {
			setFix("Remove keyword '%s' from HDU %d; it is not permitted in %s.", kw, hdu, hduName)
			setExplain("Keyword '%s' is not valid in %s. Check the FITS Standard for which keywords are allowed in each HDU type.",
				kw, hduName)
		}

	case CodePrimaryKeyInExt:
		if hasKw {
			setFix("Remove '%s' from HDU %d; it is only valid in the primary HDU.", kw, hdu)
			setExplain("The keyword '%s' is only valid in the primary HDU (HDU 1). It must not appear in any extension. See FITS Standard Section 4.4.2.",
				kw)
		}

	case CodeImageKeyInTable:
		if hasKw {
			setFix("Remove '%s' from HDU %d (%s); it is only valid in image HDUs.", kw, hdu, hduName)
			setExplain("Keywords like BSCALE, BZERO, BUNIT, BLANK, DATAMAX, and DATAMIN are only valid in image HDUs. In tables, use the column-specific equivalents (TSCALn, TZEROn, TUNITn, TNULLn). '%s' was found in %s. See FITS Standard Section 7.",
				kw, hduName)
		}

	case CodeTableKeyInImage:
		if hasKw {
			setFix("Remove table keyword '%s' from HDU %d (%s).", kw, hdu, hduName)
			setExplain("Column-related keywords like TFIELDS, TTYPEn, TFORMn are only valid in table extensions. '%s' was found in %s. See FITS Standard Section 7.",
				kw, hduName)
		}

	case CodeIndexExceedsTfields:
		if hasKw {
			setFix("Keyword '%s' in HDU %d has a column index exceeding TFIELDS. Either increase TFIELDS or remove the excess keyword.",
				kw, hdu)
			setExplain("Column-indexed keywords (TTYPEn, TFORMn, etc.) must have index n <= TFIELDS. '%s' exceeds this limit. See FITS Standard Section 7.2.1.",
				kw)
		}

	case CodeBadTform:
		if hasKw {
			setFix("Correct '%s' in HDU %d to a valid FITS column format.", kw, hdu)
			sec := section
			if sec == "" {
				sec = "Section 7.2.1/7.3.1"
			}
			setExplain("'%s' specifies the data format for a column. Valid formats include integer widths for ASCII tables (e.g., I10, F12.5) and type codes for binary tables (e.g., 1J, 20A, 1E). See FITS Standard %s.",
				kw, sec)
		}

	case CodeBadTdisp:
		if c.hint.fixSet || c.hint.explainSet {
			setExplain("TDISPn controls the display format for column n. The display format must be compatible with the column's TFORMn data type. See FITS Standard Section 7.3.3.")
		} else if hasKw {
			setFix("Correct the display format in '%s' in HDU %d. Valid formats: Aw (character), Lw (logical), Iw/Bw/Ow/Zw (integer), Fw.d/Ew.d/Dw.d/Gw.d (numeric).",
				kw, hdu)
			setExplain("TDISPn controls the display format for column n. The format must be a valid Fortran-style format code with correct width and precision. See FITS Standard Section 7.3.3.")
		}

	case CodeBlankWrongType:
		if hasKw {
			setFix("Remove '%s' from HDU %d; it must not be used with floating-point data. Use NaN instead.", kw, hdu)
		}

	case CodeTscalWrongCol:
		if hasKw {
			setFix("Remove '%s' from HDU %d; scaling keywords are only valid for numeric (integer/float) binary table columns.", kw, hdu)
		}

	case CodeTnullWrongType:
		if hasKw {
			setFix("Remove '%s' from this floating-point column in HDU %d; use IEEE NaN for null values instead.", kw, hdu)
		}

	case WarnDeprecated:
		if hasKw {
			setFix("Remove or replace deprecated keyword '%s' in HDU %d.", kw, hdu)
			switch kw {
			case "EPOCH":
				setExplain("'EPOCH' is deprecated in favor of 'EQUINOX'. See FITS Standard Section 8.3.")
			case "BLOCKED":
				setExplain("'BLOCKED' is deprecated and should be removed; it was related to tape blocking which is no longer relevant.")
			}
		}

	case WarnZeroScale:
		if hasKw {
			setFix("Set '%s' in HDU %d to a non-zero value.", kw, hdu)
			sec := section
			if sec == "" {
				sec = "Section 4.4.2.1"
			}
			setExplain("A scale factor of zero for '%s' would map all raw values to the same physical value (the offset). The formula is: physical = raw * %s + offset. See FITS Standard %s.",
				kw, kw, sec)
		}

	case WarnDuplicateKeyword:
		if hasKw {
			setFix("Remove the duplicate '%s' keyword in HDU %d, or rename one of the copies.", kw, hdu)
			setExplain("'%s' appears more than once in the header of HDU %d. Only COMMENT, HISTORY, blank, and CONTINUE keywords may be duplicated. See FITS Standard Section 4.4.1.",
				kw, hdu)
		}

	case CodeNonasciiData, CodeBadLogicalData, CodeBitNotJustified,
		CodeNoDecimal, CodeEmbeddedSpace:
		if hasCol && haveEntry {
			if entry.Fix != "" {
				setFix("Column %d in HDU %d: %s", c.hint.colnum, hdu, entry.Fix)
			}
			if entry.Explain != "" {
				setExplain("Column %d: %s", c.hint.colnum, entry.Explain)
			}
		}

	case CodeVarExceedsMaxLen, CodeVarExceedsHeap:
		if !c.hint.fixSet && !c.hint.explainSet && hasCol && haveEntry {
			if entry.Fix != "" {
				setFix("Column %d in HDU %d: %s", c.hint.colnum, hdu, entry.Fix)
			}
		}

	case WarnVarExceeds32bit:
		if hasCol {
			setFix("Column %d in HDU %d: use 'Q' format (64-bit descriptor) instead of 'P' for large variable-length arrays.",
				c.hint.colnum, hdu)
		}

	case CodeWcsaxesOrder:
		if hasKw {
			setFix("Move WCSAXES before keyword '%s' in HDU %d.", kw, hdu)
		}

	case CodeWcsIndexBound:
		if hasKw {
			setFix("Keyword '%s' in HDU %d: reduce the axis index to not exceed the WCSAXES value.", kw, hdu)
		}

	case WarnWcsIndexNoAxes:
		if hasKw {
			setFix("Keyword '%s' in HDU %d: add a WCSAXES keyword, or ensure WCS indices do not exceed NAXIS.", kw, hdu)
		}

	default:
		if !c.hint.fixSet && !c.hint.explainSet && haveEntry && entry.Fix != "" {
			if hasKw {
				setFix("Keyword '%s' in HDU %d: %s", kw, hdu, entry.Fix)
			} else if hasCol {
				setFix("Column %d in HDU %d: %s", c.hint.colnum, hdu, entry.Fix)
			}
		}
	}

	return fix, explain
}

// expectedTypeName infers the required value type from a keyword name.
// Most wrong-type errors are float keywords entered as strings.
func expectedTypeName(kw string) string {
	floatPrefixes := []string{"CRPIX", "CRVAL", "CDELT", "CROTA", "CRDER",
		"CSYER", "CD", "PC", "PV", "TCRVL", "TCDLT", "TCRPX", "TCROT",
		"TLMIN", "TLMAX", "TDMIN", "TDMAX", "TSCAL", "TZERO"}
	floatExact := []string{"EQUINOX", "MJD-OBS", "MJD-AVG", "LONPOLE",
		"LATPOLE", "RESTFRQ", "RESTWAV", "MJDREF", "JDREF", "TSTART",
		"TSTOP", "BSCALE", "BZERO", "DATAMAX", "DATAMIN", "EPOCH"}
	for _, p := range floatPrefixes {
		if strings.HasPrefix(kw, p) {
			return "floating-point number (without quotes)"
		}
	}
	for _, e := range floatExact {
		if kw == e {
			return "floating-point number (without quotes)"
		}
	}
	switch kw {
	case "BITPIX", "NAXIS", "PCOUNT", "GCOUNT", "TFIELDS", "EXTVER",
		"EXTLEVEL", "BLANK", "WCSAXES":
		return "integer (without quotes)"
	case "SIMPLE", "EXTEND", "GROUPS", "INHERIT":
		return "logical value (T or F, without quotes)"
	}
	if strings.HasPrefix(kw, "NAXIS") || strings.HasPrefix(kw, "TNULL") ||
		strings.HasPrefix(kw, "TBCOL") {
		return "integer (without quotes)"
	}
	return ""
}
