package advice

// Builtin returns the advice store for the full diagnostic taxonomy.
// Keys are the numeric diagnostic codes; the bands match the verifier:
// 100s structure, 150s mandatory keywords, 200s value format, 250s
// placement, 300s table structure, 350s data, 400s WCS, 450s reader,
// 480s abort, 500s warnings.
func Builtin() *Store {
	return &Store{entries: map[int]Entry{
		// Structure.
		101: {
			Fix:     "Check that the file is accessible and not truncated.",
			Explain: "An error occurred while reading the file data. The file may be truncated, the disk may have errors, or the file may not be a valid FITS file.",
		},
		102: {
			Fix:     "Check the HDU structure; the header or data section may be malformed.",
			Explain: "The HDU could not be parsed correctly. This may indicate a corrupted header, incorrect NAXIS/NAXISn values, or a data section that does not match the header description.",
		},
		103: {
			Fix:     "Truncate the file at the end of the last HDU's 2880-byte block.",
			Explain: "FITS files must end exactly at a 2880-byte block boundary after the last HDU. Extra bytes beyond this boundary violate the standard and may indicate file corruption or concatenation errors.",
		},
		104: {
			Fix:     "Remove extraneous data after the last valid HDU.",
			Explain: "The file contains additional HDU-like structures beyond what is expected. This usually indicates file corruption or an incomplete write.",
		},

		// Mandatory keywords.
		151: {
			Fix:     "Add the missing mandatory keyword to the header.",
			Explain: "Certain keywords are required by the FITS Standard in every HDU. For the primary HDU: SIMPLE, BITPIX, NAXIS, and NAXISn. For extensions: XTENSION, BITPIX, NAXIS, NAXISn, PCOUNT, GCOUNT.",
		},
		152: {
			Fix:     "Reorder mandatory keywords to follow the FITS Standard sequence.",
			Explain: "Mandatory keywords must appear in a specific order at the beginning of the header. For example, SIMPLE must be first in the primary HDU, followed by BITPIX, NAXIS, and NAXISn in sequence.",
		},
		153: {
			Fix:     "Remove the duplicate mandatory keyword; it must appear exactly once.",
			Explain: "Mandatory keywords must appear only once in a header. Having duplicates creates ambiguity about which value should be used.",
		},
		154: {
			Fix:     "Correct the keyword value to a legal value per the FITS Standard.",
			Explain: "The mandatory keyword has a value that is not permitted by the standard. For example, BITPIX must be one of 8, 16, 32, 64, -32, or -64.",
		},
		155: {
			Fix:     "Change the keyword value to the required datatype (integer, string, etc.).",
			Explain: "FITS requires mandatory keywords to have specific datatypes. For example, BITPIX and NAXIS must be integers, not floating-point or string values.",
		},
		156: {
			Fix:     "Add an END keyword and pad the header to a 2880-byte boundary.",
			Explain: "Every FITS header must terminate with an END keyword in columns 1-3, followed by blank-filled records to complete the 2880-byte block.",
		},
		157: {
			Fix:     "Fill columns 9-80 of the END keyword record with blank spaces.",
			Explain: "The END keyword card must have blanks (ASCII 32) in columns 9 through 80. No other characters are permitted after 'END' on this card.",
		},
		158: {
			Fix:     "Write the mandatory keyword value in fixed format (value in columns 11-30).",
			Explain: "Mandatory keywords must use fixed-format notation: the value indicator '= ' in columns 9-10, and the value right-justified in columns 11-30.",
		},

		// Card value format.
		201: {
			Fix:     "Ensure the header card does not exceed 80 characters.",
			Explain: "Each FITS header record is exactly 80 characters. Cards longer than 80 characters violate the standard.",
		},
		202: {
			Fix:     "Remove non-text characters from the string value.",
			Explain: "String values should contain only text characters. Control characters or other non-printable bytes are not permitted.",
		},
		203: {
			Fix:     "Left-justify the keyword name in columns 1-8.",
			Explain: "Keyword names must start in column 1 with no leading spaces.",
		},
		204: {
			Fix:     "Rename the keyword using only uppercase A-Z, digits 0-9, hyphen, and underscore.",
			Explain: "FITS keyword names may only contain uppercase Latin letters, digits, hyphens, and underscores. Lowercase letters and other characters are not allowed. The name must be left-justified in columns 1-8.",
		},
		205: {
			Fix:     "Ensure string values contain only printable ASCII characters.",
			Explain: "String keyword values (enclosed in single quotes) must contain only printable ASCII characters (codes 32-126). Control characters and non-ASCII bytes are not permitted.",
		},
		206: {
			Fix:     "Add the missing closing single quote to the string value.",
			Explain: "String values must be enclosed in single quotes. A string that starts with a quote in column 11 must have a matching closing quote within columns 11-80 (or use the CONTINUE long-string convention).",
		},
		207: {
			Fix:     "Set the logical value to T or F in column 30.",
			Explain: "Logical (boolean) keyword values must be the character T (true) or F (false) in column 30, with spaces in columns 11-29.",
		},
		208: {
			Fix:     "Fix the numeric value to use valid FITS integer or floating-point format.",
			Explain: "Numeric values must follow Fortran-style formatting: integers with optional sign, floating-point with a decimal point, and optional exponent using 'E' or 'D'.",
		},
		209: {
			Fix:     "Change the lowercase exponent letter (d/e) to uppercase (D/E).",
			Explain: "The FITS Standard requires that exponent indicators in floating-point values use uppercase 'E' or 'D', not lowercase.",
		},
		210: {
			Fix:     "Format the complex value as (real, imaginary) with proper parentheses and comma.",
			Explain: "Complex keyword values must be written as two numbers enclosed in parentheses and separated by a comma, e.g. (1.0, 2.0).",
		},
		211: {
			Fix:     "Format the complex value as (real, imaginary) with proper parentheses and comma.",
			Explain: "Complex keyword values must be written as two numbers enclosed in parentheses and separated by a comma, e.g. (1.0, 2.0).",
		},
		212: {
			Fix:     "Format the complex value as (real, imaginary) with proper parentheses and comma.",
			Explain: "Complex keyword values must be written as two numbers enclosed in parentheses and separated by a comma, e.g. (1.0, 2.0).",
		},
		213: {
			Fix:     "Format the complex value as (real, imaginary) with proper parentheses and comma.",
			Explain: "Complex keyword values must be written as two numbers enclosed in parentheses and separated by a comma, e.g. (1.0, 2.0).",
		},
		214: {
			Fix:     "Format the complex value as (real, imaginary) with proper parentheses and comma.",
			Explain: "Complex keyword values must be written as two numbers enclosed in parentheses and separated by a comma, e.g. (1.0, 2.0).",
		},
		215: {
			Fix:     "Add a '/' separator between the value and comment fields.",
			Explain: "When both a value and comment are present, they must be separated by a slash character '/'. The slash should follow the value (after any trailing spaces).",
		},
		216: {
			Fix:     "Remove non-printable characters from the comment field.",
			Explain: "Comments (after the '/' separator) may only contain printable ASCII characters.",
		},
		217: {
			Fix:     "Check that the keyword value conforms to one of the FITS value types.",
			Explain: "The keyword value does not match any recognized FITS type (string, integer, floating-point, complex, or logical). Verify the formatting.",
		},
		218: {
			Fix:     "Change the keyword value to the expected datatype.",
			Explain: "This keyword is expected to have a specific datatype (e.g., string, integer) but the value found is of a different type.",
		},
		219: {
			Fix:     "Provide a value for the keyword, or remove it if not needed.",
			Explain: "The keyword has no value (the value field is blank). If the keyword is intended to carry information, it needs a valid value.",
		},
		220: {
			Fix:     "Remove leading spaces from the keyword value.",
			Explain: "Certain keyword values (XTENSION, TFORMn, TDISPn, TDIMn) must not have leading spaces within the quoted string.",
		},

		// Keyword placement.
		251: {
			Fix:     "Remove the XTENSION keyword from the primary HDU.",
			Explain: "XTENSION is used to identify extension HDUs. It must not appear in the primary HDU, which uses the SIMPLE keyword instead.",
		},
		252: {
			Fix:     "Remove SIMPLE, EXTEND, or BLOCKED from this extension HDU.",
			Explain: "The keywords SIMPLE, EXTEND, and BLOCKED are only valid in the primary HDU. They must not appear in any extension.",
		},
		253: {
			Fix:     "Remove table-specific keywords (TFIELDS, TTYPEn, TFORMn, etc.) from the image HDU.",
			Explain: "Column-related keywords like TFIELDS, TTYPEn, TFORMn, TBCOLn are only valid in table extensions (ASCII_TBL or BINARY_TBL), not in images.",
		},
		254: {
			Fix:     "Remove image-specific keywords (BSCALE, BZERO, BUNIT, BLANK, DATAMAX, DATAMIN) from the table HDU.",
			Explain: "Keywords like BSCALE, BZERO, BUNIT, BLANK, DATAMAX, and DATAMIN are only valid in image HDUs. In table HDUs, use the column-specific equivalents (TSCALn, TZEROn, TUNITn, TNULLn).",
		},
		255: {
			Fix:     "Remove table WCS keywords (TCTYPn, TCRPXn, TCRVLn, etc.) from the image HDU.",
			Explain: "Table-specific WCS keywords (those with column index 'n') are only valid in table extensions. Image HDUs use CTYPEn, CRPIXn, CRVALn without the 'T' prefix.",
		},
		256: {
			Fix:     "Remove TDIMn from the ASCII table; it is only valid for binary tables.",
			Explain: "TDIMn defines multi-dimensional array structure for binary table columns. ASCII tables do not support this feature.",
		},
		257: {
			Fix:     "Remove TBCOLn from the binary table; it is only valid for ASCII tables.",
			Explain: "TBCOLn specifies the starting column position in ASCII tables. Binary tables use sequential packing based on TFORMn and do not use TBCOLn.",
		},
		258: {
			Fix:     "Remove THEAP or set PCOUNT > 0 to allocate a variable-length data heap.",
			Explain: "THEAP specifies the heap offset for variable-length arrays. It is meaningless when PCOUNT = 0 (no heap exists).",
		},
		259: {
			Fix:     "Remove the keyword that is not permitted in this HDU type.",
			Explain: "This keyword is not valid in the current HDU type. Check the FITS Standard for which keywords are allowed in each HDU type.",
		},

		// Table structure.
		301: {
			Fix:     "Set TFIELDS to the correct number of columns in the table.",
			Explain: "TFIELDS specifies how many columns the table contains. It must match the actual number of TFORMn keywords present.",
		},
		302: {
			Fix:     "Adjust NAXIS1 to equal the sum of all column widths.",
			Explain: "In a table HDU, NAXIS1 is the number of bytes per row. It must equal the sum of the widths of all columns as specified by TFORMn (and TBCOLn for ASCII tables).",
		},
		303: {
			Fix:     "Correct the TFORMn value to a valid FITS column format.",
			Explain: "TFORMn specifies the data format for column n. Valid formats include integer widths for ASCII tables (e.g., I10, F12.5) and type codes for binary tables (e.g., 1J, 20A, 1E).",
		},
		304: {
			Fix:     "Fix TDISPn to be consistent with the column datatype.",
			Explain: "TDISPn specifies the display format for column n. It must be compatible with the column's data format (e.g., an integer column should not have a floating-point TDISPn).",
		},
		305: {
			Fix:     "Ensure column keyword index n does not exceed the TFIELDS value.",
			Explain: "A column-indexed keyword (TTYPEn, TFORMn, etc.) has an index greater than TFIELDS. Either increase TFIELDS or remove the excess keyword.",
		},
		306: {
			Fix:     "Remove TSCALn/TZEROn from ASCII, logical, or bit columns.",
			Explain: "TSCALn and TZEROn are scaling keywords valid only for numeric binary table columns (integer or floating-point). They are not applicable to ASCII, logical, or bit-type columns.",
		},
		307: {
			Fix:     "Remove TNULLn from this floating-point column; use NaN instead.",
			Explain: "TNULLn defines a null value for integer columns only. For floating-point columns, IEEE NaN is the standard null representation.",
		},
		308: {
			Fix:     "Remove BLANK from this floating-point image; use NaN instead.",
			Explain: "The BLANK keyword defines null pixels for integer images only. For floating-point images (BITPIX = -32 or -64), IEEE NaN represents null.",
		},
		309: {
			Fix:     "Correct TBCOLn values so columns are properly positioned within the row.",
			Explain: "TBCOLn values must correctly specify the starting byte position of each column, forming a consistent layout that does not exceed NAXIS1.",
		},

		// Data content.
		351: {
			Fix:     "Reduce the variable-length array size or increase the maximum in TFORMn.",
			Explain: "A variable-length array entry exceeds the maximum length declared in the TFORMn descriptor (the value in parentheses). Either the data is corrupt or the declared maximum is too small.",
		},
		352: {
			Fix:     "Fix the variable-length array descriptor; its address extends beyond the heap.",
			Explain: "The descriptor for a variable-length array column points to an address outside the allocated heap area (beyond PCOUNT bytes after the fixed table). This usually indicates data corruption.",
		},
		353: {
			Fix:     "Left-justify the bit values and zero-fill unused trailing bits.",
			Explain: "Bit columns (TFORMn = 'nX') must be left-justified, with any unused bits in the last byte set to zero.",
		},
		354: {
			Fix:     "Set logical column values to 'T' (true), 'F' (false), or 0 (null).",
			Explain: "Logical columns in binary tables may only contain the byte values 'T' (0x54), 'F' (0x46), or 0 (null/undefined).",
		},
		355: {
			Fix:     "Replace non-ASCII characters in the string column with printable ASCII.",
			Explain: "String columns in binary tables must contain only printable ASCII characters or null bytes for padding.",
		},
		356: {
			Fix:     "Add a decimal point to the floating-point value in the ASCII table.",
			Explain: "Floating-point values in ASCII table columns (TFORMn = En.d, Fn.d, Dn.d) must contain a decimal point.",
		},
		357: {
			Fix:     "Remove embedded spaces from the numeric value in the ASCII table.",
			Explain: "Numeric values in ASCII table columns must not contain embedded spaces. Leading spaces are allowed, but spaces within the number are not.",
		},
		358: {
			Fix:     "Replace non-ASCII characters in the ASCII table with valid ASCII.",
			Explain: "ASCII tables must contain only ASCII characters (codes 0-127). Characters with values above 127 violate the standard.",
		},
		359: {
			Fix:     "Fix data fill bytes: use blanks (0x20) for ASCII tables, zeros (0x00) for others.",
			Explain: "Fill bytes after the last row of data must be ASCII blanks (space, 0x20) for ASCII tables, or binary zeros (0x00) for all other HDU types, out to the next 2880-byte boundary.",
		},
		360: {
			Fix:     "Fill unused header bytes after END with blank spaces (ASCII 32).",
			Explain: "All bytes in the header block after the END keyword must be filled with ASCII blank characters (space, code 32) up to the 2880-byte boundary.",
		},

		// WCS.
		401: {
			Fix:     "Move WCSAXES before all other WCS keywords in the header.",
			Explain: "When present, the WCSAXES keyword must appear before any other WCS keywords (CRPIXn, CRVALn, CTYPEn, CDELTn, etc.) so that the WCS dimensionality is known before the per-axis keywords are read.",
		},
		402: {
			Fix:     "Reduce the WCS keyword index to not exceed the WCSAXES value.",
			Explain: "WCS keywords with axis indices (CRPIXn, CRVALn, etc.) must have index n <= WCSAXES. Indices beyond this range are invalid.",
		},

		// Reader failures.
		451: {
			Fix:     "Check the reader error message for details on the I/O or parsing failure.",
			Explain: "The FITS reader reported an error while processing the file. This may indicate file corruption, an unsupported feature, or a system I/O problem.",
		},
		452: {
			Fix:     "Review the reader error stack messages for the root cause.",
			Explain: "The FITS reader reported one or more errors. The error stack shows the sequence of reads that led to the failure.",
		},

		// Abort.
		481: {
			Fix:     "Fix the most critical errors first; the file has too many problems to list completely.",
			Explain: "Verification was aborted because the error count exceeded the maximum threshold (200). The file likely has a fundamental structural problem that causes cascading errors.",
		},

		// Warnings.
		501: {
			Fix:     "Set SIMPLE = T unless the file intentionally uses non-standard features.",
			Explain: "SIMPLE = F indicates the file may not conform to the FITS Standard. Most FITS readers expect SIMPLE = T. Only use F if the file contains non-standard data that requires special handling.",
		},
		502: {
			Fix:     "Replace deprecated keywords: EPOCH -> EQUINOX, BLOCKED -> (remove).",
			Explain: "The EPOCH keyword is deprecated in favor of EQUINOX. The BLOCKED keyword is deprecated and should be removed; it was related to tape blocking which is no longer relevant.",
		},
		503: {
			Fix:     "Give each HDU a unique combination of EXTNAME, EXTVER, and EXTLEVEL.",
			Explain: "Multiple HDUs share the same EXTNAME, EXTVER, and EXTLEVEL values. While not strictly forbidden, this makes it impossible to uniquely identify HDUs by name, which breaks many FITS tools.",
		},
		504: {
			Fix:     "Set BSCALE/TSCALn to a non-zero value.",
			Explain: "A scale factor of zero would map all raw values to the same physical value (the offset), which is almost certainly unintended. The standard formula is: physical = raw * BSCALE + BZERO.",
		},
		505: {
			Fix:     "Set BLANK/TNULLn to a value within the valid range for the datatype.",
			Explain: "The null value indicator must be representable in the column's or image's datatype. For example, TNULLn for a 16-bit integer column must be between -32768 and 32767.",
		},
		506: {
			Fix:     "Adjust the TFORMn 'rAw' format so r is a multiple of w.",
			Explain: "For character columns in binary tables with format rAw, the repeat count r should be a multiple of the character width w. Otherwise the last sub-string is truncated.",
		},
		507: {
			Fix:     "Use the DATE format 'YYYY-MM-DD' instead of 'DD/MM/YY'.",
			Explain: "The old DATE format 'DD/MM/YY' is ambiguous for years near 2000. The FITS Standard requires the ISO 8601 format 'YYYY-MM-DD' (or 'YYYY-MM-DDThh:mm:ss').",
		},
		508: {
			Fix:     "Add a WCSAXES keyword, or ensure WCS indices do not exceed NAXIS.",
			Explain: "A WCS keyword has an axis index exceeding NAXIS. If the WCS has more axes than the data (e.g., for celestial + spectral), add WCSAXES to declare the WCS dimensionality.",
		},
		509: {
			Fix:     "Remove the duplicate keyword or rename one of the copies.",
			Explain: "The same keyword appears more than once in the header. Only COMMENT, HISTORY, blank, and CONTINUE keywords may be duplicated.",
		},
		510: {
			Fix:     "Rename the column using only letters, digits, and underscores.",
			Explain: "Column names (TTYPEn) should contain only letters (A-Z, a-z), digits (0-9), and underscores. Other characters may cause problems with FITS processing software.",
		},
		511: {
			Fix:     "Add a TTYPEn keyword to give the column a descriptive name.",
			Explain: "Every table column should have a TTYPEn keyword with a descriptive name. While technically optional, unnamed columns are difficult to work with in most FITS tools.",
		},
		512: {
			Fix:     "Rename one of the duplicate columns to have a unique TTYPEn value.",
			Explain: "Multiple columns share the same name. While not forbidden by the standard, duplicate column names cause ambiguity when accessing columns by name.",
		},
		513: {
			Fix:     "Recompute CHECKSUM and DATASUM using a FITS checksum utility (e.g., fchecksum).",
			Explain: "The stored CHECKSUM or DATASUM does not match the computed value, indicating the file has been modified since the checksums were written. Recompute them if the current data is correct, or investigate if the file may be corrupt.",
		},
		514: {
			Fix:     "Add 'LONGSTRN = OGIP 1.0' to the header when using CONTINUE long strings.",
			Explain: "The header uses CONTINUE keywords for long string values but lacks the LONGSTRN convention keyword that declares this usage.",
		},
		515: {
			Fix:     "Use 'Q' format (64-bit descriptor) instead of 'P' for large variable-length arrays.",
			Explain: "A variable-length array descriptor value exceeds the 32-bit range. The 'P' format uses 32-bit descriptors (max ~2 GB). For larger data, use the 'Q' format with 64-bit descriptors.",
		},
		516: {
			Fix:     "Set PCOUNT = 0 or add variable-length array columns.",
			Explain: "PCOUNT is non-zero (indicating a variable-length data heap exists) but no columns use variable-length array format (P or Q descriptors). The heap space appears unused.",
		},
		517: {
			Fix:     "Use a standard XTENSION value: IMAGE, TABLE, or BINTABLE.",
			Explain: "The FITS Standard defines only three XTENSION values: IMAGE, TABLE, and BINTABLE. Other values (A3DTABLE, IUEIMAGE, FOREIGN, DUMP) are legacy or non-standard and may not be supported by FITS readers.",
		},
		518: {
			Fix:     "Convert Random Groups data to a binary table extension.",
			Explain: "The Random Groups convention has been deprecated since FITS Standard Version 1. Binary table extensions provide equivalent functionality with better tool support. See FITS Standard Section 7.",
		},
		519: {
			Fix:     "Remove INHERIT or ensure the primary HDU has NAXIS = 0.",
			Explain: "INHERIT = T allows extensions to inherit primary header keywords, but is only meaningful when the primary HDU has no data (NAXIS = 0). See FITS Standard Section 4.4.2.4.",
		},
		520: {
			Fix:     "Remove the trailing '&' from the column name unless CONTINUE convention is intended.",
			Explain: "A column name (TTYPEn) contains an ampersand '&', which is the continuation character used in the CONTINUE long-string convention. This is unusual for a column name and may indicate a formatting error.",
		},
		521: {
			Fix:     "Set TIMESYS to a recognized time scale (e.g., UTC, TAI, TDB, TT).",
			Explain: "TIMESYS specifies the time scale for time-related keywords. Allowed values: UTC, TAI, TDB, TT, ET, UT1, UT, TCG, TCB, TDT, IAT, GPS, LOCAL. See FITS Standard Section 4.4.2.6.",
		},
	}}
}
