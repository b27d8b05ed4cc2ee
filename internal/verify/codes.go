package verify

// Code identifies one diagnostic condition. Codes are grouped in
// numeric bands so that a message's area can be recovered from the
// code alone: 100s file structure, 150s mandatory keywords, 200s card
// value format, 250s keyword placement, 300s table structure, 350s
// data content, 400s WCS, 450s reader failures, 480s abort, 500s
// warning conditions.
type Code int

const (
	CodeOK Code = 0

	CodeReadFail   Code = 101
	CodeBadHDU     Code = 102
	CodeExtraBytes Code = 103
	CodeExtraHDUs  Code = 104

	CodeMissingKeyword   Code = 151
	CodeKeywordOrder     Code = 152
	CodeKeywordDuplicate Code = 153
	CodeKeywordValue     Code = 154
	CodeKeywordType      Code = 155
	CodeMissingEnd       Code = 156
	CodeEndNotBlank      Code = 157
	CodeNotFixedFormat   Code = 158

	CodeCardTooLong       Code = 201
	CodeNonTextChars      Code = 202
	CodeNameNotJustified  Code = 203
	CodeIllegalNameChar   Code = 204
	CodeBadString         Code = 205
	CodeMissingQuote      Code = 206
	CodeBadLogical        Code = 207
	CodeBadNumber         Code = 208
	CodeLowercaseExponent Code = 209
	CodeNoTrailParen      Code = 210
	CodeNoComma           Code = 211
	CodeTooManyComma      Code = 212
	CodeBadReal           Code = 213
	CodeBadImag           Code = 214
	CodeNoStartSlash      Code = 215
	CodeBadComment        Code = 216
	CodeUnknownType       Code = 217
	CodeWrongType         Code = 218
	CodeNullValue         Code = 219
	CodeLeadingSpace      Code = 220

	CodeXtensionInPrimary Code = 251
	CodePrimaryKeyInExt   Code = 252
	CodeTableKeyInImage   Code = 253
	CodeImageKeyInTable   Code = 254
	CodeTableWCSInImage   Code = 255
	CodeTdimInAscii       Code = 256
	CodeTbcolInBinary     Code = 257
	CodeTheapNoPcount     Code = 258
	CodeKeywordNotAllowed Code = 259

	CodeTfieldsMismatch     Code = 301
	CodeNaxis1Mismatch      Code = 302
	CodeBadTform            Code = 303
	CodeBadTdisp            Code = 304
	CodeIndexExceedsTfields Code = 305
	CodeTscalWrongCol       Code = 306
	CodeTnullWrongType      Code = 307
	CodeBlankWrongType      Code = 308
	CodeBadTbcol            Code = 309

	CodeVarExceedsMaxLen Code = 351
	CodeVarExceedsHeap   Code = 352
	CodeBitNotJustified  Code = 353
	CodeBadLogicalData   Code = 354
	CodeNonasciiData     Code = 355
	CodeNoDecimal        Code = 356
	CodeEmbeddedSpace    Code = 357
	CodeNonasciiTable    Code = 358
	CodeDataFill         Code = 359
	CodeHeaderFill       Code = 360

	CodeWcsaxesOrder  Code = 401
	CodeWcsIndexBound Code = 402

	CodeReader      Code = 451
	CodeReaderStack Code = 452

	CodeTooMany Code = 481

	WarnSimpleFalse      Code = 501
	WarnDeprecated       Code = 502
	WarnDuplicateExtname Code = 503
	WarnZeroScale        Code = 504
	WarnNullRange        Code = 505
	WarnRawMultiple      Code = 506
	WarnY2KDate          Code = 507
	WarnWcsIndexNoAxes   Code = 508
	WarnDuplicateKeyword Code = 509
	WarnBadColumnName    Code = 510
	WarnNoColumnName     Code = 511
	WarnDuplicateColumn  Code = 512
	WarnBadChecksum      Code = 513
	WarnMissingLongstrn  Code = 514
	WarnVarExceeds32bit  Code = 515
	WarnPcountNoVla      Code = 516
	WarnLegacyXtension   Code = 517
	WarnRandomGroups     Code = 518
	WarnInheritPrimary   Code = 519
	WarnContinueChar     Code = 520
	WarnTimesysValue     Code = 521
)

// Class partitions codes by band. Dispatch on the class, not on raw
// code arithmetic.
type Class int

const (
	ClassInfo Class = iota
	ClassStructure
	ClassMandatory
	ClassValueFormat
	ClassPlacement
	ClassTableStructure
	ClassData
	ClassWCS
	ClassReader
	ClassAbort
	ClassWarning
)

func (c Code) Class() Class {
	switch {
	case c <= 0:
		return ClassInfo
	case c < 150:
		return ClassStructure
	case c < 200:
		return ClassMandatory
	case c < 250:
		return ClassValueFormat
	case c < 300:
		return ClassPlacement
	case c < 350:
		return ClassTableStructure
	case c < 400:
		return ClassData
	case c < 450:
		return ClassWCS
	case c < 480:
		return ClassReader
	case c < 500:
		return ClassAbort
	}
	return ClassWarning
}

func (c Class) String() string {
	switch c {
	case ClassInfo:
		return "info"
	case ClassStructure:
		return "structure"
	case ClassMandatory:
		return "mandatory-keyword"
	case ClassValueFormat:
		return "value-format"
	case ClassPlacement:
		return "keyword-placement"
	case ClassTableStructure:
		return "table-structure"
	case ClassData:
		return "data"
	case ClassWCS:
		return "wcs"
	case ClassReader:
		return "reader"
	case ClassAbort:
		return "abort"
	}
	return "warning"
}

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
	SeveritySevere  Severity = "SEVERE"
)

// Level orders severities for the report-floor option: 0 reports
// everything, 1 drops warnings, 2 keeps only severe errors.
func (s Severity) Level() int {
	switch s {
	case SeverityWarning:
		return 0
	case SeverityError:
		return 1
	case SeveritySevere:
		return 2
	}
	return 0
}
