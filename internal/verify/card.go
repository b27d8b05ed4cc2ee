package verify

import (
	"strings"

	"example.com/fitsgate/internal/fits"
)

// KeyType classifies the value field of a header card.
type KeyType int

const (
	TypeUnknown KeyType = iota
	TypeString
	TypeLogical
	TypeInteger
	TypeFloat
	TypeComplexInt
	TypeComplexFloat
	TypeCommentary
	TypeEnd
)

func (t KeyType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeLogical:
		return "logical"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeComplexInt:
		return "complex integer"
	case TypeComplexFloat:
		return "complex float"
	case TypeCommentary:
		return "commentary"
	case TypeEnd:
		return "end"
	}
	return "unknown"
}

// cardDefects records every value-format problem found while parsing a
// card. Each defect is an independent flag so that one card can carry
// several problems and each is reported on its own.
type cardDefects struct {
	badString    bool
	noTrailQuote bool
	badLogical   bool
	badNumber    bool
	lowercaseExp bool
	noTrailParen bool
	noComma      bool
	tooManyComma bool
	badReal      bool
	badImag      bool
	noStartSlash bool
	badComment   bool
	unknownType  bool
}

func (d cardDefects) any() bool {
	return d.badString || d.noTrailQuote || d.badLogical || d.badNumber ||
		d.lowercaseExp || d.noTrailParen || d.noComma || d.tooManyComma ||
		d.badReal || d.badImag || d.noStartSlash || d.badComment ||
		d.unknownType
}

// Card is one parsed header record.
type Card struct {
	Index   int // 1-based position within the header
	Name    string
	Value   string
	Comment string
	Type    KeyType

	defects cardDefects
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] > 126 {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// parseCard parses one 80-character header record, reporting every
// name and value format violation it finds.
func (c *Context) parseCard(pos int, image string) Card {
	card := Card{Index: pos}

	if len(image) > fits.CardLen {
		c.errf(CodeCardTooLong, "card %s is > 80.", image)
		image = image[:fits.CardLen]
	}
	for len(image) < 8 {
		image += " "
	}

	name := strings.TrimRight(image[:8], " ")
	if name != "" && name[0] == ' ' {
		c.hintFor(name)
		c.errf(CodeNameNotJustified, "Keyword #%d: Name %s is not left justified.", pos, name)
		name = strings.TrimLeft(name, " ")
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == '-' || ch == '_' {
			continue
		}
		c.hintFor(name)
		c.errf(CodeIllegalNameChar,
			"Keyword #%d: Name \"%s\" contains char \"%c\" which is not upper case letter, digit, \"-\", or \"_\".",
			pos, name, ch)
		break
	}
	card.Name = name

	switch name {
	case "COMMENT", "HISTORY", "HIERARCH", "CONTINUE", "":
		card.Type = TypeCommentary
		card.Comment = strings.TrimRight(image[8:], " ")
		if !printable(image) {
			c.hintFor(name)
			c.errf(CodeNonTextChars, "Keyword #%d, %s: String contains non-text characters.", pos, name)
		}
		return card
	case "END":
		card.Type = TypeEnd
		if strings.TrimRight(image[3:], " ") != "" {
			c.errf(CodeEndNotBlank, "END keyword contains non-blank characters.")
		}
		return card
	}

	if len(image) < 10 || image[8] != '=' || image[9] != ' ' {
		card.Type = TypeCommentary
		card.Comment = strings.TrimRight(image[8:], " ")
		if !printable(image) {
			c.hintFor(name)
			c.errf(CodeNonTextChars, "Keyword #%d, %s: String contains non-text characters.", pos, name)
		}
		return card
	}

	rest := image[10:]
	i := 0
	for i < len(rest) && rest[i] == ' ' {
		i++
	}
	if i == len(rest) {
		card.Type = TypeUnknown
		c.reportCardDefects(&card)
		return card
	}

	switch ch := rest[i]; {
	case ch == '\'':
		card.Type = TypeString
		i = getString(rest, i, &card)
	case ch == 'T' || ch == 'F':
		card.Type = TypeLogical
		card.Value = string(ch)
		i++
		j := i
		for j < len(rest) && rest[j] == ' ' {
			j++
		}
		if j < len(rest) && rest[j] != '/' {
			card.defects.badLogical = true
		}
	case ch == '+' || ch == '-' || ch == '.' || isDigit(ch):
		card.Type = getNumber(rest, &i, &card)
	case ch == '(':
		card.Type = getComplex(rest, &i, &card)
	case ch == '/':
		card.Type = TypeUnknown
	default:
		card.Type = TypeUnknown
		card.defects.unknownType = true
		j := i
		for j < len(rest) && rest[j] != ' ' && rest[j] != '/' {
			j++
		}
		card.Value = rest[i:j]
		i = j
	}

	for i < len(rest) && rest[i] == ' ' {
		i++
	}
	if i < len(rest) {
		getComment(rest[i:], &card)
	}

	c.reportCardDefects(&card)
	return card
}

// getString consumes a quoted string starting at the opening quote.
// Doubled quotes escape a literal quote. Returns the index past the
// closing quote.
func getString(s string, i int, card *Card) int {
	var b strings.Builder
	i++ // opening quote
	closed := false
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			closed = true
			i++
			break
		}
		if s[i] < 32 || s[i] > 126 {
			card.defects.badString = true
		}
		b.WriteByte(s[i])
		i++
	}
	if !closed {
		card.defects.noTrailQuote = true
	}
	card.Value = strings.TrimRight(b.String(), " ")
	return i
}

// getNumber consumes a numeric token ending at a space or slash.
func getNumber(s string, ip *int, card *Card) KeyType {
	i := *ip
	start := i
	typ := TypeInteger
	sawPoint := false
	sawExpo := false
	first := true
	for i < len(s) && s[i] != ' ' && s[i] != '/' {
		ch := s[i]
		switch {
		case isDigit(ch):
		case ch == '+' || ch == '-':
			if !first {
				card.defects.badNumber = true
			}
		case ch == '.':
			if sawPoint {
				card.defects.badNumber = true
			}
			sawPoint = true
			typ = TypeFloat
		case ch == 'E' || ch == 'D':
			if sawExpo {
				card.defects.badNumber = true
			}
			sawExpo = true
			typ = TypeFloat
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		case ch == 'e' || ch == 'd':
			if sawExpo {
				card.defects.badNumber = true
			}
			sawExpo = true
			typ = TypeFloat
			card.defects.lowercaseExp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		default:
			card.defects.badNumber = true
		}
		first = false
		i++
	}
	card.Value = s[start:i]
	*ip = i
	return typ
}

// validNumber re-checks a substring of a complex value with the same
// rules as getNumber, reporting float vs integer.
func validNumber(s string) (ok bool, isFloat bool, lowerExp bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, false, false
	}
	ok = true
	sawPoint := false
	sawExpo := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case isDigit(ch):
		case ch == '+' || ch == '-':
			if i != 0 && !(s[i-1] == 'E' || s[i-1] == 'D' || s[i-1] == 'e' || s[i-1] == 'd') {
				ok = false
			}
		case ch == '.':
			if sawPoint {
				ok = false
			}
			sawPoint = true
			isFloat = true
		case ch == 'E' || ch == 'D':
			if sawExpo {
				ok = false
			}
			sawExpo = true
			isFloat = true
		case ch == 'e' || ch == 'd':
			if sawExpo {
				ok = false
			}
			sawExpo = true
			isFloat = true
			lowerExp = true
		default:
			ok = false
		}
	}
	return ok, isFloat, lowerExp
}

// getComplex consumes a parenthesized complex value.
func getComplex(s string, ip *int, card *Card) KeyType {
	i := *ip // points at '('
	setComma := false
	setParen := false
	prEnd, piBeg, piEnd := -1, -1, -1
	j := i + 1
	for ; j < len(s); j++ {
		if s[j] == ')' {
			setParen = true
			piEnd = j
			j++
			break
		}
		if s[j] == '/' {
			break
		}
		if s[j] == ',' {
			if setComma {
				card.defects.tooManyComma = true
			} else {
				setComma = true
				prEnd = j
				piBeg = j + 1
			}
		}
	}
	if !setComma {
		card.defects.noComma = true
	}
	if !setParen {
		card.defects.noTrailParen = true
		piEnd = j
		for piEnd > i+1 && s[piEnd-1] == ' ' {
			piEnd--
		}
	}
	end := piEnd
	if setParen {
		end = piEnd + 1
	}
	card.Value = s[i:end]
	*ip = j

	typ := TypeComplexInt
	if setComma {
		if ok, isFloat, lower := validNumber(s[i+1 : prEnd]); !ok {
			card.defects.badReal = true
		} else {
			if isFloat {
				typ = TypeComplexFloat
			}
			if lower {
				card.defects.lowercaseExp = true
			}
		}
		if ok, isFloat, lower := validNumber(s[piBeg:piEnd]); !ok {
			card.defects.badImag = true
		} else {
			if isFloat {
				typ = TypeComplexFloat
			}
			if lower {
				card.defects.lowercaseExp = true
			}
		}
	} else {
		// With no comma the whole interior reads as the real part
		// and the imaginary part goes unchecked.
		if ok, isFloat, lower := validNumber(s[i+1 : piEnd]); !ok {
			card.defects.badReal = true
		} else {
			if isFloat {
				typ = TypeComplexFloat
			}
			if lower {
				card.defects.lowercaseExp = true
			}
		}
	}
	return typ
}

// getComment consumes the comment portion following the value.
func getComment(s string, card *Card) {
	if s == "" {
		return
	}
	if s[0] != '/' {
		card.defects.noStartSlash = true
		card.Comment = strings.TrimRight(s, " ")
	} else {
		card.Comment = strings.TrimRight(s[1:], " ")
	}
	if !printable(card.Comment) {
		card.defects.badComment = true
	}
}

// reportCardDefects emits one diagnostic per defect flag on a parsed
// card.
func (c *Context) reportCardDefects(card *Card) {
	d := card.defects
	if !d.any() {
		return
	}
	pos, name, val := card.Index, card.Name, card.Value
	if d.badString {
		c.hintFor(name)
		c.errf(CodeBadString, "Keyword #%d, %s: String \"%s\"  contains non-text characters.", pos, name, val)
	}
	if d.noTrailQuote {
		c.hintFor(name)
		c.errf(CodeMissingQuote, "Keyword #%d, %s: The closing \"'\" is missing in the string.", pos, name)
	}
	if d.badLogical {
		c.hintFor(name)
		c.errf(CodeBadLogical, "Keyword #%d, %s: Bad logical value \"%s\".", pos, name, val)
	}
	if d.badNumber {
		c.hintFor(name)
		c.errf(CodeBadNumber, "Keyword #%d, %s: Bad numerical value \"%s\".", pos, name, val)
	}
	if d.lowercaseExp {
		c.hintFor(name)
		c.errf(CodeLowercaseExponent, "Keyword #%d, %s: lower-case exponent d or e is illegal in value %s.", pos, name, val)
	}
	if d.noTrailParen {
		c.hintFor(name)
		c.errf(CodeNoTrailParen, "Keyword #%d, %s: Complex value \"%s\" misses closing \")\".", pos, name, val)
	}
	if d.noComma {
		c.hintFor(name)
		c.errf(CodeNoComma, "keyword #%d, %s : Complex value \"%s\" misses \",\".", pos, name, val)
	}
	if d.tooManyComma {
		c.hintFor(name)
		c.errf(CodeTooManyComma, "Keyword #%d, %s: Too many \",\" are in the complex value \"%s\".", pos, name, val)
	}
	if d.badReal {
		c.hintFor(name)
		c.errf(CodeBadReal, "Keyword #%d, %s: Real part of complex value \"%s\" is  bad.", pos, name, val)
	}
	if d.badImag {
		c.hintFor(name)
		c.errf(CodeBadImag, "Keyword #%d, %s: Imagine part of complex value \"%s\" is bad.", pos, name, val)
	}
	if d.noStartSlash {
		c.hintFor(name)
		c.errf(CodeNoStartSlash, "Keyword #%d, %s: Value and Comment not separated by a \"/\".", pos, name)
	}
	if d.badComment {
		c.hintFor(name)
		c.errf(CodeBadComment, "Keyword #%d, %s: Comment contains non-text characters.", pos, name)
	}
	if d.unknownType && val != "" {
		c.hintFor(name)
		c.errf(CodeUnknownType, "Keyword #%d, %s: Type of value \"%s\" is unknown.", pos, name, val)
	}
}
