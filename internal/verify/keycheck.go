package verify

import (
	"strconv"
	"strings"
)

// checkString verifies the card holds a string value and returns it.
func (c *Context) checkString(card *Card) (string, bool) {
	c.hintFor(card.Name)
	if card.Type == TypeUnknown && card.Value == "" {
		c.errf(CodeNullValue, "Keyword #%d, %s has a null value; expected a string.",
			card.Index, card.Name)
		return "", false
	}
	if card.Type != TypeString {
		mess := "Keyword #" + strconv.Itoa(card.Index) + ", " + card.Name +
			": \"" + card.Value + "\" is not a string."
		switch {
		case card.Type == TypeInteger || card.Type == TypeFloat:
			c.hintFix("Add quotes around the value of '%s' in HDU %d. The current value %s should be a quoted string.",
				card.Name, c.curHDU, card.Value)
		case card.Value == "":
			c.hintFix("'%s' in HDU %d has no value. Set it to a quoted string (e.g., %s = 'value').",
				card.Name, c.curHDU, card.Name)
		default:
			c.hintFix("Set '%s' in HDU %d to a properly quoted string value. The current value '%s' is not recognized as a string.",
				card.Name, c.curHDU, card.Value)
		}
		c.hintExplain("'%s' is expected to be a string keyword in the FITS Standard. String values must be enclosed in single quotes in columns 11-80 of the header card.",
			card.Name)
		c.errf(CodeWrongType, "%s", mess)
		return "", false
	}
	return card.Value, true
}

// checkInt verifies the card holds an integer value and returns it.
func (c *Context) checkInt(card *Card) (int64, bool) {
	c.hintFor(card.Name)
	if card.Type == TypeUnknown && card.Value == "" {
		c.errf(CodeNullValue, "Keyword #%d, %s has a null value; expected an integer.",
			card.Index, card.Name)
		return 0, false
	}
	if card.Type != TypeInteger {
		mess := "Keyword #" + strconv.Itoa(card.Index) + ", " + card.Name +
			": value = " + card.Value + " is not an integer."
		if card.Type == TypeString {
			mess += " The value is entered as a string. "
			c.hintFix("Remove the quotes from '%s' in HDU %d. The value must be an integer, not a string.",
				card.Name, c.curHDU)
			c.hintExplain("'%s' currently has the quoted string '%s'. Remove the quotes so it is parsed as an integer.",
				card.Name, card.Value)
		}
		c.errf(CodeWrongType, "%s", mess)
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(card.Value), 10, 64)
	if err != nil {
		c.errf(CodeWrongType, "Keyword #%d, %s: value = %s is not an integer.",
			card.Index, card.Name, card.Value)
		return 0, false
	}
	return v, true
}

// checkFloat verifies the card holds a numeric value; integers are
// accepted as floats.
func (c *Context) checkFloat(card *Card) (float64, bool) {
	c.hintFor(card.Name)
	if card.Type == TypeUnknown && card.Value == "" {
		c.errf(CodeNullValue, "Keyword #%d, %s has a null value; expected a float.",
			card.Index, card.Name)
		return 0, false
	}
	if card.Type != TypeInteger && card.Type != TypeFloat {
		mess := "Keyword #" + strconv.Itoa(card.Index) + ", " + card.Name +
			": value = " + card.Value + " is not a floating point number."
		if card.Type == TypeString {
			mess += " The value is entered as a string. "
			c.hintFix("Remove the quotes from '%s' in HDU %d. The value must be a number, not a string.",
				card.Name, c.curHDU)
			c.hintExplain("'%s' currently has the quoted string '%s'. This keyword requires a numeric value. Remove the quotes and provide the actual number.",
				card.Name, card.Value)
		}
		c.errf(CodeWrongType, "%s", mess)
		return 0, false
	}
	return parseFitsFloat(card.Value), true
}

// checkLogical verifies the card holds T or F.
func (c *Context) checkLogical(card *Card) (bool, bool) {
	c.hintFor(card.Name)
	if card.Type != TypeLogical {
		mess := "Keyword #" + strconv.Itoa(card.Index) + ", " + card.Name +
			": value = " + card.Value + " is not a logical constant."
		if card.Type == TypeString {
			mess += " The value is entered as a string. "
			c.hintFix("Remove the quotes from '%s' in HDU %d. The value must be a logical (T or F), not a string.",
				card.Name, c.curHDU)
			c.hintExplain("'%s' currently has the quoted string '%s'. Logical keywords must have T or F (without quotes) in column 30 of the header card.",
				card.Name, card.Value)
		}
		c.errf(CodeWrongType, "%s", mess)
		return false, false
	}
	return card.Value == "T", true
}

// checkComplexInt verifies the card holds an integer complex value.
func (c *Context) checkComplexInt(card *Card) bool {
	c.hintFor(card.Name)
	if card.Type != TypeComplexInt {
		mess := "Keyword #" + strconv.Itoa(card.Index) + ", " + card.Name +
			": value = " + card.Value + " is not a integer complex number."
		if card.Type == TypeString {
			mess += " The value is entered as a string. "
			c.hintFix("Remove the quotes from '%s' in HDU %d. The value must be an integer complex number, not a string.",
				card.Name, c.curHDU)
			c.hintExplain("'%s' currently has the quoted string '%s'. Complex integer values are written as two integers in parentheses without quotes: (real, imag).",
				card.Name, card.Value)
		}
		c.errf(CodeWrongType, "%s", mess)
		return false
	}
	return true
}

// checkComplexFloat verifies the card holds a complex value; integer
// complex values are accepted.
func (c *Context) checkComplexFloat(card *Card) bool {
	c.hintFor(card.Name)
	if card.Type != TypeComplexInt && card.Type != TypeComplexFloat {
		mess := "Keyword #" + strconv.Itoa(card.Index) + ", " + card.Name +
			": value = " + card.Value + " is not a floating point complex number."
		if card.Type == TypeString {
			mess += " The value is entered as a string. "
			c.hintFix("Remove the quotes from '%s' in HDU %d. The value must be a complex number, not a string.",
				card.Name, c.curHDU)
			c.hintExplain("'%s' currently has the quoted string '%s'. Complex floating-point values are written as two numbers in parentheses without quotes: (real, imag).",
				card.Name, card.Value)
		}
		c.errf(CodeWrongType, "%s", mess)
		return false
	}
	return true
}

// parseFitsFloat converts a FITS numeric token, mapping Fortran D
// exponents to E.
func parseFitsFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, s)
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func cardKeyword(image string) string {
	n := len(image)
	if n > 8 {
		n = 8
	}
	return strings.TrimRight(image[:n], " ")
}

// checkFixedInt verifies a mandatory integer keyword is right
// justified in columns 11-30 of the card image.
func (c *Context) checkFixedInt(image string) bool {
	c.hintFor(cardKeyword(image))
	i := 10
	for i < len(image) && image[i] == ' ' {
		i++
	}
	if i < len(image) && (image[i] == '-' || image[i] == '+') {
		i++
	}
	for i < len(image) && isDigit(image[i]) {
		i++
	}
	if i != 30 {
		c.errf(CodeNotFixedFormat, "%.8s mandatory keyword is not in integer fixed format:", image)
		c.info("%s", image)
		c.info("          -------------------^")
		return false
	}
	return true
}

// checkFixedLogical verifies a mandatory logical keyword has T or F in
// column 30.
func (c *Context) checkFixedLogical(image string) bool {
	c.hintFor(cardKeyword(image))
	i := 10
	for i < len(image) && image[i] == ' ' {
		i++
	}
	if i >= len(image) || (image[i] != 'T' && image[i] != 'F') {
		c.errf(CodeBadLogical, "%.8s mandatory keyword does not have T or F logical value.", image)
		return false
	}
	if i != 29 {
		c.errf(CodeNotFixedFormat, "%.8s mandatory keyword is not in logical fixed format:", image)
		c.info("%s", image)
		c.info("          -------------------^")
		return false
	}
	return true
}

// checkFixedString verifies a mandatory string keyword has its opening
// quote in column 11 and its closing quote at or beyond column 20.
// This applies to XTENSION and TFORMn.
func (c *Context) checkFixedString(image string) bool {
	c.hintFor(cardKeyword(image))
	if len(image) <= 10 || image[10] != '\'' {
		c.errf(CodeNotFixedFormat, "%.8s mandatory string keyword does not start in col 11.", image)
		c.info("%s", image)
		c.info("          ^--------^")
		return false
	}
	i := 11
	for i < len(image) && image[i] != '\'' {
		i++
	}
	if i >= len(image) {
		c.errf(CodeNotFixedFormat, "%.8s mandatory string keyword missing closing quote character:", image)
		c.info("%s", image)
		return false
	}
	if i < 19 {
		c.errf(CodeNotFixedFormat, "%.8s mandatory string keyword ends before column 20.", image)
		c.info("%s", image)
		c.info("          ^--------^")
		return false
	}
	return true
}
