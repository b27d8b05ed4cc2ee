package fits

import (
	"strconv"
	"strings"
)

func buildColumns(hdu *HDU, tform map[int64]string, ttype map[int64]string, tbcol map[int64]int64) {
	if hdu.Tfields <= 0 {
		return
	}
	hdu.Columns = make([]Column, hdu.Tfields)
	offset := int64(0)
	for n := int64(1); n <= hdu.Tfields; n++ {
		c := Column{Name: ttype[n], TForm: tform[n], MaxLen: -1, Decimals: -1}
		switch hdu.Type {
		case AsciiTable:
			parseAsciiTForm(&c)
			c.TBCol = tbcol[n]
		default:
			parseBinaryTForm(&c)
			c.Offset = offset
			offset += c.Width
		}
		hdu.Columns[n-1] = c
	}
}

// parseBinaryTForm decodes an rTa binary table format, including the
// rPt(max) and rQt(max) descriptor forms. A form it cannot decode
// leaves TypeChar zero; the verifier reports it.
func parseBinaryTForm(c *Column) {
	s := strings.TrimSpace(c.TForm)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	repeat := int64(1)
	if i > 0 {
		r, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return
		}
		repeat = r
	}
	if i >= len(s) {
		return
	}
	c.Repeat = repeat
	t := s[i]
	i++
	if t == 'P' || t == 'Q' {
		c.Variable = true
		c.DescChar = t
		if i < len(s) {
			c.TypeChar = s[i]
			i++
		}
		if i < len(s) && s[i] == '(' {
			j := strings.IndexByte(s[i:], ')')
			if j > 1 {
				if max, err := strconv.ParseInt(s[i+1:i+j], 10, 64); err == nil {
					c.MaxLen = max
				}
			}
		}
		if t == 'Q' {
			c.Width = repeat * 16
		} else {
			c.Width = repeat * 8
		}
		return
	}
	c.TypeChar = t
	switch t {
	case 'X':
		c.Width = (repeat + 7) / 8
	default:
		w := elementWidth(t)
		if w < 0 {
			w = 0
		}
		c.Width = repeat * w
	}
}

// parseAsciiTForm decodes an ASCII table Tw.d format (T one of
// A I F E D).
func parseAsciiTForm(c *Column) {
	s := strings.TrimSpace(c.TForm)
	if len(s) == 0 {
		return
	}
	t := s[0]
	switch t {
	case 'A', 'I', 'F', 'E', 'D':
	default:
		return
	}
	rest := s[1:]
	dot := strings.IndexByte(rest, '.')
	wpart := rest
	if dot >= 0 {
		wpart = rest[:dot]
		if d, err := strconv.ParseInt(rest[dot+1:], 10, 64); err == nil {
			c.Decimals = d
		}
	}
	w, err := strconv.ParseInt(wpart, 10, 64)
	if err != nil || w < 1 {
		return
	}
	c.TypeChar = t
	c.FieldWide = w
	c.Repeat = 1
	c.Width = w
}

// VarElementWidth returns the byte width of one element of a
// variable-length column, or -1 for bit arrays.
func VarElementWidth(typeChar byte) int64 {
	if typeChar == 'X' {
		return -1
	}
	w := elementWidth(typeChar)
	if w <= 0 {
		return 1
	}
	return w
}
