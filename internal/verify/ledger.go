package verify

import (
	"fmt"

	"example.com/fitsgate/internal/fits"
)

// ledgerEntry accumulates one HDU's identity and counts for the
// end-of-file summary and duplicate-extension detection.
type ledgerEntry struct {
	hduType fits.HDUType
	extname string
	extver  int64
	errors  int
	warns   int
}

type ledger struct {
	entries []ledgerEntry
}

func newLedger() *ledger { return &ledger{} }

// begin allocates one entry per HDU of the file about to be verified.
func (l *ledger) begin(totalHDUs int) {
	l.entries = make([]ledgerEntry, totalHDUs)
}

func (l *ledger) setIdentity(hduNum int, t fits.HDUType, extname string, extver int64) {
	if hduNum < 1 || hduNum > len(l.entries) {
		return
	}
	e := &l.entries[hduNum-1]
	e.hduType = t
	e.extname = extname
	e.extver = extver
}

// duplicate reports whether two HDUs share a non-empty extension name,
// the same type, and the same version.
func (l *ledger) duplicate(a, b int) bool {
	if a == b || a < 1 || b < 1 || a > len(l.entries) || b > len(l.entries) {
		return false
	}
	p1, p2 := &l.entries[a-1], &l.entries[b-1]
	return p1.extname != "" && p1.extname == p2.extname &&
		p1.hduType == p2.hduType && p1.extver == p2.extver
}

// closeHDU pulls the per-HDU counters into the ledger entry and resets
// them so the next HDU starts from zero.
func (c *Context) closeHDU(hduNum int) {
	if hduNum >= 1 && hduNum <= len(c.ledger.entries) {
		e := &c.ledger.entries[hduNum-1]
		e.errors = c.nerrs
		e.warns = c.nwrns
	}
	c.nerrs = 0
	c.nwrns = 0
}

// fileTotals sums all ledger entries plus counts accrued after the
// last HDU closed (end-of-file structural checks). A file that never
// opened counts a single error.
func (c *Context) fileTotals() (errors, warnings int) {
	if len(c.ledger.entries) == 0 {
		return 1, 0
	}
	for i := range c.ledger.entries {
		errors += c.ledger.entries[i].errors
		warnings += c.ledger.entries[i].warns
	}
	errors += c.nerrs
	warnings += c.nwrns
	return errors, warnings
}

// reportDuplicateNames warns once for each pair of HDUs that share an
// extension identity.
func (c *Context) reportDuplicateNames() {
	n := len(c.ledger.entries)
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if c.ledger.duplicate(i, j) {
				c.warnf(WarnDuplicateExtname,
					"HDU #%d and #%d have the identical name '%s', type, and version.",
					i, j, c.ledger.entries[i-1].extname)
			}
		}
	}
}

// summary renders the fixed-width per-HDU table.
func (c *Context) summary() {
	c.sep('+', " Error Summary  ")
	c.info(" ")
	c.info(" HDU#  Name (version)       Type             Warnings  Errors")
	if len(c.ledger.entries) == 0 {
		return
	}
	e := &c.ledger.entries[0]
	c.info(" 1                          Primary Array    %-4d      %-4d  ", e.warns, e.errors)
	for i := 2; i <= len(c.ledger.entries); i++ {
		p := &c.ledger.entries[i-1]
		name := p.extname
		if p.extver != 0 {
			name += fmt.Sprintf(" (%-d)", p.extver)
		}
		var label string
		switch p.hduType {
		case fits.ImageExt:
			label = "Image Array"
		case fits.AsciiTable:
			label = "ASCII Table"
		case fits.BinTable:
			label = "Binary Table"
		default:
			label = "Unknown HDU"
		}
		c.info(" %-5d %-20s %-16s %-4d      %-4d  ", i, name, label, p.warns, p.errors)
	}
	if c.nwrns != 0 || c.nerrs != 0 {
		c.info(" End-of-file %-30s  %-4d      %-4d  ", "", c.nwrns, c.nerrs)
	}
	c.info(" ")
}
