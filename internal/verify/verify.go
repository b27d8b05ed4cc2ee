package verify

import (
	"fmt"

	"example.com/fitsgate/internal/fits"
)

// Version is reported in the banner and in service responses.
const Version = "1.0.0"

// Result summarizes the verification of one file.
type Result struct {
	File     string `json:"file"`
	HDUs     int    `json:"hdus"`
	Warnings int    `json:"warnings"`
	Errors   int    `json:"errors"`
	Aborted  bool   `json:"aborted"`
}

// VerifyFile opens and verifies one FITS file on disk. A file that
// cannot be opened counts as one error.
func (c *Context) VerifyFile(path string) Result {
	c.resetFile()
	c.info(" ")
	c.info("File: %s", path)
	f, err := fits.Open(path)
	if err != nil {
		c.readerErrf(CodeReadFail, err, "Unable to verify %s as a FITS file.", path)
		return Result{File: path, Errors: 1, Aborted: true}
	}
	defer f.Close()
	return c.verify(f)
}

// VerifyMemory verifies a FITS image held in a byte buffer. The label
// is used wherever a file name would appear; it defaults to <memory>.
func (c *Context) VerifyMemory(buf []byte, label string) Result {
	if label == "" {
		label = "<memory>"
	}
	c.resetFile()
	c.info(" ")
	c.info("File: %s", label)
	f, err := fits.OpenMemory(buf, label)
	if err != nil {
		c.readerErrf(CodeReadFail, err, "Unable to verify %s as a FITS file.", label)
		return Result{File: label, Errors: 1, Aborted: true}
	}
	defer f.Close()
	return c.verify(f)
}

// resetFile clears all per-file state so a Context can verify several
// files in sequence while keeping its session totals.
func (c *Context) resetFile() {
	c.file = nil
	c.curHDU = 0
	c.nerrs = 0
	c.nwrns = 0
	c.maxErrorsReached = false
	c.primaryHasData = false
	c.clearHint()
	c.ledger = newLedger()
}

func (c *Context) verify(f *fits.File) Result {
	c.file = f
	if c.metrics != nil {
		c.metrics.SetTotalBytes(f.Size())
	}

	c.info("%d Header-Data Units in this file.", f.NumHDUs())
	c.info(" ")
	c.ledger.begin(f.NumHDUs())

	for n := 1; n <= f.NumHDUs(); n++ {
		hdu := f.HDU(n)
		c.sep('=', fmt.Sprintf(" %s ", hduLabel(hdu.Num, hdu.Type.String())))
		c.beginHDU(hdu)
		id := c.verifyHeader(hdu)
		c.ledger.setIdentity(hdu.Num, hdu.Type, id.extname, id.extver)
		if hdu.Num == 1 {
			c.primaryHasData = hdu.DataSize > 0
		}
		if !c.maxErrorsReached {
			c.verifyData(f, hdu)
		}
		if len(f.ErrorStack()) > 0 && !c.maxErrorsReached {
			c.readerStackErrf(CodeReader, "HDU %d could not be fully read.", hdu.Num)
		}
		if c.metrics != nil {
			c.metrics.AddHDU(hdu.HeaderSize + hdu.DataSize)
			c.metrics.AddCards(int64(hdu.NCards))
			c.metrics.AddRows(hdu.Rows())
		}
		c.info(" ")
		c.closeHDU(hdu.Num)
		if c.maxErrorsReached {
			break
		}
	}

	c.reportDuplicateNames()
	c.checkEnd(f)
	return c.closeReport(f)
}

// checkEnd reports content found past the last recognized HDU.
func (c *Context) checkEnd(f *fits.File) {
	if c.maxErrorsReached || f.ExtraBytes() == 0 {
		return
	}
	pos := f.Size() - f.ExtraBytes() + 1
	if f.ExtraBytes() >= fits.BlockSize {
		c.info("< End-of-File >")
		c.severef(CodeExtraHDUs, "There are extraneous HDU(s) beyond the end of last HDU.")
		c.info(" ")
		return
	}
	c.info("< End-of-File >")
	c.errf(CodeExtraBytes, "File has extra byte(s) after last HDU at byte %d.", pos)
	c.info(" ")
}

func (c *Context) closeReport(f *fits.File) Result {
	if c.opts.PrintStat {
		c.summary()
	}
	errors, warnings := c.fileTotals()
	c.info(" ")
	c.info("**** Verification found %d warning(s) and %d error(s). ****", warnings, errors)
	return Result{
		File:     f.Name(),
		HDUs:     f.NumHDUs(),
		Warnings: warnings,
		Errors:   errors,
		Aborted:  c.maxErrorsReached,
	}
}
