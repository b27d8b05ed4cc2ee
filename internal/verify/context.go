package verify

import (
	"fmt"

	"example.com/fitsgate/internal/advice"
	"example.com/fitsgate/internal/common"
	"example.com/fitsgate/internal/fits"
)

// MaxErrors is the per-file error threshold; crossing it aborts the
// remainder of the verification with a single final diagnostic.
const MaxErrors = 200

// Severity thresholds for Options.ErrReport.
const (
	ReportAll    = 0
	ReportErrors = 1
	ReportSevere = 2
)

// Options controls which checks run and how diagnostics are filtered.
type Options struct {
	// PrintHeader lists every header card of each HDU in the output.
	PrintHeader bool
	// PrintStat includes the per-HDU summary table and keyword
	// statistics in the output.
	PrintStat bool
	// TestData enables reading and validating the data sections.
	TestData bool
	// TestChecksum verifies CHECKSUM and DATASUM when present.
	TestChecksum bool
	// TestFill verifies header and data fill bytes.
	TestFill bool
	// HeasarcConv enables warnings for HEASARC convention violations.
	HeasarcConv bool
	// TestHierarch parses ESO HIERARCH keyword values instead of
	// treating the cards as commentary.
	TestHierarch bool
	// ErrReport filters diagnostics: ReportAll emits everything,
	// ReportErrors drops warnings, ReportSevere drops plain errors too.
	ErrReport int
	// FixHints attaches a suggested fix to each diagnostic.
	FixHints bool
	// Explain attaches a standard-reference explanation to each
	// diagnostic.
	Explain bool
}

// DefaultOptions returns the options used when none are supplied:
// all checks on, all diagnostics reported, hints off.
func DefaultOptions() Options {
	return Options{
		PrintStat:    true,
		TestData:     true,
		TestChecksum: true,
		TestFill:     true,
		HeasarcConv:  true,
	}
}

// hintState carries the keyword or column context used to compose fix
// and explanation text for the next diagnostic. Call sites may also
// supply explicit text which then takes precedence over the composed
// form. The state is cleared after every dispatch.
type hintState struct {
	keyword    string
	colnum     int
	fixSet     bool
	explainSet bool
	fix        string
	explain    string
}

// Context holds all state for verifying one file. It is not safe for
// concurrent use; create one Context per verification.
type Context struct {
	opts Options
	sink Sink

	file    *fits.File
	advice  *advice.Store
	metrics *common.Metrics

	curHDU  int
	curType fits.HDUType

	nerrs int
	nwrns int

	totalErr int
	totalWrn int

	maxErrorsReached bool
	primaryHasData   bool

	hint   hintState
	ledger *ledger
}

// NewContext builds a verification context writing diagnostics to sink.
// A nil sink discards output; only the counters are kept.
func NewContext(opts Options, sink Sink) *Context {
	if sink == nil {
		sink = NopSink{}
	}
	return &Context{
		opts:   opts,
		sink:   sink,
		advice: advice.Builtin(),
		ledger: newLedger(),
	}
}

// SetAdvice replaces the built-in advice store, typically with one
// merged from a JSON override file.
func (c *Context) SetAdvice(store *advice.Store) {
	if store != nil {
		c.advice = store
	}
}

// SetMetrics attaches a metrics collector updated as HDUs are
// processed.
func (c *Context) SetMetrics(m *common.Metrics) { c.metrics = m }

// Totals returns the accumulated warning and error counts.
func (c *Context) Totals() (warnings, errors int) {
	return c.totalWrn, c.totalErr
}

// Aborted reports whether verification gave up after exceeding
// MaxErrors.
func (c *Context) Aborted() bool { return c.maxErrorsReached }

// beginHDU resets the per-HDU counters and context.
func (c *Context) beginHDU(hdu *fits.HDU) {
	c.curHDU = hdu.Num
	c.curType = hdu.Type
	c.nerrs = 0
	c.nwrns = 0
	c.clearHint()
}

// hintFor sets the keyword context for the next diagnostic.
func (c *Context) hintFor(keyword string) {
	c.hint.keyword = keyword
	c.hint.colnum = 0
}

// hintForColumn sets the column context for the next diagnostic.
func (c *Context) hintForColumn(colnum int) {
	c.hint.keyword = ""
	c.hint.colnum = colnum
}

// hintFix supplies explicit fix text overriding the composed form.
func (c *Context) hintFix(format string, args ...interface{}) {
	c.hint.fixSet = true
	c.hint.fix = fmt.Sprintf(format, args...)
}

// hintExplain supplies explicit explanation text overriding the
// composed form.
func (c *Context) hintExplain(format string, args ...interface{}) {
	c.hint.explainSet = true
	c.hint.explain = fmt.Sprintf(format, args...)
}

func (c *Context) clearHint() {
	c.hint = hintState{}
}

// dispatch sends one message to the sink, attaching hints when enabled,
// and clears the hint context.
func (c *Context) dispatch(sev Severity, code Code, text string) {
	msg := Message{
		Severity: sev,
		Code:     code,
		HDU:      c.curHDU,
		Text:     text,
	}
	if code != CodeOK && (c.opts.FixHints || c.opts.Explain) {
		fix, explain := c.generateHint(code)
		if c.opts.FixHints {
			msg.FixHint = fix
		}
		if c.opts.Explain {
			msg.Explain = explain
		}
	}
	c.sink.Emit(msg)
	c.clearHint()
}

// info emits plain informational text with no counting or filtering.
func (c *Context) info(format string, args ...interface{}) {
	c.dispatch(SeverityInfo, CodeOK, fmt.Sprintf(format, args...))
}

// sep emits a section separator line.
func (c *Context) sep(fill byte, title string) {
	c.info("%s", Separator(fill, title))
}

// warnf emits a warning diagnostic. Warnings are suppressed once the
// error limit is reached or when the report level excludes them.
func (c *Context) warnf(code Code, format string, args ...interface{}) {
	c.warn(code, false, fmt.Sprintf(format, args...))
}

// heasarcf emits a warning tied to a HEASARC convention; it is
// suppressed when HEASARC checking is off.
func (c *Context) heasarcf(code Code, format string, args ...interface{}) {
	c.warn(code, true, fmt.Sprintf(format, args...))
}

func (c *Context) warn(code Code, heasarc bool, mess string) {
	if c.maxErrorsReached || c.opts.ErrReport > ReportAll ||
		(heasarc && !c.opts.HeasarcConv) {
		c.clearHint()
		return
	}
	c.nwrns++
	c.totalWrn++
	if heasarc {
		mess += " (HEASARC Convention)"
	}
	c.dispatch(SeverityWarning, code, "*** Warning: "+mess)
}

// errf emits an error diagnostic at plain error severity.
func (c *Context) errf(code Code, format string, args ...interface{}) {
	c.err(code, 1, fmt.Sprintf(format, args...))
}

// severef emits an error diagnostic at severe severity; these survive
// the strictest report filter.
func (c *Context) severef(code Code, format string, args ...interface{}) {
	c.err(code, 2, fmt.Sprintf(format, args...))
}

func (c *Context) err(code Code, level int, mess string) {
	if c.maxErrorsReached {
		c.clearHint()
		if c.file != nil {
			c.file.ClearErrors()
		}
		return
	}
	if level < c.opts.ErrReport {
		c.clearHint()
		if c.file != nil {
			c.file.ClearErrors()
		}
		return
	}
	c.nerrs++
	c.totalErr++
	sev := SeverityError
	if level >= 2 {
		sev = SeveritySevere
	}
	c.dispatch(sev, code, "*** Error:   "+mess)
	if c.nerrs > MaxErrors {
		c.dispatch(SeveritySevere, CodeTooMany, "??? Too many Errors! I give up...")
		c.maxErrorsReached = true
	}
}

// readerErrf emits an error that originated inside the file reader,
// appending the reader's own message to the diagnostic.
func (c *Context) readerErrf(code Code, err error, format string, args ...interface{}) {
	mess := fmt.Sprintf(format, args...)
	if err != nil {
		mess += " (" + err.Error() + ")"
	}
	c.err(code, 1, mess)
	if c.file != nil {
		c.file.ClearErrors()
	}
}

// readerStackErrf emits an error followed by the reader's accumulated
// error stack, one informational line per entry.
func (c *Context) readerStackErrf(code Code, format string, args ...interface{}) {
	mess := fmt.Sprintf(format, args...)
	stack := []string{}
	if c.file != nil {
		stack = c.file.ErrorStack()
		c.file.ClearErrors()
	}
	if len(stack) > 0 {
		mess += " (from reader error stack:)"
	}
	c.err(code, 1, mess)
	if c.maxErrorsReached {
		return
	}
	for i, line := range stack {
		if i >= 20 {
			break
		}
		if len(line) > contWidth {
			line = line[:contWidth]
		}
		c.dispatch(SeverityInfo, CodeReaderStack, contIndentStr+line)
	}
}
