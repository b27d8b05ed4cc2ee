package verify

import (
	"strings"
	"testing"
)

func TestErrReportFiltersSeverities(t *testing.T) {
	opts := DefaultOptions()
	opts.ErrReport = ReportErrors
	ctx, sink := newTestContext(opts)
	ctx.warnf(WarnZeroScale, "ignored warning")
	ctx.errf(CodeKeywordValue, "kept error")
	ctx.severef(CodeMissingEnd, "kept severe")
	for _, m := range sink.Messages {
		if m.Severity == SeverityWarning {
			t.Errorf("warning leaked through filter: %v", m)
		}
	}
	warnings, errors := ctx.Totals()
	if warnings != 0 {
		t.Errorf("expected 0 counted warnings, got %d", warnings)
	}
	if errors != 2 {
		t.Errorf("expected 2 counted errors, got %d", errors)
	}

	opts.ErrReport = ReportSevere
	ctx, sink = newTestContext(opts)
	ctx.errf(CodeKeywordValue, "dropped error")
	ctx.severef(CodeMissingEnd, "kept severe")
	if len(sink.Messages) != 1 || sink.Messages[0].Severity != SeveritySevere {
		t.Errorf("expected only the severe message, got %v", sink.Messages)
	}
}

func TestHeasarcWarningsSuppressed(t *testing.T) {
	opts := DefaultOptions()
	opts.HeasarcConv = false
	ctx, sink := newTestContext(opts)
	ctx.heasarcf(WarnNoColumnName, "column has no name")
	if len(sink.Messages) != 0 {
		t.Errorf("expected suppression, got %v", sink.Messages)
	}

	opts.HeasarcConv = true
	ctx, sink = newTestContext(opts)
	ctx.heasarcf(WarnNoColumnName, "column has no name")
	if len(sink.Messages) != 1 {
		t.Fatalf("expected one warning, got %d", len(sink.Messages))
	}
	if !strings.Contains(sink.Messages[0].Text, "(HEASARC Convention)") {
		t.Errorf("warning text missing convention marker: %q", sink.Messages[0].Text)
	}
}

func TestTooManyErrorsAborts(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	for i := 0; i < MaxErrors+1; i++ {
		ctx.errf(CodeKeywordValue, "error %d", i)
	}
	if !ctx.Aborted() {
		t.Fatal("context should have aborted")
	}
	codes := emittedCodes(sink)
	if codes[CodeTooMany] != 1 {
		t.Errorf("expected exactly one abort message, got %d", codes[CodeTooMany])
	}
	before := len(sink.Messages)
	ctx.errf(CodeKeywordValue, "after abort")
	ctx.warnf(WarnZeroScale, "after abort")
	if len(sink.Messages) != before {
		t.Errorf("messages emitted after abort: %v", sink.Messages[before:])
	}
}

func TestHintsAttachedWhenEnabled(t *testing.T) {
	opts := DefaultOptions()
	opts.FixHints = true
	opts.Explain = true
	ctx, sink := newTestContext(opts)
	ctx.hintFor("BITPIX")
	ctx.errf(CodeKeywordValue, "BITPIX is bad")
	if len(sink.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(sink.Messages))
	}
	m := sink.Messages[0]
	if m.FixHint == "" {
		t.Error("expected a fix hint")
	}
	if m.Explain == "" {
		t.Error("expected an explanation")
	}

	// Hints off: the same diagnostic carries neither field.
	ctx, sink = newTestContext(DefaultOptions())
	ctx.hintFor("BITPIX")
	ctx.errf(CodeKeywordValue, "BITPIX is bad")
	if sink.Messages[0].FixHint != "" || sink.Messages[0].Explain != "" {
		t.Errorf("hints attached with hints disabled: %+v", sink.Messages[0])
	}
}

func TestExplicitHintOverridesComposed(t *testing.T) {
	opts := DefaultOptions()
	opts.FixHints = true
	ctx, sink := newTestContext(opts)
	ctx.hintFix("replace the value with 8")
	ctx.errf(CodeKeywordValue, "bad value")
	if got := sink.Messages[0].FixHint; got != "replace the value with 8" {
		t.Errorf("explicit fix hint not used: %q", got)
	}
}
