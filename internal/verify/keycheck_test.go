package verify

import "testing"

func TestCheckFixedInt(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	if !ctx.checkFixedInt(pad80("NAXIS   =                    0")) {
		t.Error("properly formatted integer rejected")
	}
	if len(sink.Messages) != 0 {
		t.Errorf("unexpected diagnostics: %v", sink.Messages)
	}

	ctx, sink = newTestContext(DefaultOptions())
	if ctx.checkFixedInt(pad80("NAXIS   =          0")) {
		t.Error("misplaced integer accepted")
	}
	if codes := emittedCodes(sink); codes[CodeNotFixedFormat] == 0 {
		t.Errorf("expected fixed-format error, got %v", codes)
	}
}

func TestCheckFixedLogical(t *testing.T) {
	ctx, _ := newTestContext(DefaultOptions())
	if !ctx.checkFixedLogical(pad80("SIMPLE  =                    T")) {
		t.Error("properly formatted logical rejected")
	}

	ctx, sink := newTestContext(DefaultOptions())
	if ctx.checkFixedLogical(pad80("SIMPLE  =       T")) {
		t.Error("misplaced logical accepted")
	}
	if codes := emittedCodes(sink); codes[CodeNotFixedFormat] == 0 {
		t.Errorf("expected fixed-format error, got %v", codes)
	}

	ctx, sink = newTestContext(DefaultOptions())
	if ctx.checkFixedLogical(pad80("SIMPLE  =                    1")) {
		t.Error("non-logical value accepted")
	}
	if codes := emittedCodes(sink); codes[CodeBadLogical] == 0 {
		t.Errorf("expected bad logical error, got %v", codes)
	}
}

func TestCheckFixedString(t *testing.T) {
	ctx, _ := newTestContext(DefaultOptions())
	if !ctx.checkFixedString(pad80("XTENSION= 'BINTABLE'           / binary table")) {
		t.Error("properly formatted string rejected")
	}

	ctx, sink := newTestContext(DefaultOptions())
	if ctx.checkFixedString(pad80("XTENSION=   'BINTABLE'")) {
		t.Error("string not starting in column 11 accepted")
	}
	if codes := emittedCodes(sink); codes[CodeNotFixedFormat] == 0 {
		t.Errorf("expected fixed-format error, got %v", codes)
	}

	ctx, sink = newTestContext(DefaultOptions())
	if ctx.checkFixedString(pad80("XTENSION= 'IMG'")) {
		t.Error("string ending before column 20 accepted")
	}
	if codes := emittedCodes(sink); codes[CodeNotFixedFormat] == 0 {
		t.Errorf("expected fixed-format error, got %v", codes)
	}
}

func TestCheckIntRejectsString(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	card := ctx.parseCard(3, pad80("NAXIS   = '2       '"))
	if _, ok := ctx.checkInt(&card); ok {
		t.Error("string value accepted as integer")
	}
	if codes := emittedCodes(sink); codes[CodeWrongType] == 0 {
		t.Errorf("expected wrong-type error, got %v", codes)
	}
}

func TestCheckFloatAcceptsInteger(t *testing.T) {
	ctx, _ := newTestContext(DefaultOptions())
	card := ctx.parseCard(3, pad80("BSCALE  =                    2"))
	v, ok := ctx.checkFloat(&card)
	if !ok || v != 2 {
		t.Errorf("integer not accepted as float: %v %v", v, ok)
	}
}

func TestParseFitsFloatFortranExponent(t *testing.T) {
	if v := parseFitsFloat("1.5D2"); v != 150 {
		t.Errorf("expected 150, got %v", v)
	}
	if v := parseFitsFloat("  -2.5E-1 "); v != -0.25 {
		t.Errorf("expected -0.25, got %v", v)
	}
}
