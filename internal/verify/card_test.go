package verify

import (
	"strings"
	"testing"
)

func newTestContext(opts Options) (*Context, *CollectSink) {
	sink := &CollectSink{}
	return NewContext(opts, sink), sink
}

func emittedCodes(sink *CollectSink) map[Code]int {
	codes := make(map[Code]int)
	for _, m := range sink.Messages {
		codes[m.Code]++
	}
	return codes
}

func pad80(s string) string {
	if len(s) >= 80 {
		return s
	}
	return s + strings.Repeat(" ", 80-len(s))
}

func TestParseCardValues(t *testing.T) {
	tests := []struct {
		name      string
		image     string
		wantType  KeyType
		wantValue string
		wantCodes []Code
	}{
		{
			name:      "quoted string",
			image:     "OBJECT  = 'NGC 253 '           / observed object",
			wantType:  TypeString,
			wantValue: "NGC 253",
		},
		{
			name:      "escaped quote",
			image:     "OBJECT  = 'O''NEIL'",
			wantType:  TypeString,
			wantValue: "O'NEIL",
		},
		{
			name:      "unclosed string",
			image:     "OBJECT  = 'unterminated",
			wantType:  TypeString,
			wantCodes: []Code{CodeMissingQuote},
		},
		{
			name:      "logical",
			image:     "SIMPLE  =                    T",
			wantType:  TypeLogical,
			wantValue: "T",
		},
		{
			name:      "logical with trailing junk",
			image:     "SIMPLE  = TRUE",
			wantType:  TypeLogical,
			wantValue: "T",
			wantCodes: []Code{CodeBadLogical},
		},
		{
			name:      "logical junk after spaces",
			image:     "EXTEND  = T yes",
			wantType:  TypeLogical,
			wantValue: "T",
			wantCodes: []Code{CodeBadLogical},
		},
		{
			name:      "logical with comment",
			image:     "EXTEND  = F / no extensions",
			wantType:  TypeLogical,
			wantValue: "F",
		},
		{
			name:      "integer",
			image:     "NAXIS   =                    2 / axes",
			wantType:  TypeInteger,
			wantValue: "2",
		},
		{
			name:      "float",
			image:     "EXPTIME =               1500.5",
			wantType:  TypeFloat,
			wantValue: "1500.5",
		},
		{
			name:      "fortran exponent",
			image:     "BSCALE  =              1.0D-03",
			wantType:  TypeFloat,
			wantValue: "1.0D-03",
		},
		{
			name:      "lowercase exponent",
			image:     "BSCALE  =              1.0e-03",
			wantType:  TypeFloat,
			wantValue: "1.0e-03",
			wantCodes: []Code{CodeLowercaseExponent},
		},
		{
			name:      "repeated exponent",
			image:     "EXPOSURE= 1.0E5E5",
			wantType:  TypeFloat,
			wantValue: "1.0E5E5",
			wantCodes: []Code{CodeBadNumber},
		},
		{
			name:      "mixed exponent markers",
			image:     "BSCALE  = 1.0D3E2",
			wantType:  TypeFloat,
			wantValue: "1.0D3E2",
			wantCodes: []Code{CodeBadNumber},
		},
		{
			name:      "bad number",
			image:     "NAXIS   = 12X4",
			wantType:  TypeInteger,
			wantValue: "12X4",
			wantCodes: []Code{CodeBadNumber},
		},
		{
			name:      "complex integer",
			image:     "CVAL    = (123,456)",
			wantType:  TypeComplexInt,
			wantValue: "(123,456)",
		},
		{
			name:      "complex float",
			image:     "CVAL    = (1.5,2)",
			wantType:  TypeComplexFloat,
			wantValue: "(1.5,2)",
		},
		{
			name:      "complex missing comma",
			image:     "CVAL    = (123456)",
			wantType:  TypeComplexInt,
			wantValue: "(123456)",
			wantCodes: []Code{CodeNoComma},
		},
		{
			name:      "complex too many commas",
			image:     "CVAL    = (1,2,3)",
			wantType:  TypeComplexInt,
			wantValue: "(1,2,3)",
			wantCodes: []Code{CodeTooManyComma, CodeBadImag},
		},
		{
			name:      "complex missing paren",
			image:     "CVAL    = (1,2",
			wantType:  TypeComplexInt,
			wantCodes: []Code{CodeNoTrailParen},
		},
		{
			name:      "complex missing comma and paren",
			image:     "CVAL    = (123456",
			wantType:  TypeComplexInt,
			wantCodes: []Code{CodeNoComma, CodeNoTrailParen},
		},
		{
			name:      "comment without slash",
			image:     "NAXIS   = 2 two axes",
			wantType:  TypeInteger,
			wantValue: "2",
			wantCodes: []Code{CodeNoStartSlash},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, sink := newTestContext(DefaultOptions())
			card := ctx.parseCard(1, pad80(tt.image))
			if card.Type != tt.wantType {
				t.Errorf("type: want %v got %v", tt.wantType, card.Type)
			}
			if tt.wantValue != "" && card.Value != tt.wantValue {
				t.Errorf("value: want %q got %q", tt.wantValue, card.Value)
			}
			codes := emittedCodes(sink)
			for _, want := range tt.wantCodes {
				if codes[want] == 0 {
					t.Errorf("missing diagnostic code %d, got %v", want, codes)
				}
			}
			if len(tt.wantCodes) == 0 && len(sink.Messages) != 0 {
				t.Errorf("unexpected diagnostics: %v", sink.Messages)
			}
		})
	}
}

func TestParseCardNameChecks(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	ctx.parseCard(1, pad80(" KEY    =                    1"))
	if codes := emittedCodes(sink); codes[CodeNameNotJustified] == 0 {
		t.Errorf("expected name justification error, got %v", codes)
	}

	ctx, sink = newTestContext(DefaultOptions())
	ctx.parseCard(1, pad80("key     =                    1"))
	if codes := emittedCodes(sink); codes[CodeIllegalNameChar] == 0 {
		t.Errorf("expected illegal name char error, got %v", codes)
	}
}

func TestParseCardCommentary(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	card := ctx.parseCard(1, pad80("COMMENT   this card carries only text"))
	if card.Type != TypeCommentary {
		t.Fatalf("expected commentary, got %v", card.Type)
	}
	if len(sink.Messages) != 0 {
		t.Errorf("unexpected diagnostics: %v", sink.Messages)
	}
}

func TestParseCardEndNotBlank(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	card := ctx.parseCard(1, pad80("END      extra"))
	if card.Type != TypeEnd {
		t.Fatalf("expected end card, got %v", card.Type)
	}
	if codes := emittedCodes(sink); codes[CodeEndNotBlank] == 0 {
		t.Errorf("expected END not blank error, got %v", codes)
	}
}

func TestParseCardTooLong(t *testing.T) {
	ctx, sink := newTestContext(DefaultOptions())
	ctx.parseCard(1, pad80("LONGCARD=                    1")+"X")
	if codes := emittedCodes(sink); codes[CodeCardTooLong] == 0 {
		t.Errorf("expected card length error, got %v", codes)
	}
}
