package fits

import "testing"

func TestParseBinaryTForm(t *testing.T) {
	tests := []struct {
		form     string
		typeChar byte
		repeat   int64
		width    int64
		variable bool
		descChar byte
		maxLen   int64
	}{
		{form: "1J", typeChar: 'J', repeat: 1, width: 4, maxLen: -1},
		{form: "8A", typeChar: 'A', repeat: 8, width: 8, maxLen: -1},
		{form: "E", typeChar: 'E', repeat: 1, width: 4, maxLen: -1},
		{form: "3K", typeChar: 'K', repeat: 3, width: 24, maxLen: -1},
		{form: "2M", typeChar: 'M', repeat: 2, width: 32, maxLen: -1},
		{form: "13X", typeChar: 'X', repeat: 13, width: 2, maxLen: -1},
		{form: "1PE(4)", typeChar: 'E', repeat: 1, width: 8, variable: true, descChar: 'P', maxLen: 4},
		{form: "1QD(8)", typeChar: 'D', repeat: 1, width: 16, variable: true, descChar: 'Q', maxLen: 8},
		{form: "2QD", typeChar: 'D', repeat: 2, width: 32, variable: true, descChar: 'Q', maxLen: -1},
		{form: "12", typeChar: 0, maxLen: -1},
	}
	for _, tt := range tests {
		c := Column{TForm: tt.form, MaxLen: -1, Decimals: -1}
		parseBinaryTForm(&c)
		if c.TypeChar != tt.typeChar {
			t.Errorf("%q: TypeChar = %q, want %q", tt.form, c.TypeChar, tt.typeChar)
			continue
		}
		if tt.typeChar == 0 {
			continue
		}
		if c.Repeat != tt.repeat {
			t.Errorf("%q: Repeat = %d, want %d", tt.form, c.Repeat, tt.repeat)
		}
		if c.Width != tt.width {
			t.Errorf("%q: Width = %d, want %d", tt.form, c.Width, tt.width)
		}
		if c.Variable != tt.variable || c.DescChar != tt.descChar {
			t.Errorf("%q: Variable = %v DescChar = %q", tt.form, c.Variable, c.DescChar)
		}
		if c.MaxLen != tt.maxLen {
			t.Errorf("%q: MaxLen = %d, want %d", tt.form, c.MaxLen, tt.maxLen)
		}
	}
}

func TestParseAsciiTForm(t *testing.T) {
	tests := []struct {
		form     string
		typeChar byte
		wide     int64
		decimals int64
	}{
		{form: "A8", typeChar: 'A', wide: 8, decimals: -1},
		{form: "I10", typeChar: 'I', wide: 10, decimals: -1},
		{form: "F12.5", typeChar: 'F', wide: 12, decimals: 5},
		{form: "E15.7", typeChar: 'E', wide: 15, decimals: 7},
		{form: "D25.16", typeChar: 'D', wide: 25, decimals: 16},
		{form: "Z10", typeChar: 0},
		{form: "A0", typeChar: 0},
	}
	for _, tt := range tests {
		c := Column{TForm: tt.form, MaxLen: -1, Decimals: -1}
		parseAsciiTForm(&c)
		if c.TypeChar != tt.typeChar {
			t.Errorf("%q: TypeChar = %q, want %q", tt.form, c.TypeChar, tt.typeChar)
			continue
		}
		if tt.typeChar == 0 {
			continue
		}
		if c.FieldWide != tt.wide {
			t.Errorf("%q: FieldWide = %d, want %d", tt.form, c.FieldWide, tt.wide)
		}
		if c.Decimals != tt.decimals {
			t.Errorf("%q: Decimals = %d, want %d", tt.form, c.Decimals, tt.decimals)
		}
		if c.Width != tt.wide {
			t.Errorf("%q: Width = %d, want %d", tt.form, c.Width, tt.wide)
		}
	}
}

func TestBuildColumnsBinaryOffsets(t *testing.T) {
	hdu := &HDU{Type: BinTable, Tfields: 3}
	buildColumns(hdu,
		map[int64]string{1: "1J", 2: "8A", 3: "1PE(4)"},
		map[int64]string{1: "COUNT", 2: "NAME", 3: "SPECTRUM"},
		nil)

	if len(hdu.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(hdu.Columns))
	}
	wantOffsets := []int64{0, 4, 12}
	for i, want := range wantOffsets {
		if hdu.Columns[i].Offset != want {
			t.Errorf("column %d offset = %d, want %d", i+1, hdu.Columns[i].Offset, want)
		}
	}
	if hdu.Columns[0].Name != "COUNT" {
		t.Errorf("column 1 name = %q", hdu.Columns[0].Name)
	}
}

func TestBuildColumnsAscii(t *testing.T) {
	hdu := &HDU{Type: AsciiTable, Tfields: 2}
	buildColumns(hdu,
		map[int64]string{1: "A8", 2: "F12.5"},
		map[int64]string{1: "NAME", 2: "FLUX"},
		map[int64]int64{1: 1, 2: 10})

	if hdu.Columns[0].TBCol != 1 || hdu.Columns[1].TBCol != 10 {
		t.Errorf("TBCol = %d, %d", hdu.Columns[0].TBCol, hdu.Columns[1].TBCol)
	}
	if !hdu.Columns[1].Floating() {
		t.Error("F column did not report floating")
	}
	if hdu.Columns[0].Floating() {
		t.Error("A column reported floating")
	}
}

func TestVarElementWidth(t *testing.T) {
	if w := VarElementWidth('X'); w != -1 {
		t.Errorf("X width = %d, want -1", w)
	}
	if w := VarElementWidth('E'); w != 4 {
		t.Errorf("E width = %d, want 4", w)
	}
	if w := VarElementWidth('D'); w != 8 {
		t.Errorf("D width = %d, want 8", w)
	}
	if w := VarElementWidth('?'); w != 1 {
		t.Errorf("unknown width = %d, want 1", w)
	}
}
