package segment

import (
	"slices"
	"testing"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{CodePoint, "codepoint"},
		{Grapheme, "grapheme"},
		{Mode(7), "mode(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"codepoint", CodePoint, false},
		{"CodePoint", CodePoint, false},
		{"char", CodePoint, false},
		{"", CodePoint, false},
		{"grapheme", Grapheme, false},
		{" GRAPHEME ", Grapheme, false},
		{"word", CodePoint, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunes(t *testing.T) {
	got := Runes("caf\u00e9")
	want := []rune{'c', 'a', 'f', '\u00e9'}
	if !slices.Equal(got, want) {
		t.Errorf("Runes() = %q, want %q", got, want)
	}

	if got := Runes(""); len(got) != 0 {
		t.Errorf("Runes(\"\") length = %d, want 0", len(got))
	}
}

func TestRunes_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"different stray bytes", "\xff", "\xfe", false},
		{"stray byte vs replacement char", "\xff", "\ufffd", false},
		{"same stray byte", "a\xffb", "a\xffb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, rb := Runes(tt.a), Runes(tt.b)
			if got := slices.Equal(ra, rb); got != tt.equal {
				t.Errorf("Runes(%q) = %v, Runes(%q) = %v, equal = %v, want %v", tt.a, ra, tt.b, rb, got, tt.equal)
			}
		})
	}

	got := Runes("a\xffb\u00e9")
	if len(got) != 4 || got[0] != 'a' || got[2] != 'b' || got[3] != '\u00e9' {
		t.Errorf("Runes() = %v, want valid runes kept around the stray byte", got)
	}
	if got[1] >= 0 {
		t.Errorf("stray byte unit = %d, want a value outside the code point range", got[1])
	}
	if n := Len("a\xffb\u00e9", CodePoint); n != len(got) {
		t.Errorf("Len() = %d, want %d", n, len(got))
	}
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "ascii",
			input: "abc",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "combining mark joins base letter",
			input: "e\u0301x",
			want:  []string{"e\u0301", "x"},
		},
		{
			name:  "zwj family is one cluster",
			input: "\U0001F469\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466!",
			want:  []string{"\U0001F469\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466", "!"},
		},
		{
			name:  "regional indicator pairs",
			input: "\U0001F1E9\U0001F1EA\U0001F1EB\U0001F1F7",
			want:  []string{"\U0001F1E9\U0001F1EA", "\U0001F1EB\U0001F1F7"},
		},
		{
			name:  "crlf is one cluster",
			input: "a\r\nb",
			want:  []string{"a", "\r\n", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Graphemes(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Graphemes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGraphemes_NoNormalization(t *testing.T) {
	precomposed := Graphemes("\u00e4")
	decomposed := Graphemes("a\u0308")

	if len(precomposed) != 1 || len(decomposed) != 1 {
		t.Fatalf("expected one cluster each, got %d and %d", len(precomposed), len(decomposed))
	}
	if precomposed[0] == decomposed[0] {
		t.Error("canonically equivalent clusters should stay distinct without normalization")
	}
}

func TestSegment(t *testing.T) {
	text := "e\u0301!"

	cp := Segment(text, CodePoint)
	if want := []string{"e", "\u0301", "!"}; !slices.Equal(cp, want) {
		t.Errorf("Segment(codepoint) = %q, want %q", cp, want)
	}

	gr := Segment(text, Grapheme)
	if want := []string{"e\u0301", "!"}; !slices.Equal(gr, want) {
		t.Errorf("Segment(grapheme) = %q, want %q", gr, want)
	}

	if got := Segment("a\xff", CodePoint); !slices.Equal(got, []string{"a", "\xff"}) {
		t.Errorf("Segment(codepoint) with stray byte = %q, want raw byte kept", got)
	}

	if got := Segment("", CodePoint); got != nil {
		t.Errorf("Segment(\"\") = %q, want nil", got)
	}
}

func TestSegment_Deterministic(t *testing.T) {
	text := "\u0905\u0928\u0941\u091a\u094d\u091b\u0947\u0926 \U0001F469\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466"
	for _, mode := range []Mode{CodePoint, Grapheme} {
		first := Segment(text, mode)
		for i := 0; i < 5; i++ {
			if again := Segment(text, mode); !slices.Equal(first, again) {
				t.Fatalf("Segment(%v) not deterministic: %q vs %q", mode, first, again)
			}
		}
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		input string
		mode  Mode
		want  int
	}{
		{"", CodePoint, 0},
		{"", Grapheme, 0},
		{"kitten", CodePoint, 6},
		{"kitten", Grapheme, 6},
		{"e\u0301", CodePoint, 2},
		{"e\u0301", Grapheme, 1},
		{"\u0905\u0928\u0941\u091a\u094d\u091b\u0947\u0926", CodePoint, 8},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.input, func(t *testing.T) {
			if got := Len(tt.input, tt.mode); got != tt.want {
				t.Errorf("Len(%q, %v) = %d, want %d", tt.input, tt.mode, got, tt.want)
			}
			if got := len(Segment(tt.input, tt.mode)); got != tt.want {
				t.Errorf("len(Segment(%q, %v)) = %d, want %d", tt.input, tt.mode, got, tt.want)
			}
		})
	}
}
