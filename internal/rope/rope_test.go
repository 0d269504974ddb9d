package rope

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
	if r.LineCount() != 1 {
		t.Errorf("New rope should have 1 line, got %d", r.LineCount())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"very long string", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != ByteOffset(len(tt.input)) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if r.CharLen() != CharIndex(CountChars(tt.input)) {
				t.Errorf("CharLen() = %d, want %d", r.CharLen(), CountChars(tt.input))
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   CharIndex
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty string", "hello", 3, "", "hello"},
		{"insert unicode", "hello", 5, " 世界", "hello 世界"},
		{"insert at unicode boundary", "世界", 1, "!", "世!界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r = r.Insert(tt.offset, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    CharIndex
		end      CharIndex
		expected string
	}{
		{"delete from start", "hello world", 0, 6, "world"},
		{"delete from end", "hello world", 5, 11, "hello"},
		{"delete from middle", "hello world", 5, 6, "helloworld"},
		{"delete all", "hello", 0, 5, ""},
		{"delete nothing", "hello", 3, 3, "hello"},
		{"delete beyond end", "hello", 0, 100, ""},
		{"delete unicode", "世界hello", 0, 2, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r = r.Delete(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    CharIndex
		end      CharIndex
		text     string
		expected string
	}{
		{"replace word", "hello world", 6, 11, "universe", "hello universe"},
		{"replace with shorter", "hello world", 0, 5, "hi", "hi world"},
		{"replace with longer", "hi world", 0, 2, "hello", "hello world"},
		{"replace all", "hello", 0, 5, "world", "world"},
		{"replace as pure insert", "hello", 5, 5, " world", "hello world"},
		{"replace as pure delete", "hello world", 5, 11, "", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r = r.Replace(tt.start, tt.end, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSliceAndConcat(t *testing.T) {
	r := FromString("hello world")
	if got := r.Slice(0, 5); got != "hello" {
		t.Errorf("Slice(0,5) = %q, want %q", got, "hello")
	}
	if got := r.Slice(6, 11); got != "world" {
		t.Errorf("Slice(6,11) = %q, want %q", got, "world")
	}

	left, right := r.Split(r.Len() / 2)
	joined := left.Concat(right)
	if !joined.Equals(r) {
		t.Errorf("split+concat roundtrip failed: got %q, want %q", joined.String(), r.String())
	}
}

func TestCharByteRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"hello\nworld\n",
		"世界 hello 🌍 world",
		strings.Repeat("line\n", 500),
	}

	for _, input := range inputs {
		r := FromString(input)
		for i := 0; i <= int(r.CharLen()); i++ {
			b, ok := r.CharToByte(CharIndex(i))
			if !ok {
				t.Fatalf("input %q: CharToByte(%d) not ok", input, i)
			}
			c, ok := r.ByteToChar(b)
			if !ok || c != CharIndex(i) {
				t.Fatalf("input %q: roundtrip CharToByte(%d)=%d then ByteToChar = %d, ok=%v", input, i, b, c, ok)
			}
		}
	}
}

func TestLineOperations(t *testing.T) {
	r := FromString("line0\nline1\nline2\n")

	if got := r.LineCount(); got != 4 {
		t.Errorf("LineCount() = %d, want 4", got)
	}
	if got := r.LineText(0); got != "line0" {
		t.Errorf("LineText(0) = %q, want %q", got, "line0")
	}
	if got := r.LineText(2); got != "line2" {
		t.Errorf("LineText(2) = %q, want %q", got, "line2")
	}
	if got := r.LineText(3); got != "" {
		t.Errorf("LineText(3) = %q, want empty (trailing synthetic line)", got)
	}
	if !r.EndsWithNewline() {
		t.Error("EndsWithNewline() = false, want true")
	}
}

func TestCharToPointRoundTrip(t *testing.T) {
	r := FromString("abc\nde\nfghi\n")
	for i := CharIndex(0); i <= r.CharLen(); i++ {
		p := r.CharToPoint(i)
		back := r.PointToChar(p)
		if back != i {
			t.Errorf("CharToPoint(%d)=%+v then PointToChar = %d, want %d", i, p, back, i)
		}
	}
}

func TestLargeDocumentBalance(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 2000)
	r := FromString(text)
	if r.String() != text {
		t.Fatal("large document text mismatch")
	}
	if r.Height() < 2 {
		t.Errorf("expected a balanced multi-level tree for large input, height = %d", r.Height())
	}
}
