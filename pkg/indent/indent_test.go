package indent

import "bytes"

import "testing"

var tests = []struct {
	prefix, in, out string
}{
	{"", "", ""},
	{"--", "", ""},
	{"", "x\nx", "x\nx"},
	{"--", "x", "--x"},
	{"--", "\n", "--\n"},
	{"--", "\n\n", "--\n--\n"},
	{"--", "x\n", "--x\n"},
	{"--", "\nx", "--\n--x"},
	{"--", "two\nlines\n", "--two\n--lines\n"},
	{"--", "\nempty\nfirst\n", "--\n--empty\n--first\n"},
	{"--", "empty\nlast\n\n", "--empty\n--last\n--\n"},
	{"--", "empty\n\nmiddle\n", "--empty\n--\n--middle\n"},
}

func TestIndent(t *testing.T) {
	for x, tt := range tests {
		if out := String(tt.prefix, tt.in); out != tt.out {
			t.Errorf("#%d: String got %q, want %q", x, out, tt.out)
		}
		if bout := string(Bytes([]byte(tt.prefix), []byte(tt.in))); bout != tt.out {
			t.Errorf("#%d: Bytes got %q, want %q", x, bout, tt.out)
		}
	}
}

func TestWriter(t *testing.T) {
Test:
	for x, tt := range tests {
		for size := 1; size < 64; size <<= 1 {
			var b bytes.Buffer
			w := NewWriter(&b, tt.prefix)
			data := []byte(tt.in)
			for len(data) > size {
				if _, err := w.Write(data[:size]); err != nil {
					t.Errorf("#%d: %v", x, err)
					continue Test
				}
				data = data[size:]
			}
			if _, err := w.Write(data); err != nil {
				t.Errorf("#%d/%d: %v", x, size, err)
				continue Test
			}
			if out := b.String(); out != tt.out {
				t.Errorf("#%d/%d: got %q, want %q", x, size, out, tt.out)
			}
		}
	}
}

func TestWrittenSize(t *testing.T) {
	for x, tt := range tests {
		var b bytes.Buffer
		w := NewWriter(&b, tt.prefix)
		data := []byte(tt.in)
		if n, _ := w.Write(data); n != len(data) {
			t.Errorf("#%d: got %d, want %d", x, n, len(data))
		}
	}
}
