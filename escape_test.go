package hevc

import "testing"

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", []byte{}},
		{"no zeros", []byte{1, 2, 3, 4, 5}},
		{"single escape window", []byte{0, 0, 3, 1}},
		{"leading zeros", []byte{0, 0, 0, 1}},
		{"repeated windows", []byte{0, 0, 0, 0, 1, 2, 0, 0, 3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			escaped := Escape(tt.in)
			got := Unescape(escaped)
			if string(got) != string(tt.in) {
				t.Errorf("unescape(escape(%v)) = %v, want %v", tt.in, got, tt.in)
			}
		})
	}
}

func TestEscapeIsNoopWithoutHazard(t *testing.T) {
	t.Parallel()
	in := []byte{1, 2, 3, 4, 0, 1, 2}
	got := Escape(in)
	if string(got) != string(in) {
		t.Errorf("escape(%v) = %v, want unchanged", in, got)
	}
}

func TestUnescapeLiteralExample(t *testing.T) {
	t.Parallel()
	got := Unescape([]byte{0, 0, 3, 1})
	want := []byte{0, 0, 1}
	if string(got) != string(want) {
		t.Errorf("unescape({0,0,3,1}) = %v, want %v", got, want)
	}
}
