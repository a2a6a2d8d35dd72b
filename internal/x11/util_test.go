package x11

import (
	"reflect"
	"testing"
)

func TestParseURIList(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "single file",
			data: "file:///home/user/a.txt\r\n",
			want: []string{"/home/user/a.txt"},
		},
		{
			name: "multiple with comment",
			data: "# dropped by browser\r\nfile:///a\r\nfile:///b\r\n",
			want: []string{"/a", "/b"},
		},
		{
			name: "localhost authority",
			data: "file://localhost/tmp/x\r\n",
			want: []string{"/tmp/x"},
		},
		{
			name: "percent escapes",
			data: "file:///tmp/with%20space\r\n",
			want: []string{"/tmp/with space"},
		},
		{
			name: "non-file URIs dropped",
			data: "https://example.com/\r\nfile:///kept\r\n",
			want: []string{"/kept"},
		},
		{
			name: "empty",
			data: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseURIList(tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseURIList(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestLatin1ToUTF8(t *testing.T) {
	got := latin1ToUTF8([]byte{'c', 'a', 'f', 0xe9})
	if got != "café" {
		t.Fatalf("latin1ToUTF8 = %q, want %q", got, "café")
	}
	if latin1ToUTF8(nil) != "" {
		t.Fatal("latin1ToUTF8(nil) should be empty")
	}
}

func TestPut32s(t *testing.T) {
	got := put32s(1, 0x01020304)
	if len(got) != 8 {
		t.Fatalf("put32s packed %d bytes, want 8", len(got))
	}
	// Second word read back in the same byte order it was written.
	round := put32(nil, 0x01020304)
	for i, b := range round {
		if got[4+i] != b {
			t.Fatalf("put32s word mismatch at byte %d", i)
		}
	}
}
