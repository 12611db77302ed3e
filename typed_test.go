package membuffers

import (
	"encoding/binary"
	"testing"
)

func TestBytesOfReadsBackLittleEndianRepresentation(t *testing.T) {
	var value uint32 = 0xdeadbeef

	got := bytesOf(value, 4)
	want := make([]byte, 4)
	binary.LittleEndian.PutUint32(want, value)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bytesOf(%#x) = %v, want %v", value, got, want)
		}
	}
}
