package extract

import (
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func TestReadDelimitedDetectsTabs(t *testing.T) {
	grid, err := readDelimited([]byte("Employee ID\tDate\n1001\t09-02-2026\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("unexpected grid shape %v", grid)
	}
	if grid[1][0] != "1001" {
		t.Fatalf("unexpected cell %q", grid[1][0])
	}
}

func TestReadDelimitedUTF16(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, _, err := transform.Bytes(encoder, []byte("Employee ID,Date\n1001,09-02-2026\n"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	grid, err := readDelimited(encoded)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if grid[0][0] != "Employee ID" {
		t.Fatalf("BOM not stripped, header = %q", grid[0][0])
	}
	if grid[1][1] != "09-02-2026" {
		t.Fatalf("unexpected cell %q", grid[1][1])
	}
}
