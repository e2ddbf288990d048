package crf

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// makeArchiveBytes builds an in-memory zip holding the given files.
func makeArchiveBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return buf.Bytes()
}

func makeArchive(t *testing.T, files map[string]string) *Archive {
	t.Helper()

	data := makeArchiveBytes(t, files)
	a, err := NewArchive(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewArchive failed: %v", err)
	}
	return a
}

func TestNewArchive_BadData(t *testing.T) {
	if _, err := NewArchive(bytes.NewReader([]byte("not a zip")), 9); err == nil {
		t.Error("expected error for non-zip data")
	}
}

func TestContains_Normalization(t *testing.T) {
	a := makeArchive(t, map[string]string{
		`OBJ\Wrench.BIN`:    "model",
		"fam/core/rock.pcx": "texture",
	})

	tests := []struct {
		name string
		want bool
	}{
		{"obj/wrench.bin", true},
		{"OBJ/WRENCH.BIN", true},
		{`obj\wrench.bin`, true},
		{"fam/core/rock.pcx", true},
		{"FAM/Core/Rock.PCX", true},
		{"obj/hammer.bin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Contains(tt.name); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	a := makeArchive(t, map[string]string{
		"obj/wrench.bin": "LGMD....",
	})

	data, err := a.Read("OBJ/Wrench.BIN")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "LGMD...." {
		t.Errorf("content = %q, want %q", data, "LGMD....")
	}
}

func TestRead_NotFound(t *testing.T) {
	a := makeArchive(t, map[string]string{"obj/a.bin": "x"})

	if _, err := a.Read("obj/missing.bin"); err == nil {
		t.Error("expected error for missing entry")
	}
}

func TestList_Sorted(t *testing.T) {
	a := makeArchive(t, map[string]string{
		"obj/b.bin":  "2",
		"obj/a.bin":  "1",
		"mesh/c.cal": "3",
	})

	want := []string{"mesh/c.cal", "obj/a.bin", "obj/b.bin"}
	got := a.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGlob(t *testing.T) {
	a := makeArchive(t, map[string]string{
		"obj/a.bin":       "1",
		"obj/B.BIN":       "2",
		"obj/txt16/t.pcx": "3",
		"motiondb.bin":    "4",
	})

	tests := []struct {
		ext  string
		want int
	}{
		{".bin", 3},
		{"bin", 3},
		{"pcx", 1},
		{"gif", 0},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := a.Glob(tt.ext); len(got) != tt.want {
				t.Errorf("Glob(%q) = %v, want %d entries", tt.ext, got, tt.want)
			}
		})
	}
}

func TestOpen_File(t *testing.T) {
	data := makeArchiveBytes(t, map[string]string{"obj/a.bin": "payload"})
	path := filepath.Join(t.TempDir(), "obj.crf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	if !a.Contains("obj/a.bin") {
		t.Error("opened archive missing its entry")
	}
	got, err := a.Read("obj/a.bin")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("content = %q, want payload", got)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.crf")); err == nil {
		t.Error("expected error for missing archive")
	}
}
