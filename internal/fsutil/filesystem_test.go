package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_ReadDir(t *testing.T) {
	fs := OSFileSystem{}
	dir := t.TempDir()

	if err := os.Mkdir(filepath.Join(dir, "run_b"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "run_a"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := fs.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	want := []string{"notes.txt", "run_a", "run_b"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], e.Name())
		}
	}
}

func TestOSFileSystem_CreateAndOpen(t *testing.T) {
	fs := OSFileSystem{}
	path := filepath.Join(t.TempDir(), "plot.png")

	w, err := fs.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("png bytes")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := fs.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("expected %q, got %q", "png bytes", data)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	testData := []byte("Time,Channel A,Channel B\n")
	if err := mfs.WriteFile("/data/run/run_01.csv", testData, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := mfs.ReadFile("/data/run/run_01.csv")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestMemoryFileSystem_CreateAndOpen(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/summary.txt")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	w.Write([]byte("Maxima:"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := mfs.Open("/out/summary.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, _ := io.ReadAll(f)
	if string(data) != "Maxima:" {
		t.Errorf("expected %q, got %q", "Maxima:", data)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "summary.txt" || info.Size() != 7 {
		t.Errorf("unexpected file info: name=%q size=%d", info.Name(), info.Size())
	}
}

func TestMemoryFileSystem_OpenNonExistent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Open("/missing_01.csv")
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/exp/300K/300K_01.csv", []byte("a"), 0644)
	mfs.WriteFile("/exp/300K/300K_02.csv", []byte("b"), 0644)
	mfs.WriteFile("/exp/250K/250K_01.csv", []byte("c"), 0644)
	mfs.WriteFile("/exp/readme.txt", []byte("d"), 0644)
	mfs.MkdirAll("/exp/empty", 0755)

	entries, err := mfs.ReadDir("/exp")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	want := []struct {
		name  string
		isDir bool
	}{
		{"250K", true},
		{"300K", true},
		{"empty", true},
		{"readme.txt", false},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Name() != want[i].name || e.IsDir() != want[i].isDir {
			t.Errorf("entry %d: expected %s (dir=%v), got %s (dir=%v)",
				i, want[i].name, want[i].isDir, e.Name(), e.IsDir())
		}
	}

	files, err := mfs.ReadDir("/exp/300K")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(files) != 2 || files[0].Name() != "300K_01.csv" {
		t.Errorf("unexpected run listing: %v", files)
	}
}

func TestMemoryFileSystem_ReadDirNonExistent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.ReadDir("/nope"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMemoryFileSystem_StatDir(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.MkdirAll("/a/b/c", 0755)

	for _, dir := range []string{"/a", "/a/b", "/a/b/c"} {
		info, err := mfs.Stat(dir)
		if err != nil {
			t.Fatalf("Stat(%s) failed: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestMemoryFileSystem_PathCleaning(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/data//run/./run_01.csv", []byte("x"), 0644)

	if !mfs.Exists("/data/run/run_01.csv") {
		t.Error("expected cleaned path to exist")
	}
	if !mfs.Exists("/data/run") {
		t.Error("expected parent directory to exist")
	}
}

func TestMemoryFileSystem_DataIsolation(t *testing.T) {
	mfs := NewMemoryFileSystem()
	original := []byte("original")
	mfs.WriteFile("/f", original, 0644)
	original[0] = 'X'

	data, _ := mfs.ReadFile("/f")
	if string(data) != "original" {
		t.Errorf("stored data was mutated through caller slice: %q", data)
	}
}
