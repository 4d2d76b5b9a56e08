package utils

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"b_products.xlsx",
		"a_products.xlsx",
		"~$a_products.xlsx",
		"UPPER.XLSX",
		"notes.txt",
		"products_import.csv",
	)
	if err := os.Mkdir(filepath.Join(dir, "archive.xlsx"), 0755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, sub, "deep.xlsx")

	fm := NewFileManager(dir, "*.xlsx", "products_import.csv")
	got, err := fm.DiscoverInputFiles()
	if err != nil {
		t.Fatalf("DiscoverInputFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a_products.xlsx"),
		filepath.Join(dir, "b_products.xlsx"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverInputFiles() = %v, want %v", got, want)
	}
}

func TestSelectInputFile(t *testing.T) {
	t.Run("picks first by name", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "2024-02.xlsx", "2024-01.xlsx")

		path, n, err := NewFileManager(dir, "*.xlsx", "out.csv").SelectInputFile()
		if err != nil {
			t.Fatalf("SelectInputFile() error = %v", err)
		}
		if filepath.Base(path) != "2024-01.xlsx" {
			t.Errorf("selected %s, want 2024-01.xlsx", path)
		}
		if n != 2 {
			t.Errorf("candidates = %d, want 2", n)
		}
	})

	t.Run("no input", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "readme.md")

		_, _, err := NewFileManager(dir, "*.xlsx", "out.csv").SelectInputFile()
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, _, err := NewFileManager(filepath.Join(t.TempDir(), "gone"), "*.xlsx", "out.csv").SelectInputFile()
		if err == nil || errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want a scan error", err)
		}
	})
}

func TestOutputPathAndExists(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(dir, "*.xlsx", "products_import.csv")

	if FileExists(fm.OutputPath()) {
		t.Fatal("output reported as existing before it was written")
	}
	touch(t, dir, "products_import.csv")
	if !FileExists(fm.OutputPath()) {
		t.Error("output not found after it was written")
	}
}
