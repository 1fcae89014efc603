package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	dir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "out.html")
	if err := os.WriteFile(stored, []byte("<p>final</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	copied := filepath.Join(dir, "in.json")
	if err := os.WriteFile(copied, []byte(`{"blocks":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("out.html", stored)
	r.StoreData("config.yaml", []byte("version: 1\n"))
	if err := r.StoreCopy("in.json", copied); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if err := r.StoreCopy("in.json", copied); err != nil {
		t.Fatalf("StoreCopy() repeated error = %v", err)
	}
	r.Store("missing", filepath.Join(dir, "missing"))

	// content at Close time is used for stored files, at call time for copies
	os.WriteFile(copied, []byte("changed"), 0644)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(r.Name())
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	var copies int
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(data)
		if strings.HasPrefix(f.Name, "in.json") {
			copies++
			if string(data) != `{"blocks":[]}` {
				t.Errorf("%s = %q", f.Name, data)
			}
		}
	}

	if files["out.html"] != "<p>final</p>" {
		t.Errorf("out.html = %q", files["out.html"])
	}
	if files["config.yaml"] != "version: 1\n" {
		t.Errorf("config.yaml = %q", files["config.yaml"])
	}
	if copies != 2 {
		t.Errorf("got %d copies of in.json, want 2", copies)
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent file was put into report")
	}
	if !strings.Contains(files["MANIFEST"], "missing") {
		t.Errorf("MANIFEST does not list all entries:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overwrite")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReport_AppendData(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.AppendData("x", []byte("1"))
	r.AppendData("x", []byte("2"))

	if len(r.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(r.entries))
	}
	if string(r.entries["x"].data) != "1" {
		t.Errorf("first entry = %q, want 1", r.entries["x"].data)
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	r.AppendData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name on nil report = %q", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
