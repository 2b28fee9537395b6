// Package tests provides access to the public test suites used by the
// package tests: blargg's and others' test roms and Tom Harte's single step
// processor tests. They are downloaded on first use and the calling test is
// skipped when that's not possible.
package tests

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

var mu sync.Mutex

func testsDir() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Dir(b)
}

// RomsPath returns the directory containing the nes-test-roms collection.
func RomsPath(tb testing.TB) string {
	tb.Helper()
	mu.Lock()
	defer mu.Unlock()

	romsDir := filepath.Join(testsDir(), "nes-test-roms")
	if _, err := os.Stat(romsDir); errors.Is(err, fs.ErrNotExist) {
		if testing.Short() {
			tb.Skip("test roms not available in short mode")
		}
		tb.Log("nes-test-roms directory not found, downloading it...")
		if err := downloadTestRoms(testsDir()); err != nil {
			tb.Skipf("test roms not available: %s", err)
		}
		tb.Log("test roms downloaded in", romsDir)
	}
	return romsDir
}

// TomHarteProcTestsPath returns the directory containing the per-opcode
// JSON files of the nes6502 processor tests.
func TomHarteProcTestsPath(tb testing.TB) string {
	tb.Helper()
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Join(testsDir(), "tomharte.processor.tests")
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if testing.Short() {
			tb.Skip("processor tests not available in short mode")
		}
		tb.Log("processor tests not found, downloading them...")
		if err := downloadProcTests(dir); err != nil {
			tb.Skipf("processor tests not available: %s", err)
		}
	}
	return dir
}

func fetch(url string, w io.Writer) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func downloadTestRoms(dest string) error {
	const url = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`

	tmpf, err := os.CreateTemp("", "nes-test-roms-*-.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmpf.Name())
	defer tmpf.Close()

	if err := fetch(url, tmpf); err != nil {
		return err
	}
	return decompress(tmpf.Name(), dest)
}

func decompress(zipFile, dest string) error {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return err
	}
	defer r.Close()

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, f := range r.File {
		fname := strings.Replace(f.Name, "nes-test-roms-master", "nes-test-roms", 1)
		fpath := filepath.Join(dest, fname)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("%s: illegal file path", fpath)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return err
			}
			continue
		}

		g.Go(func() error { return extract(f, fpath) })
	}
	return g.Wait()
}

func extract(f *zip.File, fpath string) error {
	if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// downloadProcTests downloads the 256 JSON files (one per opcode) into dest.
func downloadProcTests(dest string) error {
	const urlfmt = `https://raw.githubusercontent.com/SingleStepTests/65x02/main/nes6502/v1/%02x.json`

	tmpdir, err := os.MkdirTemp(filepath.Dir(dest), "proctests.*")
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for opcode := range 256 {
		g.Go(func() error {
			f, err := os.Create(filepath.Join(tmpdir, fmt.Sprintf("%02x.json", opcode)))
			if err != nil {
				return err
			}
			defer f.Close()
			return fetch(fmt.Sprintf(urlfmt, opcode), f)
		})
	}

	if err := g.Wait(); err != nil {
		os.RemoveAll(tmpdir)
		return err
	}
	return os.Rename(tmpdir, dest)
}
