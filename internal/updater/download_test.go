package updater

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestAssetName(t *testing.T) {
	name := AssetName()
	if !strings.Contains(name, runtime.GOOS) || !strings.Contains(name, runtime.GOARCH) {
		t.Errorf("AssetName() = %q, missing GOOS/GOARCH", name)
	}
	if runtime.GOOS == "windows" {
		if !strings.HasSuffix(name, ".zip") {
			t.Errorf("expected .zip suffix on Windows, got %q", name)
		}
	} else if !strings.HasSuffix(name, ".tar.gz") {
		t.Errorf("expected .tar.gz suffix, got %q", name)
	}
}

func TestSelectAsset(t *testing.T) {
	expected := AssetName()
	assets := []Asset{
		{Name: "modforge_linux_amd64.tar.gz"},
		{Name: "modforge_darwin_arm64.tar.gz"},
		{Name: "modforge_darwin_amd64.tar.gz"},
		{Name: "modforge_windows_amd64.zip"},
		{Name: "modforge_linux_arm64.tar.gz"},
		{Name: "checksums.txt"},
	}

	asset, err := SelectAsset(assets)
	if err != nil {
		t.Fatalf("SelectAsset failed: %v", err)
	}
	if asset.Name != expected {
		t.Errorf("selected %q, expected %q", asset.Name, expected)
	}
}

func TestSelectAsset_NoMatch(t *testing.T) {
	if _, err := SelectAsset([]Asset{{Name: "modforge_plan9_mips.tar.gz"}}); err == nil {
		t.Error("expected error for no matching asset")
	}
}

func TestSelectAsset_FlexibleMatch(t *testing.T) {
	ext := ".tar.gz"
	if runtime.GOOS == "windows" {
		ext = ".zip"
	}
	name := "modforge_v1.0.0_" + runtime.GOOS + "_" + runtime.GOARCH + ext

	asset, err := SelectAsset([]Asset{{Name: name}})
	if err != nil {
		t.Fatalf("SelectAsset flexible match failed: %v", err)
	}
	if asset.Name != name {
		t.Errorf("selected %q, expected %q", asset.Name, name)
	}
}

// makeTarGz builds a tar.gz archive holding a single file.
func makeTarGz(t *testing.T, path, entryName string, content []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{Name: entryName, Mode: 0755, Size: int64(len(content))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractBinary_TarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "modforge_linux_amd64.tar.gz")
	makeTarGz(t, archive, "modforge", []byte("#!/bin/sh\necho modforge\n"))

	binPath, err := ExtractBinary(archive, dir)
	if err != nil {
		t.Fatalf("ExtractBinary failed: %v", err)
	}
	if filepath.Base(binPath) != "modforge" {
		t.Errorf("extracted binary = %q", binPath)
	}
	data, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "echo modforge") {
		t.Error("extracted binary content mismatch")
	}
}

func TestExtractBinary_Zip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "modforge_windows_amd64.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("modforge.exe")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("binary")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archive, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	binPath, err := ExtractBinary(archive, dir)
	if err != nil {
		t.Fatalf("ExtractBinary failed: %v", err)
	}
	if filepath.Base(binPath) != "modforge.exe" {
		t.Errorf("extracted binary = %q", binPath)
	}
}

func TestExtractBinary_NotFound(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "other.tar.gz")
	makeTarGz(t, archive, "README.md", []byte("docs"))

	if _, err := ExtractBinary(archive, dir); err == nil {
		t.Error("expected error when binary missing from archive")
	}
}

func TestVerifyChecksum(t *testing.T) {
	dir := t.TempDir()
	archiveName := "modforge_linux_amd64.tar.gz"
	archivePath := filepath.Join(dir, archiveName)
	content := []byte("archive bytes")
	if err := os.WriteFile(archivePath, content, 0644); err != nil {
		t.Fatal(err)
	}

	sum := sha256.Sum256(content)
	checksums := fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), archiveName)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, checksums)
	}))
	defer srv.Close()

	release := &Release{Assets: []Asset{{Name: "checksums.txt", DownloadURL: srv.URL + "/checksums.txt"}}}
	u := New("1.0.0", WithHTTPClient(srv.Client()))
	if err := u.VerifyChecksum(release, archivePath); err != nil {
		t.Fatalf("VerifyChecksum failed: %v", err)
	}

	// Corrupt the archive; verification must fail.
	if err := os.WriteFile(archivePath, []byte("tampered"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := u.VerifyChecksum(release, archivePath); err == nil {
		t.Error("expected checksum mismatch for tampered archive")
	}
}

func TestDownloadAsset(t *testing.T) {
	payload := []byte("release asset payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	release := &Release{Assets: []Asset{{Name: AssetName(), DownloadURL: srv.URL + "/" + AssetName()}}}
	u := New("1.0.0", WithHTTPClient(srv.Client()))

	dir := t.TempDir()
	path, err := u.DownloadAsset(release, dir)
	if err != nil {
		t.Fatalf("DownloadAsset failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("downloaded payload mismatch")
	}
}
