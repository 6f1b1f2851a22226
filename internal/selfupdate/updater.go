package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// binaryName is the executable inside release archives.
const binaryName = "factz"

type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress reports one step of Update: check, download, verify,
// extract, apply, done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release archive for this platform, verifies it
// against checksums.txt and replaces the running executable. An empty
// TargetVersion means the latest release.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	report := func(stage, format string, args ...any) {
		progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
	}

	tag := input.TargetVersion
	if tag == "" {
		report("check", "Checking for latest version...")
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = result.LatestVersion
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report("download", "Downloading %s...", tag)
	archive, err := c.downloadFile(ctx, c.releaseURL(tag, asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report("verify", "Verifying checksum...")
	sums, err := c.downloadFile(ctx, c.releaseURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("%w: no entry for %s in checksums.txt", ErrChecksum, asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report("extract", "Extracting binary...")
	binary, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report("apply", "Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(binary)
	if err := applyUpdate(binary, target, sum[:]); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report("done", "Updated to %s", tag)
	return nil
}

func (c *Checker) releaseURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

// releaseArch maps GOARCH to the goreleaser archive suffix.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetNameFor follows the goreleaser naming of factz archives. macOS
// ships a single universal binary.
func assetNameFor(goos, goarch string) (string, error) {
	var osName, ext string
	switch goos {
	case "darwin":
		return binaryName + "_Darwin_all.tar.gz", nil
	case "linux":
		osName, ext = "Linux", "tar.gz"
	case "windows":
		osName, ext = "Windows", "zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}

	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return fmt.Sprintf("%s_%s_%s.%s", binaryName, osName, arch, ext), nil
}

func (c *Checker) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads sha256sum output: "<hex>  <file>" per line.
func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		if parts := strings.Fields(line); len(parts) == 2 {
			result[parts[1]] = parts[0]
		}
	}
	return result
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

func extractBinary(archive []byte, asset string) ([]byte, error) {
	var (
		data []byte
		err  error
		name = binaryName
	)
	if strings.HasSuffix(asset, ".zip") {
		name += ".exe"
		data, err = readZipEntry(archive, name)
	} else {
		data, err = readTarGzEntry(archive, name)
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("binary %q not found in archive", name)
	}
	return data, nil
}

// readTarGzEntry returns the regular file whose base name is name, or nil.
func readTarGzEntry(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil, nil
		case err != nil:
			return nil, fmt.Errorf("read tar: %w", err)
		case hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name:
			return io.ReadAll(tr)
		}
	}
}

// readZipEntry returns the file whose base name is name, or nil.
func readZipEntry(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// applyUpdate writes the new binary next to target, re-verifies it and
// renames it into place, keeping the original file mode.
func applyUpdate(binary []byte, target string, wantHash []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmpDir, err := os.MkdirTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	staged := filepath.Join(tmpDir, binaryName+"-new")
	if err := os.WriteFile(staged, binary, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	written, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if sum := sha256.Sum256(written); !bytes.Equal(sum[:], wantHash) {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if err := os.Chmod(target, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return nil
}
