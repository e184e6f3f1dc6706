// Package romfile loads a cartridge ROM image from a byte slice that
// may itself be a .7z archive containing the ROM (a common
// distribution format for Game Boy dumps). It performs no filesystem
// access itself — the host reads the bytes (from disk, network,
// embedded asset, wherever) and hands them here.
package romfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/sevenzip"
)

// romExtensions lists the file extensions considered a ROM image
// inside an archive.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// Load returns the raw ROM bytes from data. If data is a valid .7z
// archive, the first entry with a recognized ROM extension is
// extracted and returned; otherwise data is assumed to already be a
// raw ROM image and is returned unchanged.
func Load(data []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// not a 7z archive (or a malformed one) - treat as a raw ROM.
		return data, nil
	}

	for _, f := range r.File {
		if !hasROMExtension(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("romfile: opening %s: %w", f.Name, err)
		}
		rom, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("romfile: reading %s: %w", f.Name, err)
		}
		return rom, nil
	}

	return nil, fmt.Errorf("romfile: archive contains no recognizable rom entry")
}

func hasROMExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range romExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
