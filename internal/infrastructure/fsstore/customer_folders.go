// Package fsstore browses the customer document directory. Folders follow
// the operator's own convention, "001 NANDU SINGH_123456789012": a running
// number, the customer's name and the 12-digit Aadhaar number.
package fsstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/minatoent/backoffice-api/internal/application/extraction"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

const suggestionCap = 10

var reFolderName = regexp.MustCompile(`^(\d{3})\s+(.+)_(\d{12})$`)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// Compile-time check against the browser port.
var _ extraction.FolderBrowser = (*CustomerFolders)(nil)

// CustomerFolders scans one flat directory of customer folders. The directory
// is rescanned on every call; it is small and the operator adds folders while
// the service runs.
type CustomerFolders struct {
	root string
	log  *logger.Logger
}

func NewCustomerFolders(root string, log *logger.Logger) *CustomerFolders {
	return &CustomerFolders{root: root, log: log}
}

// Suggest lists folders whose customer name starts with the query,
// case-insensitive, sorted by name and capped at 10. Queries under two
// characters return nothing rather than the whole directory.
func (c *CustomerFolders) Suggest(query string) ([]extraction.CustomerFolder, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 2 {
		return nil, nil
	}

	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fsstore: read %s: %w", c.root, err)
	}

	var out []extraction.CustomerFolder
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := reFolderName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[2])
		if !strings.HasPrefix(strings.ToLower(name), q) {
			continue
		}
		out = append(out, extraction.CustomerFolder{
			FolderName:    e.Name(),
			FullPath:      filepath.Join(c.root, e.Name()),
			PersonName:    name,
			AadhaarNumber: m[3],
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PersonName < out[j].PersonName })
	if len(out) > suggestionCap {
		out = out[:suggestionCap]
	}
	return out, nil
}

// CardImages finds the front and back card images inside the folder, matched
// by "front"/"back" in the filename. The folder must live under the customer
// data root; anything else is rejected.
func (c *CustomerFolders) CardImages(folderPath string) (extraction.CardImages, error) {
	var images extraction.CardImages

	abs, err := filepath.Abs(folderPath)
	if err != nil {
		return images, fmt.Errorf("%w: bad folder path", domain.ErrInvalidInput)
	}
	root, err := filepath.Abs(c.root)
	if err != nil {
		return images, fmt.Errorf("fsstore: resolve root: %w", err)
	}
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return images, fmt.Errorf("%w: folder outside the customer data directory", domain.ErrInvalidInput)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return images, fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderPath)
		}
		return images, fmt.Errorf("fsstore: read %s: %w", abs, err)
	}

	var fallback string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !imageExts[filepath.Ext(name)] {
			continue
		}
		full := filepath.Join(abs, e.Name())
		switch {
		case strings.Contains(name, "front") && images.Front == "":
			images.Front = full
		case strings.Contains(name, "back") && images.Back == "":
			images.Back = full
		case strings.Contains(name, "uid") || strings.Contains(name, "aadhaar"):
			if fallback == "" {
				fallback = full
			}
		}
	}
	// Some folders hold a single combined card scan instead of named sides;
	// treat it as the front so extraction still gets one shot.
	if images.Front == "" && images.Back == "" {
		images.Front = fallback
	}

	c.log.Debug().
		Str("folder", abs).
		Bool("front", images.Front != "").
		Bool("back", images.Back != "").
		Msg("card images located")
	return images, nil
}
