package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// PublicPrefix is the static-serving prefix under which persisted pet
// images are exposed.
const PublicPrefix = "/images/pets"

// Store downloads generated images and persists them into a local asset
// directory served statically by the application.
type Store struct {
	Dir        string
	httpClient *http.Client
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// SaveFromURL fetches the image at imageURL and writes it into the asset
// directory under filename, returning the public path for the saved file.
func (s *Store) SaveFromURL(imageURL, filename string) (string, error) {
	resp, err := s.client().Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset directory: %w", err)
	}

	savePath := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(savePath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path.Join(PublicPrefix, filename), nil
}

func (s *Store) client() *http.Client {
	if s.httpClient != nil {
		return s.httpClient
	}
	return http.DefaultClient
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Filename derives a content-addressed-by-entity filename: the pet id if
// known, else the normalized name, else a timestamp.
func Filename(petID, name string) string {
	base := petID
	if base == "" && name != "" {
		base = unsafeChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
		base = strings.Trim(base, "-")
	}
	if base == "" {
		base = fmt.Sprintf("pet-%d", time.Now().UnixMilli())
	}
	return base + ".png"
}
