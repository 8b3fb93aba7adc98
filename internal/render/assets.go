package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/imageutil"
)

// AssetSet holds the downscaled JPEG bytes of the static images embedded in
// every bill.
type AssetSet struct {
	Logo      []byte
	Signature []byte
}

// AssetLoader fetches the logo and signature images from their configured
// locations and downscales them before embedding. Locations may be local
// file paths or HTTP URLs.
type AssetLoader struct {
	logoPath      string
	signaturePath string
	shrink        *imageutil.ShrinkConfig
	httpClient    *http.Client
}

// NewAssetLoader creates a loader for the given asset locations.
func NewAssetLoader(logoPath, signaturePath string) *AssetLoader {
	return &AssetLoader{
		logoPath:      logoPath,
		signaturePath: signaturePath,
		shrink:        imageutil.DefaultConfig(),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Load fetches and downscales both assets. A missing or undecodable asset is
// a renderer-fatal *AssetError.
func (l *AssetLoader) Load(ctx context.Context) (*AssetSet, error) {
	logo, err := l.loadOne(ctx, l.logoPath)
	if err != nil {
		return nil, &AssetError{Name: "logo", Err: err}
	}

	signature, err := l.loadOne(ctx, l.signaturePath)
	if err != nil {
		return nil, &AssetError{Name: "signature", Err: err}
	}

	return &AssetSet{Logo: logo, Signature: signature}, nil
}

func (l *AssetLoader) loadOne(ctx context.Context, path string) ([]byte, error) {
	raw, err := l.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return imageutil.ShrinkToJPEG(raw, l.shrink)
}

func (l *AssetLoader) fetch(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(path)
}
