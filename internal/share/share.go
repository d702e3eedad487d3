// Package share encodes character sheets into shareable URLs.
//
// A sheet serializes to JSON, is DEFLATE-compressed, base64url-encoded, and
// carried in the URL fragment so it never reaches a server log. Decoding
// reverses the pipeline. Length is advisory only: an oversize result is
// flagged, never rejected.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/encore-rpg/sheetsmith/internal/config"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
)

// FragmentParam is the fragment query parameter carrying the encoded sheet.
const FragmentParam = "s"

// Encoded is the result of encoding a sheet.
type Encoded struct {
	// Code is the compressed base64url payload.
	Code string
	// URL is the full shareable URL including the fragment.
	URL string
	// Oversize is set when the URL exceeds the configured warn length.
	// The URL is still usable; most browsers and chat clients truncate
	// somewhere past this point, so the caller should surface a warning.
	Oversize bool
}

// Codec encodes and decodes share URLs.
type Codec struct {
	baseURL    string
	warnLength int
}

// NewCodec builds a Codec from configuration.
func NewCodec(cfg config.ShareConfig) *Codec {
	return &Codec{baseURL: cfg.BaseURL, warnLength: cfg.WarnLength}
}

// Pack compresses a sheet into a bare base64url payload. History snapshots
// use the same encoding as share URLs.
//
// Precondition: s must be non-nil.
func Pack(s *character.State) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("share: marshaling sheet: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("share: creating compressor: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("share: compressing sheet: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("share: flushing compressor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Unpack reverses Pack.
//
// Postcondition: Returns a non-nil error for payloads that are not valid
// base64url, DEFLATE, or sheet JSON; never panics on hostile input.
func Unpack(code string) (*character.State, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("share: decoding payload: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("share: decompressing payload: %w", err)
	}

	var s character.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("share: unmarshaling sheet: %w", err)
	}
	if s.Version == 0 {
		s.Version = character.SheetVersion
	}
	return &s, nil
}

// Encode serializes and compresses the sheet into a shareable URL.
//
// Precondition: s must be non-nil.
func (c *Codec) Encode(s *character.State) (*Encoded, error) {
	code, err := Pack(s)
	if err != nil {
		return nil, err
	}
	full := c.baseURL + "#" + FragmentParam + "=" + code
	return &Encoded{
		Code:     code,
		URL:      full,
		Oversize: len(full) > c.warnLength,
	}, nil
}

// Decode reverses Encode on a bare payload.
func (c *Codec) Decode(code string) (*character.State, error) {
	return Unpack(code)
}

// DecodeURL extracts the payload from a full share URL and decodes it.
func (c *Codec) DecodeURL(raw string) (*character.State, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("share: parsing url: %w", err)
	}
	code, err := fragmentPayload(u.Fragment)
	if err != nil {
		return nil, err
	}
	return c.Decode(code)
}

// fragmentPayload pulls the payload out of a "s=..." style fragment. A bare
// fragment with no parameter name is accepted for hand-trimmed URLs.
func fragmentPayload(fragment string) (string, error) {
	if fragment == "" {
		return "", fmt.Errorf("share: url has no fragment")
	}
	for _, part := range strings.Split(fragment, "&") {
		if v, ok := strings.CutPrefix(part, FragmentParam+"="); ok {
			return v, nil
		}
	}
	if !strings.Contains(fragment, "=") {
		return fragment, nil
	}
	return "", fmt.Errorf("share: fragment carries no %q parameter", FragmentParam)
}
