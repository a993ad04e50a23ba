package palm

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Image is an uploaded palm photo.
type Image struct {
	MediaType string // e.g. "image/jpeg"
	Data      []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MediaType + ";base64," + i.Base64()
}

// Reading is the interpretation of the four major palm lines plus an
// overall summary.
type Reading struct {
	HeartLine string `json:"heart_line"`
	HeadLine  string `json:"head_line"`
	LifeLine  string `json:"life_line"`
	FateLine  string `json:"fate_line"`
	Summary   string `json:"summary"`
}

func (r Reading) empty() bool {
	return r.HeartLine == "" && r.HeadLine == "" && r.LifeLine == "" && r.FateLine == "" && r.Summary == ""
}

// Analyzer turns a palm image into a Reading.
type Analyzer interface {
	// Analyze interprets img, writing the reading in lang (a language code
	// such as "en"). Empty lang means "en". Only transport and provider
	// failures are errors; unparsable model output degrades to a fallback
	// reading.
	Analyze(ctx context.Context, img Image, lang string) (*Reading, error)
}

// GatewayError reports that the remote analysis call failed.
type GatewayError struct {
	Model string
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("palm analysis via %s failed: %v", e.Model, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
