package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/achilleasa/parallax/asset"
	"github.com/achilleasa/parallax/log"
)

var logger = log.New("preset")

// Read a preset file from a local path, URL or data URI.
func ReadFile(uri string) (*Settings, error) {
	res, err := asset.NewResource(uri, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	settings, err := Read(res)
	if err != nil {
		return nil, err
	}
	logger.Noticef(`loaded preset from "%s"`, res.Path())
	return settings, nil
}

// Decode a preset. Missing fields fall back to their defaults; the legacy
// edgeFeather field is accepted when layerBlending is absent. Any decoding
// error or unsupported version is reported as ErrInvalidPreset.
func Read(r io.Reader) (*Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err = dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPreset, err.Error())
	}
	if doc.Version == nil {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidPreset)
	}
	if *doc.Version < MinVersion {
		return nil, fmt.Errorf("%w: version %d is too old (minimum %d)", ErrInvalidPreset, *doc.Version, MinVersion)
	}
	if doc.Settings == nil {
		return nil, fmt.Errorf("%w: missing settings object", ErrInvalidPreset)
	}

	in := doc.Settings
	out := Defaults()
	setFloat(&out.BackgroundCutoff, in.BackgroundCutoff)
	setFloat(&out.MiddlegroundCutoff, in.MiddlegroundCutoff)
	setFloat(&out.DepthScale, in.DepthScale)
	if in.LayerBlending != nil {
		out.LayerBlending = *in.LayerBlending
	} else if in.EdgeFeather != nil {
		logger.Debugf("mapping legacy edgeFeather value %v to layerBlending", *in.EdgeFeather)
		out.LayerBlending = *in.EdgeFeather
	}
	if in.IsStatic != nil {
		out.IsStatic = *in.IsStatic
	}

	out.LayerCount = in.LayerCount
	out.BaseDepth = in.BaseDepth
	out.NormalIntensity = in.NormalIntensity
	out.BloomIntensity = in.BloomIntensity
	out.Atmosphere = in.Atmosphere
	out.SSAOIntensity = in.SSAOIntensity
	out.SSAORadius = in.SSAORadius

	if err = out.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Settings) validate() error {
	for name, v := range map[string]float64{
		"backgroundCutoff":   s.BackgroundCutoff,
		"middlegroundCutoff": s.MiddlegroundCutoff,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1]; got %v", ErrInvalidPreset, name, v)
		}
	}
	if s.DepthScale < 0 {
		return fmt.Errorf("%w: depthScale must not be negative; got %v", ErrInvalidPreset, s.DepthScale)
	}
	if s.LayerBlending <= 0 {
		return fmt.Errorf("%w: layerBlending must be positive; got %v", ErrInvalidPreset, s.LayerBlending)
	}
	if s.LayerCount != nil && *s.LayerCount < 1 {
		return fmt.Errorf("%w: layerCount must be at least 1; got %d", ErrInvalidPreset, *s.LayerCount)
	}
	return nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
