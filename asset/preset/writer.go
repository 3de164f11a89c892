package preset

import (
	"encoding/json"
	"io"
	"os"
)

// The Writer interface is implemented by all preset encoders.
type Writer interface {
	Write(io.Writer, *Settings) error
}

type jsonWriter struct{}

// Encode settings as a current version JSON preset using canonical field names.
func (jsonWriter) Write(w io.Writer, s *Settings) error {
	version := CurrentVersion
	isStatic := s.IsStatic
	doc := document{
		Version: &version,
		Settings: &settingsBlock{
			BackgroundCutoff:   &s.BackgroundCutoff,
			MiddlegroundCutoff: &s.MiddlegroundCutoff,
			DepthScale:         &s.DepthScale,
			LayerBlending:      &s.LayerBlending,
			IsStatic:           &isStatic,
			LayerCount:         s.LayerCount,
			BaseDepth:          s.BaseDepth,
			NormalIntensity:    s.NormalIntensity,
			BloomIntensity:     s.BloomIntensity,
			Atmosphere:         s.Atmosphere,
			SSAOIntensity:      s.SSAOIntensity,
			SSAORadius:         s.SSAORadius,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Write settings to w.
func Write(w io.Writer, s *Settings) error {
	return jsonWriter{}.Write(w, s)
}

// Write settings to a file.
func WriteFile(filename string, s *Settings) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = Write(f, s); err != nil {
		f.Close()
		return err
	}
	logger.Noticef(`wrote preset to "%s"`, filename)
	return f.Close()
}
