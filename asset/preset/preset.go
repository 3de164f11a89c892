package preset

const (
	// Oldest preset version the reader accepts.
	MinVersion = 3

	// Version emitted by the writer.
	CurrentVersion = 4

	DefaultBackgroundCutoff   = 0.25
	DefaultMiddlegroundCutoff = 0.5
	DefaultDepthScale         = 0.5
	DefaultLayerBlending      = 0.1
)

// Settings captures the user tunable scene parameters stored in a preset file.
// Optional fields are nil when the preset does not define them.
type Settings struct {
	BackgroundCutoff   float64
	MiddlegroundCutoff float64
	DepthScale         float64
	LayerBlending      float64
	IsStatic           bool

	LayerCount      *int
	BaseDepth       *float64
	NormalIntensity *float64
	BloomIntensity  *float64
	Atmosphere      *float64
	SSAOIntensity   *float64
	SSAORadius      *float64
}

// Settings populated with the documented defaults.
func Defaults() Settings {
	return Settings{
		BackgroundCutoff:   DefaultBackgroundCutoff,
		MiddlegroundCutoff: DefaultMiddlegroundCutoff,
		DepthScale:         DefaultDepthScale,
		LayerBlending:      DefaultLayerBlending,
	}
}

// On-disk representation.
type document struct {
	Version  *int           `json:"version"`
	Settings *settingsBlock `json:"settings"`
}

type settingsBlock struct {
	BackgroundCutoff   *float64 `json:"backgroundCutoff,omitempty"`
	MiddlegroundCutoff *float64 `json:"middlegroundCutoff,omitempty"`
	DepthScale         *float64 `json:"depthScale,omitempty"`
	LayerBlending      *float64 `json:"layerBlending,omitempty"`
	EdgeFeather        *float64 `json:"edgeFeather,omitempty"`
	IsStatic           *bool    `json:"isStatic,omitempty"`

	LayerCount      *int     `json:"layerCount,omitempty"`
	BaseDepth       *float64 `json:"baseDepth,omitempty"`
	NormalIntensity *float64 `json:"normalIntensity,omitempty"`
	BloomIntensity  *float64 `json:"bloomIntensity,omitempty"`
	Atmosphere      *float64 `json:"atmosphere,omitempty"`
	SSAOIntensity   *float64 `json:"ssaoIntensity,omitempty"`
	SSAORadius      *float64 `json:"ssaoRadius,omitempty"`
}
