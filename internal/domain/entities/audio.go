package entities

// AudioFormat is the container of a playable audio source.
type AudioFormat string

const (
	FormatM4A AudioFormat = "m4a"
	FormatMP3 AudioFormat = "mp3"
)

// MIMEType returns the content type used when serving the format.
func (f AudioFormat) MIMEType() string {
	switch f {
	case FormatM4A:
		return "audio/mp4"
	case FormatMP3:
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// AudioSourceKind tells whether audio comes from a recording or from speech synthesis.
type AudioSourceKind string

const (
	SourceAsset       AudioSourceKind = "asset"
	SourceSynthesized AudioSourceKind = "synthesized"
)

// AudioSource is a playable utterance. Path is set for assets, Data for synthesized speech.
type AudioSource struct {
	Kind   AudioSourceKind
	Format AudioFormat
	Path   string
	Data   []byte
}

// MIMEType returns the content type of the source.
func (a AudioSource) MIMEType() string {
	return a.Format.MIMEType()
}
