package cache

// Keyer builds cache keys. Every option that changes the output must be
// part of the key.
type Keyer interface {
	// WordsKey identifies the ranked word list for an input.
	WordsKey(inputHash string, opts WordsKeyOpts) string
	// ArtifactKey identifies an encoded image for an input.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// WordsKeyOpts holds the options that change aggregation output.
type WordsKeyOpts struct {
	MinLength      int      `json:"min_length"`
	StopWords      bool     `json:"stop_words"`
	ExtraStopWords []string `json:"extra_stop_words,omitempty"`
	KeepNumbers    bool     `json:"keep_numbers"`
	MaxWords       int      `json:"max_words"`
}

// ArtifactKeyOpts holds the options that change rendered output.
type ArtifactKeyOpts struct {
	Words       WordsKeyOpts `json:"words"`
	Strategy    string       `json:"strategy"`
	CenterX     int          `json:"center_x"`
	CenterY     int          `json:"center_y"`
	SpacingW    int          `json:"spacing_w"`
	SpacingH    int          `json:"spacing_h"`
	Font        string       `json:"font"`
	FontDigest  string       `json:"font_digest,omitempty"`
	MinFontSize float64      `json:"min_font_size"`
	MaxFontSize float64      `json:"max_font_size"`
	Scale       string       `json:"scale"`
	Palette     []string     `json:"palette,omitempty"`
	PaletteSize int          `json:"palette_size"`
	Seed        uint64       `json:"seed"`
	Background  string       `json:"background"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Filter      string       `json:"filter"`
	Format      string       `json:"format"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// WordsKey implements Keyer.
func (DefaultKeyer) WordsKey(inputHash string, opts WordsKeyOpts) string {
	return hashKey("words", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
