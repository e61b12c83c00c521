package models

// MentionSource identifies the extraction pattern that produced a candidate.
// Higher-precision patterns carry higher base confidence.
type MentionSource string

const (
	SourcePin        MentionSource = "PIN"         // explicit location-pin marker next to text
	SourceAtMention  MentionSource = "AT_MENTION"  // "at <Place>" / "@<Place>" phrasing
	SourceHashtag    MentionSource = "HASHTAG"     // #PlaceName style mention
	SourceProperNoun MentionSource = "PROPER_NOUN" // bare capitalized noun phrase
	SourceVision     MentionSource = "VISION_MODEL"
)

// Candidate is an unresolved place mention extracted from a single image.
// Candidates are never mutated after creation; resolution produces new objects.
type Candidate struct {
	RawName     string        `json:"raw_name"`
	Source      MentionSource `json:"source"`
	Confidence  float64       `json:"confidence"` // [0,1]
	ImageIndex  int           `json:"image_index"`
	Lat         float64       `json:"lat,omitempty"` // zero until geocoded
	Lng         float64       `json:"lng,omitempty"`
	HasCoords   bool          `json:"has_coords"`
	Description string        `json:"description,omitempty"`
}

// BoundingBox is a text region's position within the source image, in pixels.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TextRegion is one recognized-text fragment from the OCR collaborator.
type TextRegion struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Box        *BoundingBox `json:"box,omitempty"`
	HasPin     bool         `json:"has_pin"` // a location-pin glyph was detected adjacent to this region
}

// VisionFinding is one place identification from the vision-model collaborator.
type VisionFinding struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"` // 0 means unreported
}

// ImageDiagnostic records why an image produced no candidates. It is
// informational, never an error.
type ImageDiagnostic struct {
	ImageIndex int    `json:"image_index"`
	Reason     string `json:"reason"` // e.g. "no legible text", "no pin detected"
}
