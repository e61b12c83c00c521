package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// Base confidence per extraction pattern. Higher-precision patterns deserve
// higher trust; vision findings keep the model's own score when reported.
const (
	ConfidencePin           = 0.95
	ConfidenceAtMention     = 0.80
	ConfidenceHashtag       = 0.65
	ConfidenceProperNoun    = 0.50
	ConfidenceVisionDefault = 0.70
)

// VisionSource identifies places in an image. Implementations are selected
// once at construction (real Gemini backend or a static one for tests), never
// via runtime type inspection.
type VisionSource interface {
	Identify(ctx context.Context, image []byte) ([]models.VisionFinding, error)
}

var (
	atMentionRe = regexp.MustCompile(`(?:^|\s)@([\p{L}\p{N}][\p{L}\p{N}'&._ -]*[\p{L}\p{N}])`)
	atPhraseRe  = regexp.MustCompile(`\b[Aa]t\s+((?:\p{Lu}[\p{L}\p{N}'&.-]*)(?:\s+(?:of|the|de|la|\p{Lu}[\p{L}\p{N}'&.-]*))*)`)
	hashtagRe   = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	capWordRe   = regexp.MustCompile(`^\p{Lu}[\p{L}'&.-]*$`)
	camelBreak  = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
)

// Extractor turns recognized text regions and vision findings into unresolved
// candidates. It is pure and stateless; vision inference happens upstream.
type Extractor struct{}

// NewExtractor creates a mention extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractImage produces the candidates for one image. A zero-candidate image
// is not an error: the returned diagnostic explains why, and the caller
// records it.
func (e *Extractor) ExtractImage(imageIndex int, regions []models.TextRegion, findings []models.VisionFinding) ([]models.Candidate, *models.ImageDiagnostic) {
	var candidates []models.Candidate

	for _, region := range regions {
		candidates = append(candidates, e.extractRegion(imageIndex, region)...)
	}

	for _, finding := range findings {
		if c, ok := e.fromVision(imageIndex, finding); ok {
			candidates = append(candidates, c)
		}
	}

	if len(candidates) > 0 {
		return candidates, nil
	}

	reason := "no location mentions detected"
	if len(regions) == 0 && len(findings) == 0 {
		reason = "no legible text"
	}
	return nil, &models.ImageDiagnostic{ImageIndex: imageIndex, Reason: reason}
}

// extractRegion applies the text patterns to one recognized region, most
// precise first. A pinned region is taken whole; otherwise every pattern may
// contribute and the resolver merges the duplicates.
func (e *Extractor) extractRegion(imageIndex int, region models.TextRegion) []models.Candidate {
	text := strings.TrimSpace(region.Text)
	if text == "" {
		return nil
	}

	if region.HasPin {
		if c, ok := e.candidate(imageIndex, text, models.SourcePin, ConfidencePin); ok {
			return []models.Candidate{c}
		}
		return nil
	}

	var out []models.Candidate

	for _, m := range atMentionRe.FindAllStringSubmatch(text, -1) {
		if c, ok := e.candidate(imageIndex, m[1], models.SourceAtMention, ConfidenceAtMention); ok {
			out = append(out, c)
		}
	}
	for _, m := range atPhraseRe.FindAllStringSubmatch(text, -1) {
		if c, ok := e.candidate(imageIndex, m[1], models.SourceAtMention, ConfidenceAtMention); ok {
			out = append(out, c)
		}
	}
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		name := splitCamelCase(m[1])
		if c, ok := e.candidate(imageIndex, name, models.SourceHashtag, ConfidenceHashtag); ok {
			out = append(out, c)
		}
	}
	for _, phrase := range capitalizedPhrases(text) {
		if c, ok := e.candidate(imageIndex, phrase, models.SourceProperNoun, ConfidenceProperNoun); ok {
			out = append(out, c)
		}
	}

	return out
}

// fromVision converts a vision-model finding, defaulting the confidence when
// the model did not report one.
func (e *Extractor) fromVision(imageIndex int, finding models.VisionFinding) (models.Candidate, bool) {
	conf := finding.Confidence
	if conf <= 0 {
		conf = ConfidenceVisionDefault
	}
	if conf > 1 {
		conf = 1
	}

	c, ok := e.candidate(imageIndex, finding.Name, models.SourceVision, conf)
	if !ok {
		return models.Candidate{}, false
	}
	c.Description = finding.Description
	return c, true
}

// candidate builds a candidate unless normalization empties the name or the
// stoplist rejects it.
func (e *Extractor) candidate(imageIndex int, rawName string, source models.MentionSource, confidence float64) (models.Candidate, bool) {
	normalized := Normalize(rawName)
	if normalized == "" || Stoplisted(normalized) {
		return models.Candidate{}, false
	}

	return models.Candidate{
		RawName:    strings.TrimSpace(rawName),
		Source:     source,
		Confidence: confidence,
		ImageIndex: imageIndex,
	}, true
}

// capitalizedPhrases finds runs of capitalized words (allowing short
// connectors like "of"/"the" inside a run) of at least two words. Single
// capitalized words are too noisy to keep at this confidence tier.
func capitalizedPhrases(text string) []string {
	words := strings.Fields(text)

	var phrases []string
	var run []string
	flush := func() {
		// Trailing connectors don't count toward run length.
		for len(run) > 0 && isConnector(run[len(run)-1]) {
			run = run[:len(run)-1]
		}
		capCount := 0
		for _, w := range run {
			if !isConnector(w) {
				capCount++
			}
		}
		if capCount >= 2 {
			phrases = append(phrases, strings.Join(run, " "))
		}
		run = nil
	}

	for _, w := range words {
		trimmed := strings.Trim(w, ",.!?:;\"()")
		switch {
		case capWordRe.MatchString(trimmed):
			run = append(run, trimmed)
		case len(run) > 0 && isConnector(trimmed):
			run = append(run, trimmed)
		default:
			flush()
		}
	}
	flush()

	return phrases
}

func isConnector(w string) bool {
	switch strings.ToLower(w) {
	case "of", "the", "de", "la", "du", "and":
		return true
	}
	return false
}

// splitCamelCase turns "#JoesPizza" content into "Joes Pizza" and underscores
// into spaces.
func splitCamelCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return camelBreak.ReplaceAllString(s, "$1 $2")
}
