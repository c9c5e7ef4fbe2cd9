package harvest

import "slices"

// EmailPattern matches an email address of the local@domain.tld shape.
// It is the only email check performed anywhere.
const EmailPattern = `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`

// SourceShape names the markup shape a page is expected to have.
// The shape is configured per source; it is never detected from content.
type SourceShape string

// SourceShape constants.
const (
	// ShapePlain pages carry contacts as loose text patterns.
	ShapePlain SourceShape = "plain"

	// ShapeAttribute pages mark names with an attribute on anchor elements.
	ShapeAttribute SourceShape = "attribute"

	// ShapeBlock pages repeat one tagged block per contact.
	ShapeBlock SourceShape = "block"
)

// Extractor turns raw page text into contact records.
// Implementations are stateless; malformed markup yields fewer records,
// never an error, except when the input cannot be parsed at all.
type Extractor interface {
	Extract(html string) ([]*Contact, error)
}

// ExtractorFunc builds a configured extractor.
type ExtractorFunc func() (Extractor, error)

// Extractors maps source shapes to the builders of their extractors.
// Only the extractor that is asked for gets built, so configuration of
// other shapes is never validated.
type Extractors struct {
	builders map[SourceShape]ExtractorFunc
}

// NewExtractors returns an empty registry.
func NewExtractors() *Extractors {
	return &Extractors{builders: make(map[SourceShape]ExtractorFunc)}
}

// Register adds a builder for a shape, replacing any previous one.
func (r *Extractors) Register(shape SourceShape, build ExtractorFunc) {
	r.builders[shape] = build
}

// Get builds the extractor registered for shape.
// Returns EINVALID if no extractor is registered, or the builder's error.
func (r *Extractors) Get(shape SourceShape) (Extractor, error) {
	build, ok := r.builders[shape]
	if !ok {
		return nil, Errorf(EINVALID, "no extractor registered for source shape %q", string(shape))
	}
	return build()
}

// Shapes returns the registered shapes in sorted order.
func (r *Extractors) Shapes() []SourceShape {
	shapes := make([]SourceShape, 0, len(r.builders))
	for s := range r.builders {
		shapes = append(shapes, s)
	}
	slices.Sort(shapes)
	return shapes
}
