package document

// Extension is appended to every document stem.
const Extension = ".md"

// UnknownID stands in for the video ID when none could be extracted.
const UnknownID = "unknown"

// Document is a rendered transcript ready to be written.
type Document struct {
	Stem    string
	Content string
	VideoID string
}

// Filename returns the stem with the document extension.
func (d Document) Filename() string {
	return d.Stem + Extension
}

// Written describes a document persisted by a Writer.
type Written struct {
	Path  string
	Bytes int
}

// Writer persists rendered documents
type Writer interface {
	Write(dir string, doc Document) (Written, error)
}
