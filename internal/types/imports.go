package types

// SourceUnit identifies one piece of Python source being scanned. It is
// created when the resolver visits a file and discarded after extraction.
type SourceUnit struct {
	Path string
	Dir  string
}

// ImportRecord is a single import statement reference produced by the
// extractor and consumed immediately by the resolver.
type ImportRecord struct {
	Module string
	Kind   ImportKind
	Origin SourceUnit
}

// ParseFailure records a source file whose imports could not be statically
// determined. Non-fatal: resolution continues with whatever was discovered.
type ParseFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}
