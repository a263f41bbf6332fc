package syntax

// ParseError is a single recorded parse diagnostic: an unexpected or
// missing token at a span, with a human-readable message (spec §4.2, §7).
type ParseError struct {
	Span    Span
	Message string
}

// Parse is the result of parsing one document: the syntax tree plus any
// errors collected along the way. Parsing never fails outright — a Parse is
// always returned, and its tree always covers the entire input (spec §4.2's
// "Observable side effects: none... Output: Parse{green, errors}").
type Parse struct {
	Tree   *Tree
	Errors []ParseError
	IsDef  bool
}
