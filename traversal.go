package streamskema

// TraversalState is the mutable position of one document parse: the pointer
// builder, the nesting level and one field-name set per open object. It is
// owned by a single Adapter and discarded with it.
type TraversalState struct {
	pointer    *PointerBuilder
	level      int
	names      []nameFrame
	sourceName string
}

// NewTraversalState returns the state for a fresh document.
func NewTraversalState(inputSourceName string) *TraversalState {
	return &TraversalState{pointer: NewPointerBuilder(), sourceName: inputSourceName}
}

// Advance records tok and returns the Location it is reported at.
func (s *TraversalState) Advance(tok Token) Location {
	if tok.Type == EndObject || tok.Type == EndArray {
		s.level--
	}
	s.pointer.Consume(tok)
	loc := s.Location()
	switch tok.Type {
	case StartObject:
		s.names = append(s.names, nameFrame{})
		s.level++
	case StartArray:
		s.level++
	case EndObject:
		if n := len(s.names); n > 0 {
			s.names = s.names[:n-1]
		}
	case FieldName:
		if n := len(s.names); n > 0 {
			s.names[n-1].add(tok.Text)
		}
	}
	return loc
}

// Location snapshots the current position.
func (s *TraversalState) Location() Location {
	loc := Location{
		Pointer:         s.pointer.Pointer(),
		Level:           s.level,
		InputSourceName: s.sourceName,
	}
	if n := len(s.names); n > 0 {
		loc.PropertyNames = s.names[n-1].snapshot()
	}
	return loc
}

// Level returns the current nesting level.
func (s *TraversalState) Level() int { return s.level }

// Pointer returns the pointer of the last consumed token.
func (s *TraversalState) Pointer() Pointer { return s.pointer.Pointer() }

// PropertyNames returns the names seen so far in the innermost open object.
func (s *TraversalState) PropertyNames() NameSet {
	if n := len(s.names); n > 0 {
		return s.names[n-1].snapshot()
	}
	return NameSet{}
}

// AtRoot reports whether no container is open.
func (s *TraversalState) AtRoot() bool { return s.pointer.Depth() == 0 }
