package streamskema

import "sort"

// NameSet is an immutable view of the field names seen so far in one object,
// in first-seen order. A set taken while its object is still open shares the
// object's index, so read it on the parsing goroutine or after the object
// closes.
type NameSet struct {
	names []string
	// index maps a name to its position in first-seen order; entries at or
	// beyond len(names) were added after this view was taken.
	index map[string]int
}

// NewNameSet builds a set from names, dropping duplicates.
func NewNameSet(names ...string) NameSet {
	var f nameFrame
	for _, n := range names {
		f.add(n)
	}
	return f.snapshot()
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	i, ok := s.index[name]
	return ok && i < len(s.names)
}

// Len returns the number of names.
func (s NameSet) Len() int { return len(s.names) }

// Names returns the names in first-seen order.
func (s NameSet) Names() []string { return append([]string(nil), s.names...) }

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}

// nameFrame is the mutable set for one open object. Snapshots share the
// backing array and the index; appends never touch the prefix a snapshot
// holds.
type nameFrame struct {
	names []string
	index map[string]int
}

func (f *nameFrame) add(name string) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if _, ok := f.index[name]; ok {
		return
	}
	f.index[name] = len(f.names)
	f.names = append(f.names, name)
}

func (f *nameFrame) snapshot() NameSet {
	return NameSet{names: f.names[:len(f.names):len(f.names)], index: f.index}
}

// Location is the document position of one token.
type Location struct {
	Pointer Pointer
	// Level counts the containers enclosing the token. The start and end
	// tokens of a container are not enclosed by it, so a root object starts
	// and ends at level 0 while its members are at level 1.
	Level int
	// PropertyNames holds the field names seen so far in the innermost open
	// object, excluding a FieldName token's own name.
	PropertyNames NameSet
	// InputSourceName optionally names the document (a file name, a URL).
	InputSourceName string
}

func (l Location) String() string {
	if l.InputSourceName != "" {
		return "at " + l.Pointer.displayPath() + " in " + l.InputSourceName
	}
	return "at " + l.Pointer.displayPath()
}
