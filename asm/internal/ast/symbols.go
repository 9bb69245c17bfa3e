package ast

// SymbolTable maps label names to positions within one section. Names keep
// their declaration order.
type SymbolTable struct {
	index map[string]uint32
	names []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]uint32)}
}

// Define registers name at pos. It returns false, leaving the table
// unchanged, when name is already declared.
func (s *SymbolTable) Define(name string, pos uint32) bool {
	if _, exists := s.index[name]; exists {
		return false
	}
	s.index[name] = pos
	s.names = append(s.names, name)
	return true
}

func (s *SymbolTable) Lookup(name string) (uint32, bool) {
	pos, ok := s.index[name]
	return pos, ok
}

func (s *SymbolTable) Len() int {
	return len(s.names)
}

// Names returns the declared labels in declaration order.
func (s *SymbolTable) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// At returns every label declared at pos, in declaration order.
func (s *SymbolTable) At(pos uint32) []string {
	var out []string
	for _, name := range s.names {
		if s.index[name] == pos {
			out = append(out, name)
		}
	}
	return out
}
