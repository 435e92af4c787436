package cgen

import "strings"

// CType is a C scalar type the print formatter knows how to convert.
type CType struct {
	Name       string
	Conversion string
}

var scalarTypes = []CType{
	{Name: "int", Conversion: "%d"},
	{Name: "unsigned int", Conversion: "%u"},
	{Name: "short", Conversion: "%hd"},
	{Name: "unsigned short", Conversion: "%hu"},
	{Name: "long", Conversion: "%ld"},
	{Name: "unsigned long", Conversion: "%lu"},
	{Name: "long long", Conversion: "%lld"},
	{Name: "unsigned long long", Conversion: "%llu"},
	{Name: "float", Conversion: "%f"},
	{Name: "double", Conversion: "%f"},
	{Name: "char", Conversion: "%c"},
	{Name: "char*", Conversion: "%s"},
}

// normalizeTypeName collapses whitespace and binds '*' to the base type,
// so "char *" and "char*" name the same type.
func normalizeTypeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, " *", "*")
}

func lookupCType(name string) (CType, bool) {
	name = normalizeTypeName(name)
	for _, t := range scalarTypes {
		if t.Name == name {
			return t, true
		}
	}
	return CType{}, false
}

// symbolTable maps variable display names to their declared types.
type symbolTable struct {
	types map[string]string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{types: make(map[string]string)}
}

// define records name's type. The first declaration of a name wins; it
// reports whether the entry was added.
func (s *symbolTable) define(name, typ string) bool {
	if name == "" || typ == "" {
		return false
	}
	if _, exists := s.types[name]; exists {
		return false
	}
	s.types[name] = typ
	return true
}

func (s *symbolTable) lookup(name string) (string, bool) {
	typ, ok := s.types[name]
	return typ, ok
}
