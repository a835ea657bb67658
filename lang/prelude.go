package lang

// Builtin describes one function every script can call without defining
// it. The parser itself does not resolve names; this table exists for
// completion and diagnostics layered on top of it.
type Builtin struct {
	Name   string
	Params int
	Doc    string
}

var prelude = []Builtin{
	{Name: "sin", Params: 1, Doc: "elementwise sine"},
	{Name: "cos", Params: 1, Doc: "elementwise cosine"},
	{Name: "tan", Params: 1, Doc: "elementwise tangent"},
	{Name: "sound", Params: 1, Doc: "play a vector as an audio signal"},
}

// Prelude returns the builtin function table.
func Prelude() []Builtin {
	out := make([]Builtin, len(prelude))
	copy(out, prelude)

	return out
}

// LookupBuiltin finds a builtin by name.
func LookupBuiltin(name string) (Builtin, bool) {
	for _, b := range prelude {
		if b.Name == name {
			return b, true
		}
	}

	return Builtin{}, false
}
