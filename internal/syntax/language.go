package syntax

import (
	golangforest "github.com/alexaandru/go-sitter-forest/golang"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Language names a tree-sitter grammar. Buffer treats it as an opaque
// handle; it knows nothing of the grammar beyond the name used for
// diagnostics.
type Language struct {
	name string
	raw  sitter.Language
}

// Name returns the language's identifier (e.g. "go").
func (l Language) Name() string {
	return l.name
}

// IsZero reports whether no language is set, i.e. the buffer has no
// SyntaxTree (spec's "optional language handle").
func (l Language) IsZero() bool {
	return l.name == ""
}

var registry = map[string]Language{}

func register(name string, getLanguage func() sitter.Language) {
	registry[name] = Language{name: name, raw: getLanguage()}
}

func init() {
	register("go", func() sitter.Language {
		return sitter.NewLanguage(golangforest.GetLanguage())
	})
}

// Lookup finds a registered language by name. ok is false for unknown
// names, in which case the buffer should be constructed with no
// SyntaxTree rather than fail.
func Lookup(name string) (Language, bool) {
	l, ok := registry[name]
	return l, ok
}

// Go returns the registered Go grammar, the only grammar this module ships.
// Additional grammars register themselves the same way in their own
// init(), e.g. importing another go-sitter-forest/<lang> package and
// calling register in a blank-imported file.
func Go() Language {
	l, _ := Lookup("go")
	return l
}
