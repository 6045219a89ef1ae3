package token

import (
	"fmt"

	"quill/internal/source"
)

// Token is one lexical unit with its byte range in the source text.
type Token struct {
	Kind  Kind
	Text  string
	Range source.TextRange
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @ %s", t.Kind, t.Text, t.Range)
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}
