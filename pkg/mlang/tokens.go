// tokens.go defines the token types produced by the markup tokenizer.
package mlang

// TokenType represents the kind of a markup token.
type TokenType int

const (
	TokenText     TokenType = iota // plain text between tags
	TokenOpenTag                   // <tag attr="...">
	TokenCloseTag                  // </tag>
	TokenComment                   // <!-- ... -->
	TokenScript                    // <script>...</script>
	TokenStyle                     // <style>...</style>
)

// String returns the lowercase name of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "text"
	case TokenOpenTag:
		return "open"
	case TokenCloseTag:
		return "close"
	case TokenComment:
		return "comment"
	case TokenScript:
		return "script"
	case TokenStyle:
		return "style"
	}
	return "unknown"
}

// Token represents a single token from markup scanning.
// Raw always holds the exact source text, so concatenating the Raw fields of
// all tokens in order reproduces the input.
type Token struct {
	Type     TokenType
	Name     string     // lowercased tag name, set for OpenTag and CloseTag
	Attrs    Attributes // set for OpenTag
	Raw      string     // source text of the token
	Position int        // byte offset in original input
}

// SelfClosing reports whether an open tag is written as <tag ... />.
func (t Token) SelfClosing() bool {
	if t.Type != TokenOpenTag || len(t.Raw) < 2 {
		return false
	}
	return t.Raw[len(t.Raw)-2] == '/'
}

// Attr is a single tag attribute. HasValue is false for boolean attributes
// written without "=value".
type Attr struct {
	Key      string
	Value    string
	HasValue bool
}

// Attributes is an ordered attribute list. Keys keep their source case and
// are matched case-sensitively.
type Attributes []Attr

// Get returns the value of key, or "" if absent or valueless.
func (a Attributes) Get(key string) string {
	v, _ := a.Lookup(key)
	return v
}

// Lookup returns the value of key and whether the key is present.
func (a Attributes) Lookup(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (a Attributes) Has(key string) bool {
	_, ok := a.Lookup(key)
	return ok
}

// Map returns the attributes as a map. Boolean attributes map to nil.
func (a Attributes) Map() map[string]*string {
	m := make(map[string]*string, len(a))
	for _, attr := range a {
		if !attr.HasValue {
			m[attr.Key] = nil
			continue
		}
		v := attr.Value
		m[attr.Key] = &v
	}
	return m
}

// set stores an attribute, replacing an existing entry in place.
func (a *Attributes) set(attr Attr) {
	for i := range *a {
		if (*a)[i].Key == attr.Key {
			(*a)[i] = attr
			return
		}
	}
	*a = append(*a, attr)
}
