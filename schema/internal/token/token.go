package token

type Type int

const (
	Ident Type = iota
	Number
	Punct
	Invalid
)

func (t Type) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Punct:
		return "punctuation"
	case Invalid:
		return "invalid character"
	}
	return "unknown"
}

// Token is one lexeme of a type expression. Pos is the byte offset of its
// first character.
type Token struct {
	Value string
	Type  Type
	Line  int
	Pos   int
}

// Is reports whether t is the punctuation p.
func (t Token) Is(p string) bool {
	return t.Type == Punct && t.Value == p
}

const punctuation = "<>[](){};:,="

func isPunct(r rune) bool {
	for _, p := range punctuation {
		if r == p {
			return true
		}
	}
	return false
}

// Tokenize splits a type expression. Comments run from "//" or "#" to the end
// of the line.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1

	for i := 0; i < len(input); {
		r := rune(input[i])

		if r == '\n' {
			line++
			i++
			continue
		}
		if r == ' ' || r == '\t' || r == '\r' {
			i++
			continue
		}

		// Line comment
		if r == '#' || (r == '/' && i+1 < len(input) && input[i+1] == '/') {
			for i < len(input) && input[i] != '\n' {
				i++
			}
			continue
		}

		if isPunct(r) {
			tokens = append(tokens, Token{string(r), Punct, line, i})
			i++
			continue
		}

		if isDigit(input[i]) {
			start := i
			for i < len(input) && (isDigit(input[i]) || input[i] == '_' || input[i] == 'x' || input[i] == 'X' || isHex(input[i])) {
				i++
			}
			tokens = append(tokens, Token{input[start:i], Number, line, start})
			continue
		}

		if r == '_' || isLetter(input[i]) {
			start := i
			for i < len(input) && (input[i] == '_' || isDigit(input[i]) || isLetter(input[i])) {
				i++
			}
			tokens = append(tokens, Token{input[start:i], Ident, line, start})
			continue
		}

		tokens = append(tokens, Token{string(r), Invalid, line, i})
		i++
	}

	return tokens
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isHex(b byte) bool    { return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
