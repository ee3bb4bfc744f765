package yalisp

type Parser interface {
	ParseLine(input []byte) (n *Node, err error)
	ParseNode(input []byte, pos *int) (n *Node, err error)
	ParseList(input []byte, pos *int) (n *Node, err error)
	ParseInteger(input []byte, pos *int) (n *Node, err error)
	ParseStringLiteral(input []byte, pos *int) (n *Node, err error)
	ParseSymbol(input []byte, pos *int) (n *Node, err error)
}

type parser struct {
	rejectTrailing bool
}

// LenientParser ignores anything after the first expression on a line.
// StrictParser reports it as ErrTrailingInput.
var LenientParser = parser{rejectTrailing: false}
var StrictParser = parser{rejectTrailing: true}

// Parse parses one expression starting at *pos. On success *pos is left at
// the first byte after the expression. On failure *pos is unspecified and
// the returned node is nil.
func Parse(input []byte, pos *int) (n *Node, err error) {
	return LenientParser.ParseNode(input, pos)
}

// ParseString parses one expression from the start of s and returns the
// cursor position after it.
func ParseString(s string) (n *Node, pos int, err error) {
	n, err = LenientParser.ParseNode([]byte(s), &pos)
	return
}

// ParseLine parses the first expression of a line.
func ParseLine(input []byte) (n *Node, err error) {
	return LenientParser.ParseLine(input)
}

func (e parser) ParseLine(input []byte) (n *Node, err error) {
	pos := 0
	n, err = e.ParseNode(input, &pos)
	if err != nil {
		return nil, err
	}
	if e.rejectTrailing {
		skipWhitespace(input, &pos)
		if byteAt(input, pos) != 0 {
			return nil, ErrTrailingInput
		}
	}
	return
}

// byteAt returns 0 past the end of input. A NUL byte inside input also ends
// it.
func byteAt(input []byte, i int) byte {
	if i >= len(input) {
		return 0
	}
	return input[i]
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSymbolRemainder(c byte) bool {
	return c != 0 && c != ' ' && c != ')' && c != '\n' && c != '\t'
}

func skipWhitespace(input []byte, pos *int) {
	for isWhitespace(byteAt(input, *pos)) {
		*pos++
	}
}

func (e parser) ParseNode(input []byte, pos *int) (n *Node, err error) {
	skipWhitespace(input, pos)

	switch c := byteAt(input, *pos); {
	case c == '(':
		return e.ParseList(input, pos)
	case isDigit(c):
		return e.ParseInteger(input, pos)
	case c == '"':
		return e.ParseStringLiteral(input, pos)
	case c != 0:
		return e.ParseSymbol(input, pos)
	}

	return nil, ErrUnexpectedEndOfInput
}

func (e parser) ParseList(input []byte, pos *int) (n *Node, err error) {
	// consume '('
	*pos++

	var items []*Node
	for {
		skipWhitespace(input, pos)

		c := byteAt(input, *pos)
		if c == ')' {
			*pos++
			break
		}
		if c == 0 {
			return nil, ErrUnmatchedOpenParen
		}

		var child *Node
		child, err = e.ParseNode(input, pos)
		if err != nil {
			return nil, err
		}
		items = append(items, child)
	}

	return List(items...), nil
}

// ParseInteger reads a run of decimal digits. The value wraps on int32
// overflow.
func (e parser) ParseInteger(input []byte, pos *int) (n *Node, err error) {
	var v int32
	for c := byteAt(input, *pos); isDigit(c); c = byteAt(input, *pos) {
		v = v*10 + int32(c-'0')
		*pos++
	}
	return Int(v), nil
}

func (e parser) ParseStringLiteral(input []byte, pos *int) (n *Node, err error) {
	// consume opening '"'
	*pos++

	start := *pos
	for {
		c := byteAt(input, *pos)
		if c == 0 {
			return nil, ErrUnterminatedString
		}
		if c == '"' {
			break
		}
		*pos++
	}

	n = Str(string(input[start:*pos]))
	// consume closing '"'
	*pos++
	return
}

// ParseSymbol consumes the longest run of bytes up to whitespace or ')'.
// A symbol starting at ')' is empty and consumes nothing.
func (e parser) ParseSymbol(input []byte, pos *int) (n *Node, err error) {
	start := *pos
	for isSymbolRemainder(byteAt(input, *pos)) {
		*pos++
	}
	return Symbol(string(input[start:*pos])), nil
}
