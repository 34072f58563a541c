package gostack

import (
	"strconv"
	"strings"
)

// Parser turns lines of words into values, assembling { ... } groups into
// blocks. A block may stay open across any number of lines: the stack of
// open block accumulators is the only state carried from one call to the
// next, and a value is only returned once every block it belongs to has
// closed.
//
// A Parser must not be shared between goroutines.
type Parser struct {
	open [][]Value
}

// NewParser returns a parser with no open blocks.
func NewParser() *Parser { return &Parser{} }

// Depth returns how many blocks are currently open.
func (p *Parser) Depth() int { return len(p.open) }

// Reset discards any open blocks.
func (p *Parser) Reset() { p.open = nil }

// Finish ends the input, returning an error if any block was left open.
// The parser is reset either way.
func (p *Parser) Finish() error {
	defer p.Reset()
	if len(p.open) > 0 {
		return &ParseError{Err: ErrUnclosedBlock, Index: -1}
	}
	return nil
}

// ParseLine splits line on white space and parses the resulting words.
func (p *Parser) ParseLine(line string) ([]Value, error) {
	return p.ParseWords(strings.Fields(line))
}

// ParseWords parses one line worth of words, returning all top level values
// completed by them. Empty words are skipped.
//
// A close brace with no open block is a ParseError wrapping
// ErrUnmatchedCloseBrace; any values completed before it are returned along
// with the error, and the rest of the words are dropped.
func (p *Parser) ParseWords(words []string) (values []Value, _ error) {
	for i, word := range words {
		switch word {
		case "":
		case "{":
			p.open = append(p.open, nil)
		case "}":
			top := len(p.open) - 1
			if top < 0 {
				return values, &ParseError{Err: ErrUnmatchedCloseBrace, Word: word, Index: i}
			}
			elems := p.open[top]
			p.open = p.open[:top]
			values = p.emit(values, Block{elems[:len(elems):len(elems)]})
		default:
			values = p.emit(values, parseWord(word))
		}
	}
	return values, nil
}

// emit appends v to the innermost open block, or to values if none is open.
func (p *Parser) emit(values []Value, v Value) []Value {
	if i := len(p.open) - 1; i >= 0 {
		p.open[i] = append(p.open[i], v)
		return values
	}
	return append(values, v)
}

// parseWord classifies a single non-brace word: integers first, then
// floating point numbers, then /symbols; anything else is an operation name.
func parseWord(word string) Value {
	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		return Integer(n)
	}
	if looksNumeric(word) {
		if f, err := strconv.ParseFloat(word, 64); err == nil {
			return Number(f)
		}
	}
	// a lone slash is division, not an empty symbol
	if len(word) > 1 && word[0] == '/' {
		return Symbol(word[1:])
	}
	return Operation(word)
}

// looksNumeric keeps words like "inf" and "NaN" out of ParseFloat, which
// would otherwise accept them.
func looksNumeric(word string) bool {
	if len(word) > 0 && (word[0] == '-' || word[0] == '+') {
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '.' {
		word = word[1:]
	}
	return len(word) > 0 && '0' <= word[0] && word[0] <= '9'
}
