// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package sexp

import (
	"unicode"

	"github.com/consensys/go-boxsolve/pkg/util/source"
)

// Parse a given source file into exactly one S-expression, or return an error
// if it is malformed.  A source map is also returned for reporting errors.
func Parse(s *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	// Parse the input
	sExp, err := p.Parse()
	//
	if err != nil {
		return nil, nil, err
	} else if sExp == nil {
		return nil, nil, p.error("unexpected end-of-file")
	}
	// Sanity check everything was parsed
	if p.SkipWhiteSpace(); p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	// Done
	return sExp, p.SourceMap(), nil
}

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if it is malformed.  The key distinction from Parse is that
// this continues parsing after the first S-expression is encountered.
func ParseAll(s *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	//
	terms := make([]SExp, 0)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			// EOF reached
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given text into one or
// more S-expressions.  This follows the lexical conventions of SMT-LIB, hence
// supports "|quoted symbols|", "string literals" (where "" denotes an embedded
// quote) and line comments starting with ';'.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Determine current position within text
	index int
	// Mapping from constructed S-Expressions to their spans in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// SourceMap returns the internal source map constructed during parsing.  Using
// this one can determine, for each SExp, where in the original text it
// originated.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, or produce an error.  This returns nil (and no
// error) when the end of the text is reached.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var (
		term SExp
		err  *source.SyntaxError
	)
	// Skip over any whitespace, to get the correct starting point for this term.
	p.SkipWhiteSpace()
	// Record start of this term
	start := p.index
	//
	if p.index == len(p.text) {
		return nil, nil
	}
	//
	switch p.text[p.index] {
	case ')':
		return nil, p.error("unexpected end-of-list")
	case '(':
		p.index++
		//
		var elements []SExp
		//
		if elements, err = p.parseSequence(); err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	case '|':
		var value string
		//
		if value, err = p.parseDelimited('|'); err != nil {
			return nil, err
		}
		//
		term = &Symbol{value}
	case '"':
		var value string
		//
		if value, err = p.parseDelimited('"'); err != nil {
			return nil, err
		}
		//
		term = &String{value}
	default:
		term = &Symbol{p.parseSymbol()}
	}
	// Register item in source map
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	// Done
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			// Skip comment up to (and including) end of line
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(c):
			p.index++
		default:
			return
		}
	}
}

func (p *Parser) parseSymbol() string {
	start := p.index
	//
	for p.index < len(p.text) && isSymbolLetter(p.text[p.index]) {
		p.index++
	}
	//
	return string(p.text[start:p.index])
}

// Parse a quoted symbol or string literal.  For string literals, a doubled
// delimiter denotes the delimiter itself.
func (p *Parser) parseDelimited(delimiter rune) (string, *source.SyntaxError) {
	var (
		start = p.index
		value []rune
	)
	//
	for p.index++; p.index < len(p.text); p.index++ {
		c := p.text[p.index]
		//
		if c != delimiter {
			value = append(value, c)
		} else if delimiter == '"' && p.index+1 < len(p.text) && p.text[p.index+1] == '"' {
			value = append(value, c)
			p.index++
		} else {
			p.index++
			return string(value), nil
		}
	}
	//
	p.index = start
	//
	return "", p.error("unterminated literal")
}

func (p *Parser) parseSequence() ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == ')' {
			p.index++
			return elements, nil
		}
		// Parse next element
		element, err := p.Parse()
		//
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	return p.srcfile.SyntaxError(source.NewSpan(p.index, end), msg)
}
