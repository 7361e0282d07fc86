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
	"fmt"

	"github.com/consensys/go-boxsolve/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating expression (i.e. a
// symbol) into an expression of type T.  For example, a numeral or a variable
// access.  The boolean return indicates whether the rule applies at all.
type SymbolRule[T comparable] func(string) (T, bool, error)

// ListRule is responsible for converting a list into an expression of type T.
type ListRule[T comparable] func(*List) (T, []source.SyntaxError)

// RecursiveRule is a wrapper for translating lists whose elements are built by
// recursively reusing the enclosing translator.  Observe that the arguments
// are already translated into the correct form.
type RecursiveRule[T comparable] func(string, []T) (T, error)

// ===================================================================
// Translator
// ===================================================================

// Translator is a generic mechanism for translating S-Expressions into a
// structured form.
type Translator[T comparable] struct {
	// Rules for translating lists, indexed by their head symbol
	lists map[string]ListRule[T]
	// Rules for translating symbols, tried in order
	symbols []SymbolRule[T]
	// Maps S-Expressions to their spans in the original source file.  This is
	// used to build the new source map.
	oldSrcmap *source.Map[SExp]
	// Maps translated expressions to their spans in the original source file.
	newSrcmap *source.Map[T]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T comparable](srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		lists:     make(map[string]ListRule[T]),
		symbols:   make([]SymbolRule[T], 0),
		oldSrcmap: srcmap,
		newSrcmap: source.NewSourceMap[T](srcmap.Source()),
	}
}

// SourceMap returns the source map maintained for terms constructed by this
// translator.
func (p *Translator[T]) SourceMap() *source.Map[T] {
	return p.newSrcmap
}

// Translate a given S-Expression into the structured representation T.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	return translateSExp(p, sexp)
}

// AddListRule adds a raw list rule to this translator.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a new list rule whose arguments are translated
// first.
func (p *Translator[T]) AddRecursiveListRule(name string, t RecursiveRule[T]) {
	p.lists[name] = func(l *List) (T, []source.SyntaxError) {
		var (
			empty  T
			errors []source.SyntaxError
			args   = make([]T, len(l.Elements)-1)
		)
		// Translate arguments
		for i, s := range l.Elements[1:] {
			var errs []source.SyntaxError
			args[i], errs = translateSExp(p, s)
			errors = append(errors, errs...)
		}
		//
		if len(errors) > 0 {
			return empty, errors
		}
		// Apply constructor
		term, err := t(l.Head(), args)
		//
		if err != nil {
			return empty, p.SyntaxErrors(l, err.Error())
		}
		//
		return term, nil
	}
}

// AddSymbolRule adds a new symbol rule to this translator.
func (p *Translator[T]) AddSymbolRule(t SymbolRule[T]) {
	p.symbols = append(p.symbols, t)
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.oldSrcmap.SyntaxError(s, msg)
}

// SyntaxErrors constructs a suitable syntax error for a given S-Expression,
// wrapped in an array of size one.
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}

// ===================================================================
// Private
// ===================================================================

func translateSExp[T comparable](p *Translator[T], s SExp) (T, []source.SyntaxError) {
	var empty T
	//
	switch e := s.(type) {
	case *List:
		return translateSExpList(p, e)
	case *Symbol:
		for _, rule := range p.symbols {
			node, ok, err := rule(e.Value)
			//
			if ok && err != nil {
				return empty, p.SyntaxErrors(s, err.Error())
			} else if ok {
				map2sexp(p, node, s)
				return node, nil
			}
		}
		//
		return empty, p.SyntaxErrors(s, fmt.Sprintf("unknown symbol %s", e.String(true)))
	}
	//
	return empty, p.SyntaxErrors(s, fmt.Sprintf("unexpected %s", s.String(true)))
}

// Translate a list whose kind is determined by its first element.
func translateSExpList[T comparable](p *Translator[T], l *List) (T, []source.SyntaxError) {
	var empty T
	// Sanity check this list makes sense
	if l.Head() == "" {
		return empty, p.SyntaxErrors(l, "invalid list")
	}
	// Lookup appropriate translator
	t, ok := p.lists[l.Head()]
	//
	if !ok {
		return empty, p.SyntaxErrors(l, fmt.Sprintf("unknown operator %s", l.Head()))
	}
	//
	node, errors := t(l)
	//
	if len(errors) == 0 {
		map2sexp(p, node, l)
	}
	//
	return node, errors
}

// Add a mapping from a given item to the S-expression from which it was
// generated.
func map2sexp[T comparable](p *Translator[T], item T, sexp SExp) {
	if p.oldSrcmap.Has(sexp) && !p.newSrcmap.Has(item) {
		p.newSrcmap.Put(item, p.oldSrcmap.Get(sexp))
	}
}
