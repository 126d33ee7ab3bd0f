package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-adminview/pkg/model"
)

// Evaluator is a small, dependency-free condition interpreter.
//
// Supported syntax:
//   - field references: `item['status']`, `item["status"]`, `$item['status']`,
//     `item.company.name` or a bare `status`
//   - literals: quoted strings, numbers, `true`, `false`, `null`/`nil`
//   - comparisons: `==`, `!=` (`===` and `!==` are accepted as aliases)
//   - composition: `!`, `&&`, `||` and parentheses
//
// Item values are only ever read while evaluating, never spliced into the
// expression source. Parsed programs are cached per expression string.
type Evaluator struct {
	cache sync.Map // string -> node
}

func New() *Evaluator { return &Evaluator{} }

var defaultEvaluator = New()

// Default returns the shared evaluator.
func Default() *Evaluator { return defaultEvaluator }

// Eval parses (or reuses) the program for rule and runs it against item.
func (e *Evaluator) Eval(rule string, item model.Item) (bool, error) {
	program, err := e.Compile(rule)
	if err != nil {
		return false, err
	}
	if program == nil {
		return true, nil
	}
	return program.Eval(item), nil
}

// Program is a compiled condition.
type Program struct {
	source string
	root   node
}

// Source returns the expression the program was compiled from.
func (p *Program) Source() string { return p.source }

// Eval runs the program against item.
func (p *Program) Eval(item model.Item) bool {
	if p == nil || p.root == nil {
		return true
	}
	return truthy(p.root.eval(item))
}

// Compile parses rule into a reusable Program. Empty rules compile to nil.
func (e *Evaluator) Compile(rule string) (*Program, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}
	if cached, ok := e.cache.Load(trimmed); ok {
		return cached.(*Program), nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	root, err := parseExpression(tokens)
	if err != nil {
		return nil, err
	}
	program := &Program{source: trimmed, root: root}
	actual, _ := e.cache.LoadOrStore(trimmed, program)
	return actual.(*Program), nil
}

type tokenKind int

const (
	tokenField tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func(offset int) byte {
		if i+offset >= len(input) {
			return 0
		}
		return input[i+offset]
	}

	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			i++
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
		case ch == ')':
			i++
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
		case ch == '!':
			if peek(1) == '=' {
				i += 2
				if peek(0) == '=' {
					i++
				}
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			i++
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
		case ch == '=':
			if peek(1) != '=' {
				return nil, fmt.Errorf("visibility/expr: unexpected '=' at %d; use '=='", i)
			}
			i += 2
			if peek(0) == '=' {
				i++
			}
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
		case ch == '&':
			if peek(1) != '&' {
				return nil, fmt.Errorf("visibility/expr: unexpected '&' at %d; use '&&'", i)
			}
			i += 2
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
		case ch == '|':
			if peek(1) != '|' {
				return nil, fmt.Errorf("visibility/expr: unexpected '|' at %d; use '||'", i)
			}
			i += 2
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
		case ch == '"' || ch == '\'':
			value, next, err := readQuoted(input, i)
			if err != nil {
				return nil, err
			}
			i = next
			tokens = append(tokens, token{kind: tokenString, raw: value})
		case isDigit(ch) || ((ch == '-' || ch == '+') && isDigit(peek(1))):
			start := i
			i++
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				i++
			}
			raw := input[start:i]
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("visibility/expr: invalid number %q", raw)
			}
			tokens = append(tokens, token{kind: tokenNumber, raw: raw})
		case isIdentStart(ch):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			word := input[start:i]
			switch strings.ToLower(word) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(word)})
				continue
			case "null", "nil":
				tokens = append(tokens, token{kind: tokenNull, raw: "null"})
				continue
			}

			path, next, err := readFieldPath(input, word, i)
			if err != nil {
				return nil, err
			}
			i = next
			tokens = append(tokens, token{kind: tokenField, raw: path})
		default:
			return nil, fmt.Errorf("visibility/expr: unexpected character %q at %d", ch, i)
		}
	}

	return tokens, nil
}

// readFieldPath turns `item`, `$item`, `item.a.b` and `item['a']['b']` forms
// into a dot path. word is the identifier already consumed ending at pos.
func readFieldPath(input, word string, pos int) (string, int, error) {
	var parts []string
	root := strings.TrimPrefix(word, "$")
	switch {
	case root == "item":
	case strings.HasPrefix(root, "item."):
		parts = append(parts, strings.Split(strings.TrimPrefix(root, "item."), ".")...)
	default:
		if strings.HasPrefix(word, "$") {
			return "", pos, fmt.Errorf("visibility/expr: unknown variable %q", word)
		}
		parts = append(parts, strings.Split(root, ".")...)
	}

	for pos < len(input) && input[pos] == '[' {
		pos++
		for pos < len(input) && input[pos] == ' ' {
			pos++
		}
		if pos >= len(input) || (input[pos] != '\'' && input[pos] != '"') {
			return "", pos, errors.New("visibility/expr: field access expects a quoted key")
		}
		key, next, err := readQuoted(input, pos)
		if err != nil {
			return "", pos, err
		}
		pos = next
		for pos < len(input) && input[pos] == ' ' {
			pos++
		}
		if pos >= len(input) || input[pos] != ']' {
			return "", pos, errors.New("visibility/expr: missing closing ']'")
		}
		pos++
		parts = append(parts, key)
	}

	path := strings.Join(parts, ".")
	if strings.Trim(path, ".") == "" {
		return "", pos, fmt.Errorf("visibility/expr: %q does not reference a field", word)
	}
	return path, pos, nil
}

func readQuoted(input string, pos int) (string, int, error) {
	quote := input[pos]
	var out strings.Builder
	i := pos + 1
	for i < len(input) {
		c := input[i]
		switch {
		case c == '\\' && i+1 < len(input):
			next := input[i+1]
			switch next {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			default:
				out.WriteByte(next)
			}
			i += 2
		case c == quote:
			return out.String(), i + 1, nil
		default:
			out.WriteByte(c)
			i++
		}
	}
	return "", i, errors.New("visibility/expr: unterminated string literal")
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.'
}

// node evaluates to a plain value; boolean operators coerce with truthy.
type node interface {
	eval(item model.Item) any
}

type orNode struct{ left, right node }

func (n orNode) eval(item model.Item) any {
	return truthy(n.left.eval(item)) || truthy(n.right.eval(item))
}

type andNode struct{ left, right node }

func (n andNode) eval(item model.Item) any {
	return truthy(n.left.eval(item)) && truthy(n.right.eval(item))
}

type notNode struct{ inner node }

func (n notNode) eval(item model.Item) any {
	return !truthy(n.inner.eval(item))
}

type compareNode struct {
	left, right node
	negate      bool
}

func (n compareNode) eval(item model.Item) any {
	eq := looseEqual(n.left.eval(item), n.right.eval(item))
	if n.negate {
		return !eq
	}
	return eq
}

type fieldNode struct{ path string }

func (n fieldNode) eval(item model.Item) any {
	value, ok := item.Lookup(n.path)
	if !ok {
		return nil
	}
	return value
}

type literalNode struct{ value any }

func (n literalNode) eval(model.Item) any { return n.value }

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (node, error) {
	if len(tokens) == 0 {
		return nil, errors.New("visibility/expr: empty expression")
	}
	stream := &tokenStream{tokens: tokens}
	root, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return root, nil
}

func parseOr(stream *tokenStream) (node, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (node, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (node, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return parseComparison(stream)
}

func parseComparison(stream *tokenStream) (node, error) {
	left, err := parseOperand(stream)
	if err != nil {
		return nil, err
	}
	switch {
	case stream.match(tokenEq):
		right, err := parseOperand(stream)
		if err != nil {
			return nil, err
		}
		return compareNode{left: left, right: right}, nil
	case stream.match(tokenNeq):
		right, err := parseOperand(stream)
		if err != nil {
			return nil, err
		}
		return compareNode{left: left, right: right, negate: true}, nil
	}
	return left, nil
}

func parseOperand(stream *tokenStream) (node, error) {
	if stream.pos >= len(stream.tokens) {
		return nil, errors.New("visibility/expr: unexpected end of expression")
	}
	tok := stream.tokens[stream.pos]
	stream.pos++
	switch tok.kind {
	case tokenLParen:
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	case tokenField:
		return fieldNode{path: tok.raw}, nil
	case tokenString:
		return literalNode{value: tok.raw}, nil
	case tokenNumber:
		f, _ := strconv.ParseFloat(tok.raw, 64)
		return literalNode{value: f}, nil
	case tokenBool:
		return literalNode{value: tok.raw == "true"}, nil
	case tokenNull:
		return literalNode{value: nil}, nil
	default:
		return nil, fmt.Errorf("visibility/expr: expected operand, got %q", tok.raw)
	}
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	}
	if f, ok := model.Number(value); ok {
		return f != 0
	}
	return !model.IsEmpty(value)
}

// looseEqual compares with the same coercions the admin templates rely on:
// null equals null, false and the empty string; a boolean side coerces the
// other to bool; finite numeric sides compare as numbers and everything else
// compares as strings.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return nullEqual(a, b)
	}
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool {
		return truthy(a) == truthy(b)
	}
	if af, ok := model.Number(a); ok {
		if bf, ok := model.Number(b); ok {
			return af == bf
		}
	}
	return model.Stringify(a) == model.Stringify(b)
}

func nullEqual(a, b any) bool {
	other := a
	if a == nil {
		other = b
	}
	switch typed := other.(type) {
	case nil:
		return true
	case bool:
		return !typed
	case string:
		return typed == ""
	}
	return false
}
