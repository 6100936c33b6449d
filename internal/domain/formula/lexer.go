package formula

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp      // + - * / // % ** == != < <= > >= ( ) ,
	tokKeyword // and or not if else
)

type token struct {
	kind tokenKind
	text string
	pos  int // posición 1-based en la fórmula
}

var keywords = map[string]bool{
	"and": true, "or": true, "not": true, "if": true, "else": true,
}

// lex tokeniza la fórmula. Cualquier carácter fuera del alfabeto permitido
// (comillas, corchetes, llaves, punto y coma, etc.) es un error inmediato:
// ahí mueren intentos como __import__('os') u open('x').
func lex(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		pos := i + 1
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			seenDot := false
			for j < len(runes) && (unicode.IsDigit(runes[j]) || (runes[j] == '.' && !seenDot)) {
				if runes[j] == '.' {
					seenDot = true
				}
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j]), pos})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			word := string(runes[i:j])
			if keywords[word] {
				toks = append(toks, token{tokKeyword, word, pos})
			} else {
				toks = append(toks, token{tokIdent, word, pos})
			}
			i = j
		case strings.ContainsRune("+-%(),", r):
			toks = append(toks, token{tokOp, string(r), pos})
			i++
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				toks = append(toks, token{tokOp, "**", pos})
				i += 2
			} else {
				toks = append(toks, token{tokOp, "*", pos})
				i++
			}
		case r == '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				toks = append(toks, token{tokOp, "//", pos})
				i += 2
			} else {
				toks = append(toks, token{tokOp, "/", pos})
				i++
			}
		case r == '=':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{tokOp, "==", pos})
				i += 2
			} else {
				return nil, errAt(pos, "asignación no permitida; use == para comparar")
			}
		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{tokOp, "!=", pos})
				i += 2
			} else {
				return nil, errAt(pos, "operador %q no permitido", string(r))
			}
		case r == '<':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{tokOp, "<=", pos})
				i += 2
			} else {
				toks = append(toks, token{tokOp, "<", pos})
				i++
			}
		case r == '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{tokOp, ">=", pos})
				i += 2
			} else {
				toks = append(toks, token{tokOp, ">", pos})
				i++
			}
		default:
			return nil, errAt(pos, "carácter %q no permitido", string(r))
		}
	}
	toks = append(toks, token{tokEOF, "", len(runes) + 1})
	return toks, nil
}
