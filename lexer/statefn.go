package lexer

import (
	"strings"
	"unicode"

	"github.com/MattTheNub/fend/value"
)

type stateFn func(*Lexer) stateFn

const digits = "0123456789"

// Currency symbols lex as standalone identifiers so the parser can
// treat them as prefix units.
const currencyRunes = "$£€¥"

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func lexText(l *Lexer) stateFn {
	if l.atEOF {
		return l.emit(TokEOF)
	}

	// List of runes that just advance one and emit a token.
	singles := map[rune]TokenType{
		'(':  TokParenLeft,
		')':  TokParenRight,
		'+':  TokAdd,
		'-':  TokSub,
		'*':  TokMul,
		'/':  TokDiv,
		'%':  TokMod,
		'^':  TokPow,
		'!':  TokFactorial,
		'\\': TokBackslash,
		';':  TokSemicolon,
	}

	switch r := l.peek(); {
	case r == 0:
		return l.emit(TokEOF)
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		l.acceptRun(" \t\n\r")
		return l.emit(TokWhitespace)
	case r >= '0' && r <= '9':
		return lexNumber
	case r == '.':
		l.next()
		if p := l.peek(); p >= '0' && p <= '9' {
			l.backup()
			return lexNumber
		}
		return l.emit(TokDot)
	case r == '"', r == '\'':
		return lexString(r)
	case r == '=':
		l.next()
		if l.peek() == '>' {
			l.next()
			return l.emit(TokArrow)
		}
		return l.emit(TokEquals)
	case strings.ContainsRune(currencyRunes, r):
		l.next()
		return l.emit(TokIdentifier)
	case isIdentStart(r):
		return lexIdentifier
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		return l.errorf("unexpected character: %q", r)
	}
}

func lexNumber(l *Lexer) stateFn {
	l.acceptRun(digits)
	if l.peek() == '.' {
		l.next()
		l.acceptRun(digits)
	}
	if l.accept("eE") {
		l.accept("+-")
		if !l.acceptRun(digits) {
			return l.errorf("missing digits in exponent")
		}
	}
	tok := l.thisToken(TokNumber)
	num, err := value.ParseNumber(tok.Value)
	if err != nil {
		return l.errorf("invalid number %q", tok.Value)
	}
	tok.Num = num
	return l.emitToken(tok)
}

var stringUnescaper = strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\\`, `\`)

func lexString(kind rune) stateFn {
	return func(l *Lexer) stateFn {
		l.accept(string(kind))
		for {
			r := l.next()
			if r == 0 {
				return l.errorf("unclosed %q", kind)
			}
			if r == kind {
				break
			}
			if r == '\\' {
				l.next()
			}
		}
		tok := l.thisToken(TokString)
		tok.Value = strings.TrimSuffix(strings.TrimPrefix(tok.Value, string(kind)), string(kind))
		tok.Value = stringUnescaper.Replace(tok.Value)
		return l.emitToken(tok)
	}
}

func lexIdentifier(l *Lexer) stateFn {
	l.acceptFunc(isIdentRune)
	tok := l.thisToken(TokIdentifier)
	// Keywords take over their identifier spelling.
	switch tok.Value {
	case "to":
		tok.Type = TokTo
	case "of":
		tok.Type = TokOf
	}
	return l.emitToken(tok)
}
