package sigtext

import "unicode/utf8"

// scanner is a byte cursor over a single line of signature text.
type scanner struct {
	src string
	off int
}

func (s *scanner) eof() bool {
	return s.off >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.off]
}

func (s *scanner) bump() byte {
	if s.eof() {
		return 0
	}
	b := s.src[s.off]
	s.off++
	return b
}

func (s *scanner) eat(b byte) bool {
	if !s.eof() && s.src[s.off] == b {
		s.off++
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.off++
		default:
			return
		}
	}
}

func (s *scanner) next() token {
	s.skipSpace()
	start := s.off
	if s.eof() {
		return token{kind: tokEOF, off: start}
	}
	b := s.peek()
	switch {
	case isIdentStart(b):
		s.bump()
		for isIdentContinue(s.peek()) {
			s.bump()
		}
		return s.tok(tokIdent, start)
	case isDigit(b):
		s.bump()
		for isDigit(s.peek()) {
			s.bump()
		}
		return s.tok(tokInt, start)
	case b == '%':
		s.bump()
		for isIdentContinue(s.peek()) {
			s.bump()
		}
		if s.off-start == 1 {
			return s.tok(tokInvalid, start)
		}
		return s.tok(tokReg, start)
	case b == '(':
		s.bump()
		return s.tok(tokLParen, start)
	case b == ')':
		s.bump()
		return s.tok(tokRParen, start)
	case b == '[':
		s.bump()
		return s.tok(tokLBrack, start)
	case b == ']':
		s.bump()
		return s.tok(tokRBrack, start)
	case b == ',':
		s.bump()
		return s.tok(tokComma, start)
	case b == '-':
		s.bump()
		if s.eat('>') {
			return s.tok(tokArrow, start)
		}
		return s.tok(tokInvalid, start)
	default:
		// Consume a whole rune so the caret covers it.
		_, sz := utf8.DecodeRuneInString(s.src[s.off:])
		s.off += sz
		return s.tok(tokInvalid, start)
	}
}

func (s *scanner) tok(k tokenKind, start int) token {
	return token{kind: k, off: start, text: s.src[start:s.off]}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
