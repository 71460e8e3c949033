package ebnf

import (
	"hash/fnv"
)

// Equal compares expressions structurally. Concat is ordered; Or is an
// unordered pair. Two nil expressions are equal.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Value == b.Value
	case *Regex:
		b, ok := b.(*Regex)
		return ok && a.Value == b.Value
	case *Reference:
		b, ok := b.(*Reference)
		return ok && a.Symbol == b.Symbol
	case *Concat:
		b, ok := b.(*Concat)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Or:
		b, ok := b.(*Or)
		return ok && (Equal(a.Left, b.Left) && Equal(a.Right, b.Right) ||
			Equal(a.Left, b.Right) && Equal(a.Right, b.Left))
	case *Optional:
		b, ok := b.(*Optional)
		return ok && Equal(a.Expr, b.Expr)
	case *Repeat:
		b, ok := b.(*Repeat)
		return ok && Equal(a.Expr, b.Expr)
	}
	return false
}

const (
	hashNil uint64 = iota + 0x9e3779b97f4a7c15
	hashLiteral
	hashRegex
	hashReference
	hashConcat
	hashOr
	hashOptional
	hashRepeat
)

// Hash is a structural hash consistent with Equal.
func Hash(e Expr) uint64 {
	switch e := e.(type) {
	case nil:
		return hashNil
	case *Literal:
		return mix(hashLiteral, hashString(e.Value))
	case *Regex:
		return mix(hashRegex, hashString(e.Value))
	case *Reference:
		return mix(hashReference, hashString(e.Symbol))
	case *Concat:
		return mix(mix(hashConcat, Hash(e.Left)), Hash(e.Right))
	case *Or:
		// symmetric in its operands
		return mix(hashOr, Hash(e.Left)+Hash(e.Right))
	case *Optional:
		return mix(hashOptional, Hash(e.Expr))
	case *Repeat:
		return mix(hashRepeat, Hash(e.Expr))
	}
	return 0
}

// HashSequence is an order-sensitive hash that folds in each symbol's own
// hash.
func HashSequence(seq []string) uint64 {
	h := uint64(len(seq))
	for _, s := range seq {
		h = mix(h, hashString(s))
	}
	return h
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func mix(h, v uint64) uint64 {
	h ^= v + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h
}
