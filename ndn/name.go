/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"hash"
	"strings"

	"github.com/named-data/ndn-cxx-sub014/utils/comparison"
)

// Name is an NDN name, an ordered sequence of components. The empty Name is the root "/".
type Name []Component

// TypeName is the TLV type of a Name.
const TypeName TLNum = 0x07

// NameFromStr parses a name from its URI representation. The "ndn:" scheme is optional.
func NameFromStr(s string) (Name, error) {
	s = strings.TrimPrefix(s, "ndn:")
	strs := strings.Split(s, "/")
	// Removing leading and trailing empty strings given by /
	if strs[0] == "" {
		strs = strs[1:]
	}
	if len(strs) > 0 && strs[len(strs)-1] == "" {
		strs = strs[:len(strs)-1]
	}
	ret := make(Name, len(strs))
	for i, str := range strs {
		c, err := ComponentFromStr(str)
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

// MustNameFromStr is like NameFromStr but panics on malformed input. Intended for constants and tests.
func MustNameFromStr(s string) Name {
	n, err := NameFromStr(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	var ret strings.Builder
	for _, c := range n {
		ret.WriteString("/")
		ret.WriteString(c.String())
	}
	return ret.String()
}

// At returns the component at the given index. Negative indexes count from the end.
// An out-of-range index returns the zero Component.
func (n Name) At(index int) Component {
	if index < -len(n) || index >= len(n) {
		return Component{}
	}
	if index < 0 {
		return n[len(n)+index]
	}
	return n[index]
}

// Prefix returns the first i components of the name. Negative values drop components from the end.
func (n Name) Prefix(i int) Name {
	if i < 0 {
		i = comparison.Max(len(n)+i, 0)
	}
	return n[:comparison.Min(i, len(n))]
}

// Append returns a new name with the given components appended.
func (n Name) Append(comps ...Component) Name {
	ret := make(Name, 0, len(n)+len(comps))
	ret = append(ret, n...)
	return append(ret, comps...)
}

// Clone returns a deep copy of a Name
func (n Name) Clone() Name {
	ret := make(Name, len(n))
	for i, c := range n {
		ret[i] = c.Clone()
	}
	return ret
}

// EncodingLength computes a Name's length after encoding **excluding** the TL prefix.
func (n Name) EncodingLength() int {
	ret := 0
	for _, c := range n {
		ret += c.EncodingLength()
	}
	return ret
}

// Bytes returns the encoded bytes of a Name
func (n Name) Bytes() []byte {
	l := n.EncodingLength()
	buf := make([]byte, TypeName.EncodingLength()+TLNum(l).EncodingLength()+l)
	pos := TypeName.EncodeInto(buf)
	pos += TLNum(l).EncodeInto(buf[pos:])
	for _, c := range n {
		pos += c.EncodeInto(buf[pos:])
	}
	return buf
}

// Hash returns the hash of the name
func (n Name) Hash() uint64 {
	h := hashPool.Get().(hash.Hash64)
	defer hashPool.Put(h)
	h.Reset()
	for _, c := range n {
		c.HashInto(h)
	}
	return h.Sum64()
}

// Compare orders names componentwise; a proper prefix sorts before the longer name.
func (n Name) Compare(rhs Name) int {
	for i := 0; i < comparison.Min(len(n), len(rhs)); i++ {
		if ret := n[i].Compare(rhs[i]); ret != 0 {
			return ret
		}
	}
	switch {
	case len(n) < len(rhs):
		return -1
	case len(n) > len(rhs):
		return 1
	default:
		return 0
	}
}

// Equal returns whether the two names are identical.
func (n Name) Equal(rhs Name) bool {
	if len(n) != len(rhs) {
		return false
	}
	for i := 0; i < len(n); i++ {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}

// IsPrefix returns whether n is a prefix of rhs. Every name is a prefix of itself.
func (n Name) IsPrefix(rhs Name) bool {
	if len(n) > len(rhs) {
		return false
	}
	for i := 0; i < len(n); i++ {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}
