/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/cespare/xxhash"
)

// Name component types.
const (
	TypeInvalidComponent                TLNum = 0x00
	TypeImplicitSha256DigestComponent   TLNum = 0x01
	TypeParametersSha256DigestComponent TLNum = 0x02
	TypeGenericNameComponent            TLNum = 0x08
	TypeKeywordNameComponent            TLNum = 0x20
	TypeSegmentNameComponent            TLNum = 0x32
	TypeByteOffsetNameComponent         TLNum = 0x34
	TypeVersionNameComponent            TLNum = 0x36
	TypeTimestampNameComponent          TLNum = 0x38
	TypeSequenceNumNameComponent        TLNum = 0x3a
)

type compValFmt int

const (
	compValFmtText compValFmt = iota
	compValFmtDec
	compValFmtHex
)

type componentConvention struct {
	typ  TLNum
	name string
	vFmt compValFmt
}

var (
	compConvByType = map[TLNum]*componentConvention{
		TypeImplicitSha256DigestComponent:   {TypeImplicitSha256DigestComponent, "sha256digest", compValFmtHex},
		TypeParametersSha256DigestComponent: {TypeParametersSha256DigestComponent, "params-sha256", compValFmtHex},
		TypeSegmentNameComponent:            {TypeSegmentNameComponent, "seg", compValFmtDec},
		TypeByteOffsetNameComponent:         {TypeByteOffsetNameComponent, "off", compValFmtDec},
		TypeVersionNameComponent:            {TypeVersionNameComponent, "v", compValFmtDec},
		TypeTimestampNameComponent:          {TypeTimestampNameComponent, "t", compValFmtDec},
		TypeSequenceNumNameComponent:        {TypeSequenceNumNameComponent, "seq", compValFmtDec},
	}
	compConvByStr map[string]*componentConvention

	hashPool = sync.Pool{
		New: func() interface{} { return xxhash.New() },
	}
)

func init() {
	compConvByStr = make(map[string]*componentConvention, len(compConvByType))
	for _, c := range compConvByType {
		compConvByStr[c.name] = c
	}
}

// Component is an NDN name component. Components are treated as immutable once
// they are part of a Name handed to a table.
type Component struct {
	Typ TLNum
	Val []byte
}

// NewGenericComponent creates a GenericNameComponent holding the given text.
func NewGenericComponent(val string) Component {
	return Component{Typ: TypeGenericNameComponent, Val: []byte(val)}
}

// NewNumberComponent creates a component of the given type holding a nonNegativeInteger.
func NewNumberComponent(typ TLNum, val uint64) Component {
	return Component{Typ: typ, Val: Nat(val).Bytes()}
}

// NewSegmentComponent creates a SegmentNameComponent.
func NewSegmentComponent(seg uint64) Component {
	return NewNumberComponent(TypeSegmentNameComponent, seg)
}

// NewVersionComponent creates a VersionNameComponent.
func NewVersionComponent(v uint64) Component {
	return NewNumberComponent(TypeVersionNameComponent, v)
}

// NewSequenceNumComponent creates a SequenceNumNameComponent.
func NewSequenceNumComponent(seq uint64) Component {
	return NewNumberComponent(TypeSequenceNumNameComponent, seq)
}

func isLegalCompText(b byte) bool {
	// only ASCII bytes are printed as is
	return b < 0x80 && (unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)) || b == '-' || b == '_' || b == '.' || b == '~')
}

func (c Component) String() string {
	vFmt := compValFmtText
	tName := ""
	if conv, ok := compConvByType[c.Typ]; ok {
		vFmt = conv.vFmt
		tName = conv.name + "="
	} else if c.Typ != TypeGenericNameComponent {
		tName = strconv.FormatUint(uint64(c.Typ), 10) + "="
	}

	var vText strings.Builder
	switch vFmt {
	case compValFmtDec:
		if x, ok := ParseNat(c.Val); ok {
			vText.WriteString(strconv.FormatUint(uint64(x), 10))
		} else {
			// Not a valid number, fall back to the generic form
			return strconv.FormatUint(uint64(c.Typ), 10) + "=" + escapeComponentText(c.Val)
		}
	case compValFmtHex:
		for _, b := range c.Val {
			vText.WriteString(fmt.Sprintf("%02x", b))
		}
	case compValFmtText:
		vText.WriteString(escapeComponentText(c.Val))
	}
	return tName + vText.String()
}

func escapeComponentText(val []byte) string {
	var ret strings.Builder
	nonPeriod := false
	for _, b := range val {
		if isLegalCompText(b) {
			ret.WriteByte(b)
		} else {
			ret.WriteString(fmt.Sprintf("%%%02X", b))
		}
		nonPeriod = nonPeriod || b != '.'
	}
	if !nonPeriod {
		// Components made only of periods carry three extra periods in URI form
		return "..." + ret.String()
	}
	return ret.String()
}

func parseCompTypeFromStr(s string) (TLNum, compValFmt, error) {
	if len(s) > 0 && unicode.IsLetter(rune(s[0])) {
		if conv, ok := compConvByStr[s]; ok {
			return conv.typ, conv.vFmt, nil
		}
		return 0, 0, ErrFormat{"unknown component type: " + s}
	}
	typInt, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, 0, ErrFormat{"invalid component type: " + s}
	}
	return TLNum(typInt), compValFmtText, nil
}

// ComponentFromStr parses a component from its URI representation.
func ComponentFromStr(s string) (Component, error) {
	var err error
	strs := strings.Split(s, "=")
	if len(strs) > 2 {
		return Component{}, ErrFormat{"too many '=' in component: " + s}
	}
	valStr := strs[len(strs)-1]
	typ := TypeGenericNameComponent
	vFmt := compValFmtText
	if len(strs) == 2 {
		typ, vFmt, err = parseCompTypeFromStr(strs[0])
		if err != nil {
			return Component{}, err
		}
		if typ <= TypeInvalidComponent || typ > 0xffff {
			return Component{}, ErrFormat{"invalid component type: " + strs[0]}
		}
	}

	var val []byte
	switch vFmt {
	case compValFmtDec:
		x, err := strconv.ParseUint(valStr, 10, 64)
		if err != nil {
			return Component{}, ErrFormat{"invalid decimal component value: " + valStr}
		}
		val = Nat(x).Bytes()
	case compValFmtHex:
		if len(valStr)%2 != 0 {
			return Component{}, ErrFormat{"invalid hexadecimal component value: " + valStr}
		}
		val = make([]byte, len(valStr)/2)
		for i := range val {
			b, err := strconv.ParseUint(valStr[i*2:i*2+2], 16, 8)
			if err != nil {
				return Component{}, ErrFormat{"invalid hexadecimal component value: " + valStr}
			}
			val[i] = byte(b)
		}
	case compValFmtText:
		if val, err = unescapeComponentText(valStr); err != nil {
			return Component{}, err
		}
	}
	return Component{Typ: typ, Val: val}, nil
}

func unescapeComponentText(valStr string) ([]byte, error) {
	if strings.Trim(valStr, ".") == "" && len(valStr) > 0 {
		if len(valStr) < 3 {
			return nil, ErrFormat{"illegal component of periods: " + valStr}
		}
		return []byte(valStr[3:]), nil
	}
	val := make([]byte, 0, len(valStr))
	for i := 0; i < len(valStr); {
		switch {
		case isLegalCompText(valStr[i]):
			val = append(val, valStr[i])
			i++
		case valStr[i] == '%' && i+2 < len(valStr):
			v, err := strconv.ParseUint(valStr[i+1:i+3], 16, 8)
			if err != nil {
				return nil, ErrFormat{"invalid component value: " + valStr}
			}
			val = append(val, byte(v))
			i += 3
		case valStr[i] != '%' && valStr[i] != '/' && valStr[i] != '\\':
			// Gracefully accept other printable characters
			val = append(val, valStr[i])
			i++
		default:
			return nil, ErrFormat{"invalid component value: " + valStr}
		}
	}
	return val, nil
}

// EncodingLength returns the length of the TLV encoding of the component.
func (c Component) EncodingLength() int {
	l := len(c.Val)
	return c.Typ.EncodingLength() + TLNum(l).EncodingLength() + l
}

// EncodeInto writes the TLV encoding of the component into buf.
func (c Component) EncodeInto(buf []byte) int {
	p1 := c.Typ.EncodeInto(buf)
	p2 := TLNum(len(c.Val)).EncodeInto(buf[p1:])
	copy(buf[p1+p2:], c.Val)
	return p1 + p2 + len(c.Val)
}

// Bytes returns the TLV encoding of the component.
func (c Component) Bytes() []byte {
	buf := make([]byte, c.EncodingLength())
	c.EncodeInto(buf)
	return buf
}

// Compare orders components by the byte-lexicographic order of their TLV encodings.
func (c Component) Compare(rhs Component) int {
	return bytes.Compare(c.Bytes(), rhs.Bytes())
}

// Equal returns whether the two components are identical.
func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	val := make([]byte, len(c.Val))
	copy(val, c.Val)
	return Component{Typ: c.Typ, Val: val}
}

// HashInto feeds the TLV encoding of the component into h.
func (c Component) HashInto(h hash.Hash) {
	h.Write(c.Bytes())
}

// Hash returns the xxhash of the TLV encoding of the component.
func (c Component) Hash() uint64 {
	return xxhash.Sum64(c.Bytes())
}
