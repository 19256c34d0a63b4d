/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package vthread

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// Kind tags one element of a Tuple, matching spec.md §4.7's wire tags.
type Kind byte

const (
	KindNil Kind = iota
	KindFalse
	KindTrue
	KindNumber
	KindString
	KindHandle
)

// Handle is the interface a resource wrapper (vfile.File, vsocket.Socket,
// vshm.SharedMem, ...) must satisfy to travel through a Tuple: the
// codec only ever touches the canonical RefObj header and a type tag,
// never the wrapper's private fields (spec.md §4.7: "type identifier +
// canonical RefObj pointer").
type Handle interface {
	Ref() *refobj.Ref
	HandleType() string
}

// Value is one element of a packed/unpacked Tuple.
type Value struct {
	Kind   Kind
	Num    float64
	Str    string
	Handle Handle
}

func Nil() Value { return Value{Kind: KindNil} }

func Bool(b bool) Value {
	if b {
		return Value{Kind: KindTrue}
	}
	return Value{Kind: KindFalse}
}

func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }

func FromHandle(h Handle) Value {
	return Value{Kind: KindHandle, Handle: h}
}

// wireElem is the CBOR-serializable shadow of one Value: scalar kinds
// carry their payload inline, a handle kind carries an index into the
// Tuple's out-of-band handles slice (pointers do not survive encoding,
// so the "canonical RefObj pointer" spec.md describes is threaded
// alongside the wire bytes rather than inside them — valid because a
// Tuple only ever travels between threads in the same process).
type wireElem struct {
	Tag   Kind
	Num   float64 `cbor:",omitempty"`
	Str   string  `cbor:",omitempty"`
	Index int     `cbor:",omitempty"`
}

// Tuple is a packed heterogeneous value list ready for Queue transport
// (spec.md §4.7). wire is the CBOR-framed scalar payload; handles is
// the parallel out-of-band slice of resource handles referenced by
// wire's KindHandle entries' Index field.
type Tuple struct {
	wire    []byte
	handles []Handle
}

// Pack encodes values into a Tuple. Every handle value has its RefObj
// incremented at pack time (spec.md §4.7: "resource handles are packed
// by incrementing their refcount at pack time"); if the returned Tuple
// is never unpacked, those increments are never undone — an
// intentional, documented leak limited to abnormal shutdown paths, not
// a bug (spec.md §4.7 explicitly accepts this).
func Pack(values ...Value) (*Tuple, status.Status) {
	elems := make([]wireElem, len(values))
	var handles []Handle

	for i, v := range values {
		switch v.Kind {
		case KindNil, KindFalse, KindTrue:
			elems[i] = wireElem{Tag: v.Kind}
		case KindNumber:
			elems[i] = wireElem{Tag: v.Kind, Num: v.Num}
		case KindString:
			elems[i] = wireElem{Tag: v.Kind, Str: v.Str}
		case KindHandle:
			if v.Handle == nil {
				return nil, status.New(status.EINVAL, "nil handle in tuple element")
			}
			v.Handle.Ref().Incref()
			elems[i] = wireElem{Tag: v.Kind, Index: len(handles)}
			handles = append(handles, v.Handle)
		default:
			return nil, status.Newf(status.EINVAL, "unknown tuple value kind %d", v.Kind)
		}
	}

	buf, err := cbor.Marshal(elems)
	if err != nil {
		return nil, status.New(status.EINVAL, "tuple encode failed: "+err.Error())
	}
	return &Tuple{wire: buf, handles: handles}, status.Ok()
}

// Unpack decodes a Tuple back into its Values. String values are
// copied out of the wire buffer (spec.md §4.7); handle values are
// returned as-is, their refcount ownership transferring from the
// Tuple to the caller — the increment Pack performed is not undone
// here, it is handed off.
func Unpack(t *Tuple) ([]Value, status.Status) {
	if t == nil {
		return nil, status.New(status.EINVAL, "nil tuple")
	}
	var elems []wireElem
	if err := cbor.Unmarshal(t.wire, &elems); err != nil {
		return nil, status.New(status.EINVAL, "tuple decode failed: "+err.Error())
	}

	values := make([]Value, len(elems))
	for i, e := range elems {
		switch e.Tag {
		case KindNil, KindFalse, KindTrue:
			values[i] = Value{Kind: e.Tag}
		case KindNumber:
			values[i] = Value{Kind: e.Tag, Num: e.Num}
		case KindString:
			values[i] = Value{Kind: e.Tag, Str: string([]byte(e.Str))}
		case KindHandle:
			if e.Index < 0 || e.Index >= len(t.handles) {
				return nil, status.New(status.EINVAL, "tuple handle index out of range")
			}
			values[i] = Value{Kind: e.Tag, Handle: t.handles[e.Index]}
		default:
			return nil, status.Newf(status.EINVAL, "unknown wire tag %d", e.Tag)
		}
	}
	return values, status.Ok()
}
