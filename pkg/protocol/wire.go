package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrTruncated      = errors.New("protocol: 数据不完整")
	ErrUnknownMessage = errors.New("protocol: 未知消息类型")
)

// encoder 按 protobuf 线格式追加字段，零值字段省略
type encoder struct {
	buf []byte
}

func (e *encoder) uint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
}

func (e *encoder) int(num protowire.Number, v int64) {
	e.uint(num, uint64(v))
}

// sint 坐标等可能为负的字段用 zigzag 编码
func (e *encoder) sint(num protowire.Number, v int) {
	e.uint(num, protowire.EncodeZigZag(int64(v)))
}

func (e *encoder) bool(num protowire.Number, v bool) {
	if v {
		e.uint(num, 1)
	}
}

func (e *encoder) string(num protowire.Number, s string) {
	if s == "" {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, s)
}

func (e *encoder) bytes(num protowire.Number, b []byte) {
	if len(b) == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, b)
}

// message 嵌套消息，即使为空也写出（重复字段的元素不能省略）
func (e *encoder) message(num protowire.Number, fn func(sub *encoder)) {
	var sub encoder
	fn(&sub)
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, sub.buf)
}

// field 解码出的一个字段
type field struct {
	num protowire.Number
	u   uint64
	b   []byte
}

func (f field) int() int       { return int(int64(f.u)) }
func (f field) int64() int64   { return int64(f.u) }
func (f field) sint() int      { return int(protowire.DecodeZigZag(f.u)) }
func (f field) bool() bool     { return f.u != 0 }
func (f field) string() string { return string(f.b) }

// decodeFields 逐个回调字段，未知的线类型直接跳过
func decodeFields(data []byte, fn func(f field) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
		}
		data = data[n:]

		f := field{num: num}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("%w: 字段 %d: %v", ErrTruncated, num, protowire.ParseError(n))
			}
			f.u = v
			data = data[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("%w: 字段 %d: %v", ErrTruncated, num, protowire.ParseError(n))
			}
			f.b = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("%w: 字段 %d: %v", ErrTruncated, num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
