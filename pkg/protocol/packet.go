package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MaxPacketSize 单个数据包的最大长度（不含 4 字节长度前缀）
	MaxPacketSize = 64 * 1024
	headerSize    = 4
)

// Packet 消息外壳 { 1 type, 2 payload }
type Packet struct {
	Type    MessageType
	Payload []byte
}

// NewPacket 编码消息
func NewPacket(msg Message) *Packet {
	var e encoder
	msg.marshal(&e)
	return &Packet{Type: msg.Type(), Payload: e.buf}
}

// Decode 解码 payload
func (p *Packet) Decode() (Message, error) {
	msg, err := newMessage(p.Type)
	if err != nil {
		return nil, err
	}
	if err := msg.unmarshal(p.Payload); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", p.Type, err)
	}
	return msg, nil
}

// MarshalPacket 序列化数据包
func MarshalPacket(pkt *Packet) []byte {
	var e encoder
	e.int(1, int64(pkt.Type))
	e.bytes(2, pkt.Payload)
	return e.buf
}

// UnmarshalPacket 反序列化数据包
func UnmarshalPacket(data []byte) (*Packet, error) {
	pkt := &Packet{}
	err := decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			pkt.Type = MessageType(f.int())
		case 2:
			pkt.Payload = f.b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// Marshal 编码消息为完整数据包
func Marshal(msg Message) []byte {
	return MarshalPacket(NewPacket(msg))
}

// Unmarshal 从完整数据包解码消息
func Unmarshal(data []byte) (Message, error) {
	pkt, err := UnmarshalPacket(data)
	if err != nil {
		return nil, err
	}
	return pkt.Decode()
}

// WriteFrame 写入 4 字节大端长度前缀和数据
func WriteFrame(w io.Writer, data []byte) error {
	if len(data) > MaxPacketSize {
		return fmt.Errorf("数据包过大: %d > %d", len(data), MaxPacketSize)
	}
	buf := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	copy(buf[headerSize:], data)
	_, err := w.Write(buf)
	return err
}

// ReadFrame 读取一个带长度前缀的数据包
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > MaxPacketSize {
		return nil, fmt.Errorf("数据包过大: %d > %d", length, MaxPacketSize)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return data, nil
}
