package storage

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	MagicHeader string = `SLVJ` // 4 байта
	Version1    uint32 = 1
)

// JournalFileHeader - точное представление заголовка в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type JournalFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Seed       int64   // 8 байт
	Start      int64   // 8 байт
	TickMs     int32   // 4 байта
	EntryCount int32   // 4 байта
}

// EntryHeader - заголовок каждой записи.
type EntryHeader struct {
	At         int64  // 8
	Flags      uint8  // 1
	ActionLen  uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

const flagAdmin uint8 = 1

// Encode пишет журнал в бинарном виде (little endian)
func (j *Journal) Encode(w io.Writer) error {
	entries := j.Entries()

	// 1. ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := JournalFileHeader{
		Version:    Version1,
		Seed:       j.Seed,
		Start:      j.Start,
		TickMs:     j.TickMs,
		EntryCount: int32(len(entries)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Записи
	for i, e := range entries {
		if len(e.Action) > 255 || len(e.Token) > 255 {
			return fmt.Errorf("entry %d: action or token too long", i)
		}
		if len(e.Payload) > 65535 {
			return fmt.Errorf("entry %d: payload too long: %d", i, len(e.Payload))
		}

		eh := EntryHeader{
			At:         e.At,
			ActionLen:  uint8(len(e.Action)),
			TokenLen:   uint8(len(e.Token)),
			PayloadLen: uint16(len(e.Payload)),
		}
		if e.Admin {
			eh.Flags |= flagAdmin
		}
		if err := binary.Write(w, binary.LittleEndian, &eh); err != nil {
			return err
		}

		// Динамические данные (тело)
		if _, err := io.WriteString(w, e.Action); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Token); err != nil {
			return err
		}
		if len(e.Payload) > 0 {
			if _, err := w.Write(e.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
