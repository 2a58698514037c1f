package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrBadJournal = errors.New("bad journal")

// Decode читает журнал, записанный Encode
func Decode(r io.Reader) (*Journal, error) {
	// 1. Заголовок целиком
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrBadJournal, err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrBadJournal)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrBadJournal, header.Version, Version1)
	}
	if header.EntryCount < 0 {
		return nil, fmt.Errorf("%w: negative entry count", ErrBadJournal)
	}

	j := NewJournal(header.Seed, header.Start, header.TickMs)
	j.entries = make([]Entry, 0, header.EntryCount)

	// 2. Записи
	for i := 0; i < int(header.EntryCount); i++ {
		var eh EntryHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadJournal, i, err)
		}

		body := make([]byte, int(eh.ActionLen)+int(eh.TokenLen)+int(eh.PayloadLen))
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("%w: entry %d body: %v", ErrBadJournal, i, err)
		}

		e := Entry{
			At:     eh.At,
			Admin:  eh.Flags&flagAdmin != 0,
			Action: string(body[:eh.ActionLen]),
			Token:  string(body[eh.ActionLen : int(eh.ActionLen)+int(eh.TokenLen)]),
		}
		if eh.PayloadLen > 0 {
			e.Payload = json.RawMessage(body[int(eh.ActionLen)+int(eh.TokenLen):])
		}
		j.entries = append(j.entries, e)
	}

	return j, nil
}
