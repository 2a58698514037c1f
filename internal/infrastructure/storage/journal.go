package storage

import (
	"encoding/json"

	"github.com/sasha-s/go-deadlock"
)

// Entry - одна выполненная команда. At - время тика, в котором она выполнилась.
type Entry struct {
	At      int64
	Admin   bool   // отладочная команда (GRANT, TELEPORT)
	Action  string // имя действия как в протоколе
	Token   string
	Payload json.RawMessage
}

// Journal - журнал команд сессии. Вместе с seed и сеткой тиков его достаточно,
// чтобы детерминированно проиграть симуляцию заново.
// Живет в памяти, пишет симуляция, читает /debug/journal.
type Journal struct {
	Seed   int64
	Start  int64 // время симуляции при создании сервиса
	TickMs int32

	mu      deadlock.Mutex
	entries []Entry
}

func NewJournal(seed, start int64, tickMs int32) *Journal {
	return &Journal{Seed: seed, Start: start, TickMs: tickMs}
}

// Record добавляет команду в конец журнала
func (j *Journal) Record(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
}

// Entries - копия записей в порядке выполнения
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
