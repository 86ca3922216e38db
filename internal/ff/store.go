package ff

import "time"

// MaxEffects is the number of effects the store holds and the value the
// virtual gamepad advertises as ff_effects_max.
const MaxEffects = 32

// StoredEffect is an uploaded effect reduced to what playback needs.
type StoredEffect struct {
	KernelID  int16
	Type      uint16
	Magnitude uint32
	Duration  time.Duration
}

type slot struct {
	used   bool
	effect StoredEffect
}

// Store is a fixed table of uploaded effects keyed by kernel effect id.
type Store struct {
	slots [MaxEffects]slot
}

func NewStore() *Store {
	return &Store{}
}

// Put stores e. An older entry with the same kernel id is replaced; when the
// table is full the entry in slot 0 is evicted. The returned ids are the
// effects that left the table and must be released on the kernel side.
func (s *Store) Put(e StoredEffect) []int16 {
	var released []int16
	if i := s.index(e.KernelID); i >= 0 {
		released = append(released, s.slots[i].effect.KernelID)
		s.slots[i] = slot{}
	}

	target := -1
	for i := range s.slots {
		if !s.slots[i].used {
			target = i
			break
		}
	}
	if target < 0 {
		target = 0
		released = append(released, s.slots[0].effect.KernelID)
	}

	s.slots[target] = slot{used: true, effect: e}
	return released
}

// Get returns a copy of the effect with the given kernel id.
func (s *Store) Get(id int16) (StoredEffect, bool) {
	if i := s.index(id); i >= 0 {
		return s.slots[i].effect, true
	}
	return StoredEffect{}, false
}

// Remove frees the slot holding id.
func (s *Store) Remove(id int16) bool {
	if i := s.index(id); i >= 0 {
		s.slots[i] = slot{}
		return true
	}
	return false
}

// Len returns the number of stored effects.
func (s *Store) Len() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].used {
			n++
		}
	}
	return n
}

func (s *Store) index(id int16) int {
	for i := range s.slots {
		if s.slots[i].used && s.slots[i].effect.KernelID == id {
			return i
		}
	}
	return -1
}
