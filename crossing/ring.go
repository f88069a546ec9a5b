package crossing

// ringStore is the shared circular slot array. It carries no pointers of
// its own: the producer writes slot wp mod capacity and the consumer
// reads slot rp mod capacity, and the conservative occupancy checks in
// the ports guarantee the two roles never target the same slot at the
// same time.
type ringStore struct {
	words    []uint64
	idxMask  uint64 // capacity - 1
	wordMask uint64 // width mask applied on write
}

func newRingStore(capacity, wordWidth int) *ringStore {
	var wordMask uint64
	if wordWidth >= 64 {
		wordMask = ^uint64(0)
	} else {
		wordMask = (uint64(1) << uint(wordWidth)) - 1
	}
	return &ringStore{
		words:    make([]uint64, capacity),
		idxMask:  uint64(capacity - 1),
		wordMask: wordMask,
	}
}

func (s *ringStore) write(ptr uint64, word uint64) {
	s.words[ptr&s.idxMask] = word & s.wordMask
}

func (s *ringStore) read(ptr uint64) uint64 {
	return s.words[ptr&s.idxMask]
}

// Mask returns the word mask so callers can pre-truncate payloads when
// comparing submitted and delivered values.
func (s *ringStore) mask() uint64 {
	return s.wordMask
}
