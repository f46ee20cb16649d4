package idgenerator

// Utility to return an increasing sequence of unique ids starting from 1.
// Ids are never randomized: building the same graph twice must yield the
// same ids.

type IDGen interface {
	NextID() uint64
	// Last returns the most recently issued id, 0 if none.
	Last() uint64
}

type idGen struct {
	nextID uint64
}

func New() IDGen {
	return &idGen{nextID: 1}
}

// Returns the nextID to assign to a node or variable
func (ig *idGen) NextID() uint64 {
	id := ig.nextID
	ig.nextID++
	return id
}

func (ig *idGen) Last() uint64 {
	return ig.nextID - 1
}
