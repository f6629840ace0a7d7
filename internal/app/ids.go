package app

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"quiz-arena-service/internal/domain"
)

// Hasher is the collision resistant hash used to derive storage IDs.
type Hasher interface {
	Sum(data []byte) domain.ID
}

// Blake2bHasher hashes with BLAKE2b-256.
type Blake2bHasher struct{}

func (Blake2bHasher) Sum(data []byte) domain.ID {
	return domain.ID(blake2b.Sum256(data))
}

// IdentifierDeriver turns sequence numbers and ticks into IDs.
type IdentifierDeriver struct {
	hasher Hasher
}

func NewIdentifierDeriver(hasher Hasher) IdentifierDeriver {
	if hasher == nil {
		hasher = Blake2bHasher{}
	}
	return IdentifierDeriver{hasher: hasher}
}

// QuizID derives the ID a quiz is stored under from its sequence number.
func (d IdentifierDeriver) QuizID(sequence uint64) domain.ID {
	return d.hashU64(sequence)
}

// BucketID derives the deletion bucket ID for a tick.
func (d IdentifierDeriver) BucketID(tick uint64) domain.ID {
	return d.hashU64(tick)
}

func (d IdentifierDeriver) hashU64(v uint64) domain.ID {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return d.hasher.Sum(buf[:])
}
