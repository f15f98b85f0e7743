// Package bluehash implements BlueHash, a three-round mixing hash
// with a fixed, public output width.
//
// Each round is a pure function of the running state, a round constant
// and one chunk of the message. The message is split into Rounds contiguous
// chunks of equal width (the last ones possibly shorter or empty), and the
// initial state binds the digest size and the total message length.
package bluehash

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// Rounds is the number of mixing rounds.
	Rounds = 3
	// StateSize is the width of the running state in bytes.
	StateSize = 64
	// RoundConstantSize is the width of a round constant in bytes.
	RoundConstantSize = 64

	ivTag            = "BlueHash/iv"
	roundConstantTag = "BlueHash/round-constant"
)

// DigestSize is the output width of BlueHash in bytes.
type DigestSize int

const (
	Bit128 DigestSize = 16
	Bit256 DigestSize = 32
	Bit512 DigestSize = 64
)

// Valid returns true if s is one of the supported digest sizes.
func (s DigestSize) Valid() bool {
	switch s {
	case Bit128, Bit256, Bit512:
		return true
	}
	return false
}

// String implements the [fmt.Stringer] interface.
func (s DigestSize) String() string {
	return fmt.Sprintf("Bit%d", 8*int(s))
}

// State is the running state of BlueHash.
type State [StateSize]byte

// RoundConstant is a per-round key.
type RoundConstant [RoundConstantSize]byte

var roundConstants = deriveRoundConstants()

func deriveRoundConstants() [Rounds]RoundConstant {
	var rc [Rounds]RoundConstant
	for i := range rc {
		xof := sha3.NewShake256()
		xof.Write([]byte(roundConstantTag))
		xof.Write([]byte{byte(i)})
		xof.Read(rc[i][:])
	}
	return rc
}

// RoundConstantAt returns the constant of round i.
// Panics if i is not in [0, Rounds).
func RoundConstantAt(i int) RoundConstant {
	return roundConstants[i]
}

// InitialState returns the state BlueHash starts from
// for a message of msgLen bytes and the given digest size.
func InitialState(size DigestSize, msgLen int) State {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(msgLen))

	xof := sha3.NewShake256()
	xof.Write([]byte(ivTag))
	xof.Write([]byte{byte(size)})
	xof.Write(lenBuf[:])

	var s State
	xof.Read(s[:])
	return s
}

// Round mixes chunk into state under rc.
// It computes BLAKE2b-512 keyed with rc over state || uint64be(len(chunk)) || chunk.
func Round(state State, rc RoundConstant, chunk []byte) State {
	h, err := blake2b.New512(rc[:])
	if err != nil {
		panic(err)
	}

	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(chunk)))

	h.Write(state[:])
	h.Write(lenBuf[:])
	h.Write(chunk)

	var sOut State
	h.Sum(sOut[:0])
	return sOut
}

// Split returns the chunk of msg absorbed in each round.
// Chunks alias msg.
func Split(msg []byte) [Rounds][]byte {
	var chunks [Rounds][]byte
	width := (len(msg) + Rounds - 1) / Rounds
	for i := 0; i < Rounds; i++ {
		lo := min(i*width, len(msg))
		hi := min((i+1)*width, len(msg))
		chunks[i] = msg[lo:hi]
	}
	return chunks
}

// Sum returns the BlueHash digest of msg.
// Panics if size is not valid.
func Sum(size DigestSize, msg []byte) []byte {
	if !size.Valid() {
		panic(fmt.Sprintf("invalid digest size %d", size))
	}

	state := InitialState(size, len(msg))
	chunks := Split(msg)
	for i := 0; i < Rounds; i++ {
		state = Round(state, roundConstants[i], chunks[i])
	}

	out := make([]byte, size)
	copy(out, state[:size])
	return out
}

// Sum256 returns the 256-bit BlueHash digest of msg.
func Sum256(msg []byte) [32]byte {
	var out [32]byte
	copy(out[:], Sum(Bit256, msg))
	return out
}
