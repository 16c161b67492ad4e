package buffer

// Trailer is the metadata block stored in the last TrailerSize bytes:
// eight bytes of padding, the root position at +8 and the typed flag at +12.
type Trailer struct {
	Root uint32 // position of the root record
	IsTS bool   // the producer wrote the typed flavor
}

const (
	trailerRootOffset = 8
	trailerTSOffset   = 12
)

func (b *Buffer) trailerPos() uint32 {
	return uint32(len(b.data) - TrailerSize)
}

// Trailer reads the metadata block.
func (b *Buffer) Trailer() Trailer {
	pos := b.trailerPos()
	return Trailer{
		Root: b.U32(pos + trailerRootOffset),
		IsTS: b.Bool(pos + trailerTSOffset),
	}
}

// SetTrailer writes the metadata block, zeroing the padding.
func (b *Buffer) SetTrailer(t Trailer) {
	pos := b.trailerPos()
	clear(b.data[pos:])
	b.PutU32(pos+trailerRootOffset, t.Root)
	b.PutBool(pos+trailerTSOffset, t.IsTS)
}

// RootSlot is the position of the root pointer, the word the producer
// fills once the tree is complete.
func (b *Buffer) RootSlot() uint32 {
	return b.trailerPos() + trailerRootOffset
}

// DataLimit is the first position belonging to the trailer.
// Producers must not write data at or past it.
func (b *Buffer) DataLimit() uint32 {
	return b.trailerPos()
}
