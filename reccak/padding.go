package reccak

// BlockSize is the number of message bytes absorbed per permutation: ten
// big-endian 16-bit words, XORed into rows 0 and 1 of the state.
const BlockSize = 20

// PaddingDelimiter is appended right after the message.
const PaddingDelimiter = 0x80

// ApplyPadding returns a copy of message framed into whole blocks: the
// delimiter byte followed by zeros up to the next multiple of BlockSize. At
// least one byte is always added, so a message that already fills its last
// block gets a full extra block. The caller's slice is never modified.
func ApplyPadding(message []byte) []byte {
	blocks := len(message)/BlockSize + 1
	padded := make([]byte, blocks*BlockSize)
	copy(padded, message)
	padded[len(message)] = PaddingDelimiter
	return padded
}
