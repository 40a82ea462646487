package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/subratsf/amfstore/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec:"
	documentIDSeq        = "docseq"
)

// makeDocumentKey generates the key of a document record.
// Format: prefix:sequence, with the sequence in BigEndian order so that
// iteration returns records in registration order.
func makeDocumentKey(id core.StoreID) ([]byte, error) {
	seq, ok := id.Sequence()
	if !ok {
		return nil, fmt.Errorf("%w: store id %q", core.ErrInvalidArgument, id)
	}
	buf := make([]byte, len(documentRecordPrefix)+8)
	offset := copy(buf, documentRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf, nil
}
