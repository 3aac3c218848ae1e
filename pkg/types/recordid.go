package types

import (
	"fmt"
	"strconv"
	"strings"
)

// itemIDSeparator joins a storage row ID and an item index into a composite
// record ID. Row IDs are UUIDs, which contain the separator themselves; the
// decoder disambiguates by parsing only the segment after the last one.
const itemIDSeparator = "-"

// EncodeItemID synthesizes the client-visible ID for item index of an
// object-array row.
func EncodeItemID(rowID string, index int) string {
	return fmt.Sprintf("%s%s%d", rowID, itemIDSeparator, index)
}

// DecodeRecordID splits a candidate record ID into its storage row ID and
// item index. If the segment after the last separator parses as a
// non-negative integer, the ID is treated as composite and composite is
// true; otherwise the whole string is the row ID.
//
// The decoding is heuristic by design and known to be lossy: a plain row ID
// whose final dash-separated segment is all digits (possible for a UUID) is
// misread as composite. Fixing this would need an ID grammar incompatible
// with every composite ID already handed out, so the limitation stands.
func DecodeRecordID(id string) (rowID string, index int, composite bool) {
	cut := strings.LastIndex(id, itemIDSeparator)
	if cut < 0 {
		return id, 0, false
	}
	n, err := strconv.Atoi(id[cut+len(itemIDSeparator):])
	if err != nil || n < 0 {
		return id, 0, false
	}
	return id[:cut], n, true
}
