package merge

import "github.com/mdict/slob/collate"

// cascade is the strength order the merge walks, strongest exact first,
// then the prefix variants (prefix levels are always weaker than any
// exact level). IDENTICAL is never used by the merge (§4.8).
var cascade = []collate.Strength{
	collate.Quaternary, collate.Tertiary, collate.Secondary, collate.Primary,
	collate.QuaternaryPrefix, collate.TertiaryPrefix, collate.SecondaryPrefix, collate.PrimaryPrefix,
}

func cascadeIndex(s collate.Strength) int {
	for i, c := range cascade {
		if c == s {
			return i
		}
	}

	return -1
}
