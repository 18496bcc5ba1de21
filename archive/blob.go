package archive

// Blob is an opaque, stable handle for one content item: a lookup key,
// the (bin, item) id that locates its content, and an optional in-content
// fragment anchor. Equality compares all four fields (§3).
type Blob struct {
	owner    *Archive
	id       string
	Key      string
	Fragment string
}

// ID returns the blob's "bin-item" identifier.
func (b *Blob) ID() string { return b.id }

// Owner returns the archive this blob belongs to.
func (b *Blob) Owner() *Archive { return b.owner }

// Equal reports whether b and other identify the same content item with
// the same key and fragment in the same archive.
func (b *Blob) Equal(other *Blob) bool {
	if other == nil {
		return false
	}

	return b.owner == other.owner && b.id == other.id && b.Key == other.Key && b.Fragment == other.Fragment
}

// Content returns b's decompressed content and declared content type.
func (b *Blob) Content() (*Content, error) {
	return b.owner.GetContent(b.id)
}

// DedupKey returns the string this blob's uniqueness is tracked by across
// a multi-archive merge: "<archive-uuid>:<blob-id>#<fragment>" (§4.8).
func (b *Blob) DedupKey() string {
	return b.owner.ID() + ":" + b.id + "#" + b.Fragment
}

// Content is a resolved blob body: its declared content type and a
// read-only byte view aliasing the owning archive's bin cache (§3).
type Content struct {
	Type string
	Data []byte
}
