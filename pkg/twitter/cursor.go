package twitter

// Cursor is an opaque pagination token. The zero value requests the first
// page. Callers must never inspect the contents; the only supported
// operations are equality comparison and the zero check.
type Cursor string

// IsZero reports whether the cursor requests the first page.
func (c Cursor) IsZero() bool {
	return c == ""
}

func (c Cursor) String() string {
	return string(c)
}
