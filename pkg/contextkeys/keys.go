package contextkeys

// Custom key type to avoid collisions with other context values.
type contextKey string

// RawBodyContextKey is the key under which the transport middleware stores
// the exact request body bytes as received on the wire, before JSON parsing.
// Signature verification must use these bytes, never a re-serialized form.
const RawBodyContextKey = contextKey("raw_body")

// String returns the key as a plain string for gin's context map.
func (k contextKey) String() string {
	return string(k)
}
