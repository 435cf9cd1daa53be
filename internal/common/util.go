package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from the platform CSPRNG.
// A failing CSPRNG is not a recoverable condition for a crypto client,
// so the function panics instead of returning an error.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}
