package signer

// Signer interface for signing published index files
type Signer interface {
	// SignDetached creates a detached ASCII-armored signature
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}
