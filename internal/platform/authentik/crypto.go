package authentik

import (
	"context"
	"fmt"
)

const certificateKeyPairsPath = "/api/v3/crypto/certificatekeypairs/"

// SigningKey returns the first certificate key pair, which Authentik
// provisions on install and uses as the default token signing key.
func (c *Client) SigningKey(ctx context.Context) (CertificateKeyPair, error) {
	keys, err := listResources[CertificateKeyPair](ctx, c.api, certificateKeyPairsPath)
	if err != nil {
		return CertificateKeyPair{}, fmt.Errorf("failed to list certificate key pairs: %w", err)
	}
	if len(keys) == 0 {
		return CertificateKeyPair{}, fmt.Errorf("no signing key found")
	}
	return keys[0], nil
}
