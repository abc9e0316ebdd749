package cloud

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/crane"
	"github.com/google/go-containerregistry/pkg/name"
)

// RegistryResolver resolves container image digests from an OCI registry.
// Swappable for testing.
type RegistryResolver struct {
	digest func(ref string) (string, error)
}

// NewRegistryResolver using crane against the live registry.
func NewRegistryResolver() *RegistryResolver {
	return &RegistryResolver{digest: func(ref string) (string, error) {
		return crane.Digest(ref)
	}}
}

// NewRegistryResolverFunc with a custom digest function (tests).
func NewRegistryResolverFunc(digest func(ref string) (string, error)) *RegistryResolver {
	return &RegistryResolver{digest: digest}
}

// Digest validates the reference and resolves its registry digest.
func (r *RegistryResolver) Digest(imageRef string) (string, error) {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return "", fmt.Errorf("parse image reference %q: %w", imageRef, err)
	}
	d, err := r.digest(ref.String())
	if err != nil {
		return "", fmt.Errorf("resolve digest for %s: %w", ref.String(), err)
	}
	return d, nil
}
