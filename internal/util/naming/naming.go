package naming

import (
	"fmt"
	"strings"
)

// Naming helpers for identity-provider resources.
// Every derived value (slug, launch URL, discovery document) follows one
// documented rule so that re-runs resolve the same resources.

// Slug returns the DNS-safe slug form of an application name: lowercase
// alphanumerics and hyphens, everything else collapsed to a single hyphen.
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// LaunchURL derives an application launch URL from its OAuth redirect URI by
// stripping the final two path segments (".../apps/oauth/code" -> ".../apps").
func LaunchURL(redirectURI string) string {
	trimmed := strings.TrimRight(redirectURI, "/")
	for i := 0; i < 2; i++ {
		idx := strings.LastIndex(trimmed, "/")
		if idx <= len("https:/") {
			break
		}
		trimmed = trimmed[:idx]
	}
	return trimmed
}

// PostLogoutRedirectURI derives the post-logout redirect from the OAuth
// redirect URI by stripping the final path segment.
func PostLogoutRedirectURI(redirectURI string) string {
	idx := strings.LastIndex(redirectURI, "/")
	if idx <= len("https:/") {
		return redirectURI + "/"
	}
	return redirectURI[:idx] + "/"
}

// Issuer returns the OIDC issuer URL Authentik exposes for an application.
func Issuer(baseURL, slug string) string {
	return fmt.Sprintf("%s/application/o/%s/", strings.TrimRight(baseURL, "/"), slug)
}

// DiscoveryURI returns the well-known OpenID configuration URL for an
// application slug.
func DiscoveryURI(baseURL, slug string) string {
	return fmt.Sprintf("%s/application/o/%s/.well-known/openid-configuration",
		strings.TrimRight(baseURL, "/"), slug)
}
