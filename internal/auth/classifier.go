package auth

import "github.com/gestorly/gestorly/internal/types"

// CredentialKind is the shape-based classification of a bearer credential.
type CredentialKind string

const (
	CredentialKindAPIToken CredentialKind = "api_token"
	CredentialKindSession  CredentialKind = "session"
)

// ClassifyCredential classifies a raw bearer credential by shape alone:
// exactly 64 hex characters (case-insensitive) is an API token secret,
// anything else is treated as a session credential. The caller is
// responsible for rejecting empty credentials.
func ClassifyCredential(credential string) CredentialKind {
	if len(credential) != types.TokenSecretLength {
		return CredentialKindSession
	}
	for _, c := range credential {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return CredentialKindSession
		}
	}
	return CredentialKindAPIToken
}
