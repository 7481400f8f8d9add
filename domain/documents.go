package domain

import "fmt"

// DocumentKind classifies the two per-user documents this service reads.
type DocumentKind int

const (
	DocumentProfile DocumentKind = iota
	DocumentGamification
)

func (k DocumentKind) String() string {
	if k == DocumentGamification {
		return "gamification"
	}
	return "profile"
}

// Document paths are composed of a fixed application namespace, the literal
// segment "users", the user's identifier and a leaf segment naming the
// document. The layout must match the deployed document store verbatim.

// ProfilePath returns the document path of a user's profile.
func ProfilePath(appID, userID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/profile", appID, userID)
}

// GamificationPath returns the document path of a user's gamification record.
func GamificationPath(appID, userID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/gamification", appID, userID)
}

// DocumentSnapshot is one delivered value of a watched document. When
// Exists is false the document is absent and both payload fields are nil;
// otherwise the field matching Kind is set.
type DocumentSnapshot struct {
	Path         string
	Kind         DocumentKind
	Exists       bool
	Profile      *Profile
	Gamification *Gamification
}
