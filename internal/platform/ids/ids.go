package ids

import (
	"github.com/google/uuid"
)

// Namespace is the fixed UUID namespace for all derived identifiers.
// Changing it would change every generated action identifier and form
// submission id, so it is a constant, not configuration.
var Namespace = uuid.MustParse("91a43d9c-5dd1-44a4-8f67-2b5a9257b66a")

// Derive returns a name-based (version 5 style) UUID for the given seed.
// Identical seeds always produce identical identifiers, which is what makes
// create/update payloads reproducible under a fixed clock.
func Derive(seed string) string {
	return uuid.NewSHA1(Namespace, []byte(seed)).String()
}
