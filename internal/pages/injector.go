// Package pages delivers the server-side Firebase configuration into the
// static front-end pages by plain text substitution.
package pages

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"studentvoice-backend/internal/config"
)

// Placeholder is the exact line the front-end pages ship with.
const Placeholder = "const firebaseConfig = {}; // Placeholder: The server will replace this line"

// Injector substitutes the placeholder with the live configuration.
// It is immutable and safe for concurrent use.
type Injector struct {
	replacement string
}

func NewInjector(fc config.FirebaseConfig) (*Injector, error) {
	raw, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize firebase config: %w", err)
	}
	return &Injector{replacement: "const firebaseConfig = " + string(raw) + ";"}, nil
}

// Inject replaces the first placeholder occurrence. Documents without the
// placeholder come back unchanged.
func (i *Injector) Inject(document string) string {
	return strings.Replace(document, Placeholder, i.replacement, 1)
}

// Render reads the file at path and returns it with the configuration injected.
func (i *Injector) Render(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []byte(i.Inject(string(content))), nil
}
