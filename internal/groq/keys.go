package groq

import "fmt"

// KeyPool rotates through a fixed list of API credentials so consecutive
// calls spend different per-key rate-limit budgets. The cursor is mutated
// only by the strictly sequential orchestrator, so no locking is needed.
type KeyPool struct {
	keys   []string
	cursor int
}

// NewKeyPool validates and wraps the credential list. Zero usable keys is
// a configuration error, fatal at construction time.
func NewKeyPool(keys []string) (*KeyPool, error) {
	var usable []string
	for _, k := range keys {
		if k != "" {
			usable = append(usable, k)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}
	return &KeyPool{keys: usable}, nil
}

// Next returns the credential under the cursor and advances it circularly.
func (p *KeyPool) Next() string {
	key := p.keys[p.cursor]
	p.cursor = (p.cursor + 1) % len(p.keys)
	return key
}

// Len is the number of configured credentials.
func (p *KeyPool) Len() int {
	return len(p.keys)
}
