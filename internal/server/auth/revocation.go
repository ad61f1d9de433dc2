package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// RevocationList remembers revoked token ids until the tokens would have
// expired anyway. It is per process and does not survive a restart.
// When full, the oldest entries are evicted first.
type RevocationList struct {
	ids *expirable.LRU[string, struct{}]
}

func NewRevocationList(ttl time.Duration) *RevocationList {
	return &RevocationList{ids: expirable.NewLRU[string, struct{}](0, nil, ttl)}
}

func (r *RevocationList) Revoke(id string) {
	r.ids.Add(id, struct{}{})
}

func (r *RevocationList) IsRevoked(id string) bool {
	return r.ids.Contains(id)
}

func (r *RevocationList) Len() int {
	return r.ids.Len()
}
