package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/alnah/go-howto"
)

// pdfCache keeps recent PDF exports so downloading an unchanged page again
// does not print it again. A nil *pdfCache caches nothing.
type pdfCache struct {
	c *cache.Cache
}

// newPDFCache returns a cache holding entries for ttl, or nil if ttl <= 0.
func newPDFCache(ttl time.Duration) *pdfCache {
	if ttl <= 0 {
		return nil
	}
	return &pdfCache{c: cache.New(ttl, 2*ttl)}
}

func (p *pdfCache) get(key string) (*howto.ExportResult, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false
	}
	res, ok := v.(*howto.ExportResult)
	return res, ok
}

func (p *pdfCache) set(key string, res *howto.ExportResult) {
	if p == nil {
		return
	}
	p.c.Set(key, res, cache.DefaultExpiration)
}

// exportKey identifies an export by its document and page settings.
func exportKey(doc howto.Document, page *howto.PageSettings) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(doc)
	_ = enc.Encode(page)
	return hex.EncodeToString(h.Sum(nil))
}
