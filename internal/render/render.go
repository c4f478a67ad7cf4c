// Package render turns post markdown into sanitized HTML at write time.
package render

import (
	"bytes"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *lru.Cache[string, string] // raw body -> sanitized html
}

func New(cacheSize int) (*Renderer, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
		cache:  cache,
	}, nil
}

// Render converts markdown to HTML and strips anything the UGC policy
// disallows. Identical bodies hit the cache; rendered output is
// immutable so entries never need invalidation.
func (r *Renderer) Render(body string) (string, error) {
	if cached, ok := r.cache.Get(body); ok {
		return cached, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render post body: %w", err)
	}

	sanitized := r.policy.Sanitize(buf.String())
	r.cache.Add(body, sanitized)
	return sanitized, nil
}
