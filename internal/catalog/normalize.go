package catalog

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Product is a raw vendor payload, decoded from JSON. The feed shape is not
// under our control and has drifted over time, so the same logical field can
// show up under several alternative keys. The accessors below read through
// the aliases in priority order and degrade to placeholders instead of
// failing; none of them can error.
type Product = map[string]any

var (
	keyFields   = []string{"id", "_id", "sku"}
	titleFields = []string{"title", "name", "productName"}
	priceFields = []string{"price", "sellingPrice", "mrp", "amount"}
	descFields  = []string{"description", "details", "summary"}
	imageFields = []string{"image", "thumbnail", "imageUrl"}
	photoFields = []string{"url", "src", "image"}
)

const placeholderDescription = "No description available."

// Key derives a stable identifier for p: explicit id, alternate id, SKU,
// then the caller-supplied fallback (typically the list index). When even
// the fallback is empty the key is a hash of the payload's fields, so the
// same payload always maps to the same key.
func Key(p Product, fallback string) string {
	for _, f := range keyFields {
		if s := asString(p[f]); s != "" {
			return s
		}
	}
	if fallback != "" {
		return fallback
	}
	return hashKey(p)
}

// Title returns the first non-empty name field, or a placeholder built from
// the 1-based position of the product in its list.
func Title(p Product, index int) string {
	for _, f := range titleFields {
		if s := asString(p[f]); s != "" {
			return s
		}
	}
	return fmt.Sprintf("Product %d", index+1)
}

// Price returns the first price field that is actually numeric. The second
// return is false when no candidate is a number; callers must treat that as
// "no price", never as zero.
func Price(p Product) (float64, bool) {
	for _, f := range priceFields {
		if n, ok := asNumber(p[f]); ok {
			return n, true
		}
	}
	return 0, false
}

func Description(p Product) string {
	for _, f := range descFields {
		if s := asString(p[f]); s != "" {
			return s
		}
	}
	return placeholderDescription
}

// Images collects every usable URL from the photo-variant list, falling back
// to the single primary-image aliases. An empty slice means "no image";
// callers render their own placeholder.
func Images(p Product) []string {
	out := []string{}

	if list, ok := p["images"].([]any); ok {
		for _, entry := range list {
			switch v := entry.(type) {
			case string:
				if s := strings.TrimSpace(v); s != "" {
					out = append(out, s)
				}
			case map[string]any:
				for _, f := range photoFields {
					if s := asString(v[f]); s != "" {
						out = append(out, s)
						break
					}
				}
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, f := range imageFields {
		if s := asString(p[f]); s != "" {
			return []string{s}
		}
	}
	return out
}

// Items extracts the product list from an arbitrarily-shaped feed response:
// a bare list, {"data": [...]}, or {"items": [...]}. Anything else yields an
// empty list; a malformed payload is not an error here.
func Items(payload any) []Product {
	switch v := payload.(type) {
	case []any:
		return collect(v)
	case map[string]any:
		if list, ok := v["data"].([]any); ok {
			return collect(list)
		}
		if list, ok := v["items"].([]any); ok {
			return collect(list)
		}
	}
	return []Product{}
}

func collect(list []any) []Product {
	out := make([]Product, 0, len(list))
	for _, entry := range list {
		if p, ok := entry.(map[string]any); ok {
			out = append(out, p)
		}
	}
	return out
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func hashKey(p Product) string {
	fields := make([]string, 0, len(p))
	for k, v := range p {
		fields = append(fields, k+"="+fmt.Sprint(v))
	}
	sort.Strings(fields)

	h := fnv.New64a()
	for _, f := range fields {
		_, _ = h.Write([]byte(f))
		_, _ = h.Write([]byte{0})
	}
	return "p_" + strconv.FormatUint(h.Sum64(), 16)
}
