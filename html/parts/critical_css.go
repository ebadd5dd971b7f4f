package parts

import (
	_ "embed"
	"log"
	"os"

	"storefront.GO/config"
	"storefront.GO/core/cache"
)

//go:embed critical.css
var embeddedCSS string

const criticalCSSKey = "html:critical_css"

// GetCriticalCSS returns the inline stylesheet. CRITICAL_CSS_PATH overrides
// the bundled one.
func GetCriticalCSS() (string, error) {
	path := config.GetEnv("CRITICAL_CSS_PATH", "")
	if path == "" {
		return embeddedCSS, nil
	}
	css, err := os.ReadFile(path)
	if err != nil {
		log.Println("Critical CSS error:", err)
		return "", err
	}
	return string(css), nil
}

// GetCriticalCSSCached is GetCriticalCSS behind the process cache.
func GetCriticalCSSCached() (string, error) {
	c := cache.GetInstance()
	if v, ok := c.Get(criticalCSSKey); ok {
		return v.(string), nil
	}
	css, err := GetCriticalCSS()
	if err != nil {
		return "", err
	}
	c.Set(criticalCSSKey, css, 0, []string{"html"})
	return css, nil
}
