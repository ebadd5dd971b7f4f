package config

import "strings"

// GetCORSOrigins returns the origins allowed to call the public catalog API.
func GetCORSOrigins() []string {
	origins := GetEnv("CORS_ORIGINS", "*")
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
