package config

import (
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	MediaUrl string
	MediaDir string

	// Catalog source: "embedded" (bundled JSON), "file" or "db"
	CatalogSource    string
	CatalogPath      string
	CatalogLoadDelay time.Duration
	StrictCategories bool

	ContactPhone string
	SessionTTL   time.Duration
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:          GetEnv("APP_NAME", "storefront.GO"),
			Port:             GetEnv("PORT", "8080"),
			Env:              GetEnv("APP_ENV", "development"),
			Debug:            GetEnvBool("DEBUG", false),
			MediaUrl:         GetEnv("MEDIA_URL", "/media/"),
			MediaDir:         GetEnv("MEDIA_DIR", "media"),
			CatalogSource:    GetEnv("CATALOG_SOURCE", "embedded"),
			CatalogPath:      GetEnv("CATALOG_PATH", "data/products.json"),
			CatalogLoadDelay: GetEnvDuration("CATALOG_LOAD_DELAY", time.Second),
			StrictCategories: GetEnvBool("CATALOG_STRICT_CATEGORIES", false),
			ContactPhone:     GetEnv("CONTACT_PHONE", "918591587165"),
			SessionTTL:       GetEnvDuration("SESSION_TTL", 30*time.Minute),
		}
	})
}

// App returns AppConfig, loading it from the environment on first use.
func App() *Config {
	LoadAppConfig()
	return AppConfig
}
