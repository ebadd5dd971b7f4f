package registry

// Keys for GlobalRegistry and RequestRegistry.
const (
	// Per request: start time for X-Request-Duration-ms and the browsing
	// session the request acts on.
	KeyRequestStart   = "request_start"
	KeyRequestSession = "request_session"

	// Storefront extension points: CLI commands, scheduled jobs, /api
	// modules, root routes (GraphQL, HTML pages) and GraphQL _extension
	// resolvers.
	KeyRegistryCmd     = "registry:cmd"
	KeyRegistryCron    = "registry:cron"
	KeyRegistryAPI     = "registry:api"
	KeyRegistryRoutes  = "registry:routes"
	KeyRegistryGraphQL = "registry:graphql"
)
