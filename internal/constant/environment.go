package constant

const (
	ProductionEnvironment  = "production"
	DevelopmentEnvironment = "development"
)

const (
	LedgerDatabase = "ledger"
	CacheRedis     = "cache"
	StatusHTTPPort = "http"
)
