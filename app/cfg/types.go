package cfg

type Cfg struct {
	// Feed configuration
	FeedURL string
	HubURL  string

	// Subscription callback configuration
	HostName string

	// Database configuration
	DBPath string

	// Application configuration
	Port              string
	APIAccessKey      string
	RecentPostCount   int
	WorkerCount       int
	SchedulerInterval int
	SyncInterval      int
	ExtractContent    bool

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
