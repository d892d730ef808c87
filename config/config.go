package config

import (
	"flag"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	defaultServerAddress    = ":8080"
	defaultLogLevel         = "debug"
	defaultIssueType        = "Task"
	defaultParentIssueType  = "Epic"
	defaultStartDateFieldID = "customfield_10015"
	defaultWorkers          = 4
	defaultSearchAttempts   = 3
	defaultSearchInterval   = 1500 * time.Millisecond
)

type Config struct {
	ServerAddr          string
	LogLevel            string
	StripeWebhookSecret string

	JiraBaseURL  string
	JiraEmail    string
	JiraAPIToken string

	WorkspaceProjectKey string
	ServiceDeskKey      string
	ServiceDeskID       string
	RequestTypeID       string
	IssueType           string
	ParentIssueType     string
	StartDateFieldID    string

	Workers        int
	SearchAttempts int
	SearchInterval time.Duration
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{
			IssueType:        defaultIssueType,
			ParentIssueType:  defaultParentIssueType,
			StartDateFieldID: defaultStartDateFieldID,
			SearchAttempts:   defaultSearchAttempts,
			SearchInterval:   defaultSearchInterval,
		}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "webhook server address")
		flag.StringVar(&cfg.JiraBaseURL, "j", "", "ticketing system base URL")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
		flag.IntVar(&cfg.Workers, "w", defaultWorkers, "dispatcher worker count")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}
		if secretEnv := os.Getenv("STRIPE_WEBHOOK_SECRET"); secretEnv != "" {
			cfg.StripeWebhookSecret = secretEnv
		}
		if baseURLEnv := os.Getenv("JIRA_BASE_URL"); baseURLEnv != "" {
			cfg.JiraBaseURL = baseURLEnv
		}
		if emailEnv := os.Getenv("JIRA_EMAIL"); emailEnv != "" {
			cfg.JiraEmail = emailEnv
		}
		if tokenEnv := os.Getenv("JIRA_API_TOKEN"); tokenEnv != "" {
			cfg.JiraAPIToken = tokenEnv
		}
		if projectKeyEnv := os.Getenv("WORKSPACE_PROJECT_KEY"); projectKeyEnv != "" {
			cfg.WorkspaceProjectKey = projectKeyEnv
		}
		if deskKeyEnv := os.Getenv("SERVICE_DESK_KEY"); deskKeyEnv != "" {
			cfg.ServiceDeskKey = deskKeyEnv
		}
		if deskIDEnv := os.Getenv("SERVICE_DESK_ID"); deskIDEnv != "" {
			cfg.ServiceDeskID = deskIDEnv
		}
		if requestTypeEnv := os.Getenv("REQUEST_TYPE_ID"); requestTypeEnv != "" {
			cfg.RequestTypeID = requestTypeEnv
		}
		if issueTypeEnv := os.Getenv("ISSUE_TYPE"); issueTypeEnv != "" {
			cfg.IssueType = issueTypeEnv
		}
		if parentTypeEnv := os.Getenv("PARENT_ISSUE_TYPE"); parentTypeEnv != "" {
			cfg.ParentIssueType = parentTypeEnv
		}
		if startFieldEnv := os.Getenv("START_DATE_FIELD_ID"); startFieldEnv != "" {
			cfg.StartDateFieldID = startFieldEnv
		}
		if workersEnv := os.Getenv("WORKERS"); workersEnv != "" {
			if n, err := strconv.Atoi(workersEnv); err == nil {
				cfg.Workers = n
			}
		}
		if attemptsEnv := os.Getenv("IDENTITY_SEARCH_ATTEMPTS"); attemptsEnv != "" {
			if n, err := strconv.Atoi(attemptsEnv); err == nil {
				cfg.SearchAttempts = n
			}
		}
		if intervalEnv := os.Getenv("IDENTITY_SEARCH_INTERVAL"); intervalEnv != "" {
			if d, err := time.ParseDuration(intervalEnv); err == nil {
				cfg.SearchInterval = d
			}
		}

		singleton = &cfg
	})

	return singleton, nil
}
