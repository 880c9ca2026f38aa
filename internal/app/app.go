package app

import (
	"eduproject/internal/api"
	"eduproject/internal/session"
)

// Application bundles the process-wide collaborators: config, logger, the
// API client and the session store. It is constructed once in main and
// injected into the TUI root; nothing here is package-level mutable state.
type Application struct {
	Config Config
	Logger *Logger
	Client *api.Client
	Store  *session.Store
}

func NewApplication(cfg Config) (*Application, error) {
	logger := NewLogger(DefaultLogWriter(cfg.LogFile))

	client := api.NewClient(cfg.BaseURL, cfg.Timeout)

	root := cfg.DataDir
	if root == "" {
		root = session.DefaultStorageRoot()
	}
	store := session.NewStore(session.NewFileStorage(root), logger)

	return &Application{
		Config: cfg,
		Logger: logger,
		Client: client,
		Store:  store,
	}, nil
}
