package deps

import (
	"time"

	"github.com/afeldman/gmark/internal/folder"
	"github.com/afeldman/gmark/internal/ingest"
	"github.com/afeldman/gmark/internal/logger"
	"github.com/afeldman/gmark/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store        store.Store
	Pipeline     *ingest.Pipeline
	Resolver     *folder.Resolver
	CacheEnabled bool
}
