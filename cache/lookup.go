package cache

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/nfa"
)

// CompileFunc produces a machine for query/opts when the cache misses.
// The caller supplies this so cache never imports query or depends on
// how a query is parsed; it only knows how to store and retrieve bytes.
type CompileFunc func(query string, opts langs.Options) (*nfa.Machine, error)

// Lookup fetches (or compiles and stores) the machine for one query,
// collapsing concurrent requests for the same key into a single
// compile-or-fetch via golang.org/x/sync/singleflight, the same
// "only one winner does the work" shape the teacher gets from its SQL
// advisory lock in Deployable.EnsureUploaded.
type Lookup struct {
	backend Backend
	compile CompileFunc
	group   singleflight.Group
	log     logrus.FieldLogger
}

func NewLookup(backend Backend, compile CompileFunc, log logrus.FieldLogger) *Lookup {
	return &Lookup{backend: backend, compile: compile, log: log}
}

// Machine returns the compiled machine for query under opts, fetching
// it from the backend if present, otherwise compiling it with compile
// and storing the result. Each call is tagged with a fresh
// github.com/gofrs/uuid request id for log correlation (the teacher
// uses the same package to name disposable test databases in
// sqltest/Fixture.DBName; here it names a request instead).
func (l *Lookup) Machine(ctx context.Context, query string, opts langs.Options) (*nfa.Machine, error) {
	key := KeyFor(query, opts)
	requestID := uuid.Must(uuid.NewV4()).String()
	logger := l.log.WithField("request_id", requestID).WithField("query_hash", key.QueryHash)

	v, err, shared := l.group.Do(key.QueryHash+"/"+key.OptionsHash, func() (interface{}, error) {
		if data, ok, err := l.backend.Get(ctx, key); err != nil {
			return nil, err
		} else if ok {
			logger.Debug("cache hit")
			return Unmarshal(data)
		}

		logger.Debug("cache miss, compiling")
		machine, err := l.compile(query, opts)
		if err != nil {
			return nil, err
		}
		data, err := Marshal(machine)
		if err != nil {
			return nil, err
		}
		if err := l.backend.Put(ctx, key, data); err != nil {
			return nil, err
		}
		return machine, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("joined an in-flight compile-or-fetch")
	}
	return v.(*nfa.Machine), nil
}
