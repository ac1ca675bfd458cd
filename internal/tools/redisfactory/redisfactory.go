package redisfactory

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Factory holds the redis connections of the service. Every connection is optional:
// an empty URI leaves the client nil and the feature using it switched off.
type Factory struct {
	journal *redis.Client
}

func New(journalURI string) (*Factory, error) {
	journal, err := newClient(journalURI)
	if err != nil {
		return nil, fmt.Errorf("journal redis: %w", err)
	}

	return &Factory{
		journal: journal,
	}, nil
}

func newClient(uri string) (*redis.Client, error) {
	if uri == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return redis.NewClient(opt), nil
}

func (f *Factory) JournalClient() *redis.Client {
	return f.journal
}

func (f *Factory) Close() error {
	if f.journal != nil {
		return f.journal.Close()
	}

	return nil
}
