/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"github.com/suparena/memstore/datastore"
	"github.com/suparena/memstore/datastore/memory"
	"github.com/suparena/memstore/keys"
)

type options struct {
	logger        *Logger
	keyEngine     *keys.Engine
	newCollection func(typeName string) datastore.Collection
}

func defaultOptions() options {
	return options{
		logger:    NoopLogger(),
		keyEngine: keys.NewEngine(),
		newCollection: func(typeName string) datastore.Collection {
			return memory.New(typeName)
		},
	}
}

// Option configures a DataSource.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithKeyEngine shares a key engine, and with it the per-type counters,
// between data sources.
func WithKeyEngine(e *keys.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.keyEngine = e
		}
	}
}

// WithCollectionFactory replaces the in-memory collection used for each
// entity type. The factory is called once per type, on first use.
func WithCollectionFactory(f func(typeName string) datastore.Collection) Option {
	return func(o *options) {
		if f != nil {
			o.newCollection = f
		}
	}
}
