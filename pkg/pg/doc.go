// Package pg provides helpers for connecting to PostgreSQL with pgx: a
// retrying Connect for reliable startup, a healthcheck adapter for liveness
// probes and error classifiers for common SQLSTATE conditions.
//
// Configuration comes from the environment via the Config struct:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg)
package pg
