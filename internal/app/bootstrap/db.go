// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

const (
	// DevMongoURI is the fixed local database used outside production.
	DevMongoURI = "mongodb://localhost/conduit"

	// DefaultDatabase is used when the URI does not name a database.
	DefaultDatabase = "conduit"

	startupPingTimeout = 5 * time.Second
)

// DatabaseTarget selects the connection string from the environment flag.
// Debug reports whether driver command logging should be enabled.
func DatabaseTarget(cfg AppConfig) (uri string, debug bool) {
	if cfg.Production() {
		return cfg.MongoURI, false
	}
	return DevMongoURI, true
}

// databaseName returns the database named in uri's path, or DefaultDatabase.
func databaseName(uri string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

// ConnectDB connects to the selected MongoDB target.
//
// The driver connects lazily, so an unreachable server does not fail
// startup: the initial ping result is logged and nothing is retried here.
// Only a malformed target or client options produce an error.
func ConnectDB(ctx context.Context, cfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	uri, debug := DatabaseTarget(cfg)

	opts := options.Client().ApplyURI(uri)
	if debug {
		opts.SetMonitor(commandMonitor(logger))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}

	dbName := databaseName(uri)
	logger.Info("mongo client created",
		zap.String("database", dbName),
		zap.Bool("debug", debug))

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", zap.Error(err))
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(dbName),
	}, nil
}

// commandMonitor logs every driver command at debug level.
func commandMonitor(logger *zap.Logger) *event.CommandMonitor {
	log := logger.Named("mongo")
	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			log.Debug("command started",
				zap.String("command", e.CommandName),
				zap.String("database", e.DatabaseName),
				zap.Int64("request_id", e.RequestID),
				zap.String("body", e.Command.String()))
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			log.Debug("command succeeded",
				zap.String("command", e.CommandName),
				zap.Int64("request_id", e.RequestID),
				zap.Duration("duration", e.Duration))
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			log.Debug("command failed",
				zap.String("command", e.CommandName),
				zap.Int64("request_id", e.RequestID),
				zap.Duration("duration", e.Duration))
		},
	}
}
