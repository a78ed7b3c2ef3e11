// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs Cinematch's long-lived services under suture v4.

# Tree

	RootSupervisor ("cinematch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheMaintenanceService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Lifecycle events go to
a *slog.Logger through sutureslog; main wires that logger to zerolog with
logging.NewSlogLogger.

# Usage

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout, logger))
	tree.AddMaintenanceService(services.NewCacheMaintenanceService(client, cfg.Metadata.CacheGCPeriod, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

The services themselves live in the services subpackage.
*/
package supervisor
