// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	briefingsfeature "github.com/dalemusser/opshub/internal/app/features/briefings"
	documentsfeature "github.com/dalemusser/opshub/internal/app/features/documents"
	healthfeature "github.com/dalemusser/opshub/internal/app/features/health"
	rostersfeature "github.com/dalemusser/opshub/internal/app/features/rosters"
	sitesfeature "github.com/dalemusser/opshub/internal/app/features/sites"
	supervisorsfeature "github.com/dalemusser/opshub/internal/app/features/supervisors"
	tasksfeature "github.com/dalemusser/opshub/internal/app/features/tasks"
	usersfeature "github.com/dalemusser/opshub/internal/app/features/users"
	workqueriesfeature "github.com/dalemusser/opshub/internal/app/features/workqueries"
	"github.com/dalemusser/opshub/internal/app/system/auth"
	"github.com/dalemusser/opshub/internal/app/system/companionsync"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. OpsHub builds the session
// resolver, the document storage backend, and the companion sync
// directory, then mounts a feature router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	resolver, err := auth.NewSessionResolver(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session resolver init failed", zap.Error(err))
		return nil, err
	}

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	// Supervisor writes fan out to the companion user directory.
	sync := companionsync.New(deps.OpsHubMongoDatabase, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the caller's Identity into context
	// if a session is present. Handlers read it via auth.CurrentIdentity(r).
	r.Use(auth.LoadIdentity(resolver))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.OpsHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	supervisorsHandler := supervisorsfeature.NewHandler(deps.OpsHubMongoDatabase, sync, logger)
	r.Mount("/supervisors", supervisorsfeature.Routes(supervisorsHandler))

	usersHandler := usersfeature.NewHandler(deps.OpsHubMongoDatabase, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	sitesHandler := sitesfeature.NewHandler(deps.OpsHubMongoDatabase, logger)
	r.Mount("/sites", sitesfeature.Routes(sitesHandler))

	tasksHandler := tasksfeature.NewHandler(deps.OpsHubMongoDatabase, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler))

	documentsHandler := documentsfeature.NewHandler(deps.OpsHubMongoDatabase, store, logger)
	r.Mount("/documents", documentsfeature.Routes(documentsHandler))

	workQueriesHandler := workqueriesfeature.NewHandler(deps.OpsHubMongoDatabase, logger)
	r.Mount("/work-queries", workqueriesfeature.Routes(workQueriesHandler))

	rostersHandler := rostersfeature.NewHandler(deps.OpsHubMongoDatabase, logger)
	r.Mount("/rosters", rostersfeature.Routes(rostersHandler))

	briefingsHandler := briefingsfeature.NewHandler(deps.OpsHubMongoDatabase, logger)
	r.Mount("/briefings", briefingsfeature.Routes(briefingsHandler))

	return r, nil
}
