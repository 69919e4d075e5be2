// Package webui serves the single-page chat client and its websocket channel.
package webui

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/habiliai/searchchat/chat"
	"github.com/habiliai/searchchat/tool"
	"github.com/invopop/jsonschema"
	"github.com/mokiat/gog"
)

var (
	//go:embed static
	staticFiles embed.FS
)

type (
	Options struct {
		Greeting string
		Adapters []tool.Adapter
	}

	ToolInfo struct {
		Name        string             `json:"name"`
		Description string             `json:"description"`
		InputSchema *jsonschema.Schema `json:"input_schema"`
	}
)

func NewHandler(service *chat.Service, logger *slog.Logger, opts Options) (http.Handler, error) {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle("/ws", &chatHandler{
		logger:   logger,
		service:  service,
		greeting: opts.Greeting,
	}).Methods("GET")

	inputSchema := (&jsonschema.Reflector{DoNotReference: true}).Reflect(&tool.Request{})
	tools := gog.Map(opts.Adapters, func(a tool.Adapter) ToolInfo {
		return ToolInfo{
			Name:        a.Name(),
			Description: a.Description(),
			InputSchema: inputSchema,
		}
	})
	router.HandleFunc("/api/tools", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(tools); err != nil {
			logger.Warn("failed to encode tools", "err", err)
		}
	}).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	router.PathPrefix("/").Handler(http.FileServer(http.FS(static))).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true), handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)))
	accessLog := slog.NewLogLogger(logger.Handler(), slog.LevelDebug).Writer()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		router.ServeHTTP(w, r.WithContext(ctx))
	})

	return handlers.CombinedLoggingHandler(accessLog, cors(recovery(handler))), nil
}
