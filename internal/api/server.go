package api

import (
	"context"
	"net/http"

	"github.com/DorianABDS/spec-to-issues/internal/ai"
	"github.com/DorianABDS/spec-to-issues/internal/publisher"
	"github.com/DorianABDS/spec-to-issues/internal/ratelimit"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 10 << 20

// Generator is the part of ai.IssueGenerator the handlers use.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) (*ai.GenerationResult, error)
}

// Deps wires the server. Generator may be nil when no AI key is configured;
// the generate route then answers with a configuration error.
type Deps struct {
	Generator   Generator
	Clients     vcs.ClientFactory
	Limiter     *ratelimit.Limiter
	Publish     publisher.Options
	JWTSecret   string
	FrontendURL string
}

// Server provides the REST API handlers.
type Server struct {
	generator   Generator
	clients     vcs.ClientFactory
	limiter     *ratelimit.Limiter
	publish     publisher.Options
	secret      string
	frontendURL string
}

func NewServer(d Deps) *Server {
	limiter := d.Limiter
	if limiter == nil {
		limiter = ratelimit.New(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	}
	return &Server{
		generator:   d.Generator,
		clients:     d.Clients,
		limiter:     limiter,
		publish:     d.Publish,
		secret:      d.JWTSecret,
		frontendURL: d.FrontendURL,
	}
}

// Router returns an http.Handler for the API routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.health)

	mux.HandleFunc("POST /api/generate", s.requireAuth(s.generate))

	mux.HandleFunc("GET /api/github/repos", s.requireAuth(s.listRepos))
	mux.HandleFunc("POST /api/github/create-issues", s.requireAuth(s.createIssues))
	mux.HandleFunc("POST /api/github/dry-run", s.requireAuth(s.dryRun))

	var h http.Handler = mux
	h = limitBody(h, MaxBodyBytes)
	h = corsMiddleware(h, s.frontendURL)
	h = securityHeaders(h)
	h = requestLogger(h)
	return h
}
