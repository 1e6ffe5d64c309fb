package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/assets"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/highlight"
	"github.com/alnah/go-mdblog/internal/hints"
)

// Server defaults.
const (
	defaultAddr       = "127.0.0.1:8080"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ErrListen is returned when the server cannot bind its address.
var ErrListen = errors.New("cannot listen")

// chromaFile is the generated chroma stylesheet served under /assets/.
const chromaFile = "chroma.css"

// blogReader is the part of *mdblog.Blog the HTTP handlers use.
type blogReader interface {
	Posts(ctx context.Context) ([]*mdblog.Post, error)
	Post(ctx context.Context, slug string) (*mdblog.Post, error)
	Slugs(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
	PostsByTag(ctx context.Context, tag string) ([]*mdblog.Post, error)
	Search(ctx context.Context, query string) ([]*mdblog.Post, error)
	Filter(ctx context.Context, opts mdblog.FilterOptions) (mdblog.Listing, error)
}

var _ blogReader = (*mdblog.Blog)(nil)

// blogServer exposes the blog as a read-only JSON API plus the browser
// assets that rendered posts rely on.
type blogServer struct {
	blog        blogReader
	assets      assets.Loader
	chromaStyle string // empty when the chroma fallback is off
	logger      *slog.Logger
}

// newBlogServer builds the server from a loaded config.
func newBlogServer(blog blogReader, cfg *config.Config, logger *slog.Logger) (*blogServer, error) {
	resolver, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	s := &blogServer{blog: blog, assets: resolver, logger: logger}
	if cfg.ChromaEnabled() {
		s.chromaStyle = cfg.Highlight.ChromaStyle
		if s.chromaStyle == "" {
			s.chromaStyle = highlight.DefaultChromaStyle
		}
	}
	return s, nil
}

// routes returns the request multiplexer.
func (s *blogServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/posts", s.handlePosts)
	mux.HandleFunc("GET /api/posts/{slug}", s.handlePost)
	mux.HandleFunc("GET /api/slugs", s.handleSlugs)
	mux.HandleFunc("GET /api/tags", s.handleTags)
	mux.HandleFunc("GET /api/tags/{tag}/posts", s.handleTagPosts)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/listing", s.handleListing)
	mux.HandleFunc("GET /assets/{name}", s.handleAsset)
	return mux
}

func (s *blogServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *blogServer) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blog.Posts(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (s *blogServer) handlePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.blog.Post(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (s *blogServer) handleSlugs(w http.ResponseWriter, r *http.Request) {
	slugs, err := s.blog.Slugs(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, slugs)
}

func (s *blogServer) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.blog.Tags(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}

func (s *blogServer) handleTagPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blog.PostsByTag(r.Context(), r.PathValue("tag"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (s *blogServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (s *blogServer) handleListing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing, err := s.blog.Filter(r.Context(), mdblog.FilterOptions{Tag: q.Get("tag"), Query: q.Get("q")})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (s *blogServer) handleAsset(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("name")
	var (
		body        string
		contentType = assets.Style.ContentType()
		err         error
	)
	if file == chromaFile {
		if s.chromaStyle == "" {
			http.NotFound(w, r)
			return
		}
		body, err = assets.ChromaCSS(s.chromaStyle)
	} else {
		kind, name, ok := assets.ParseFileName(file)
		if !ok {
			http.NotFound(w, r)
			return
		}
		var a assets.Asset
		a, err = s.assets.Load(kind, name)
		if errors.Is(err, assets.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		body, contentType = a.Content, kind.ContentType()
	}
	if err != nil {
		s.logger.Error("loading asset failed", "name", file, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// respondError maps facade errors to HTTP statuses.
func (s *blogServer) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, mdblog.ErrPostNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	respondJSON(w, status, map[string]any{"error": message})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// runServe starts the HTTP API and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f := &serveFlags{}
	fs := newServeFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { runHelp([]string{"serve"}, env) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := requireArgs("serve", fs.Args(), 0, "[flags]"); err != nil {
		return err
	}

	blog, cfg, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}
	addr := firstNonEmpty(f.addr, cfg.Server.Addr, defaultAddr)
	logger := newLogger(env.Stderr, &f.common)

	srv, err := newBlogServer(blog, cfg, logger)
	if err != nil {
		return err
	}
	if c, ok := srv.assets.(io.Closer); ok {
		defer c.Close()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v", ErrListen, addr, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "serving %s on http://%s\n", blog.PostsDir(), ln.Addr())
		if hint := hints.ForServeAddr(addr); hint != "" {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
		}
	}
	return serveUntilDone(ctx, ln, srv.routes(), logger)
}

// serveUntilDone serves on ln until ctx is canceled, then shuts down
// gracefully.
func serveUntilDone(ctx context.Context, ln net.Listener, h http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		err := server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Debug("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
