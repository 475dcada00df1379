package cli

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// serveCommand creates the serve command for a live document preview.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	opts := buildOpts{theme: "light", noCache: true}

	cmd := &cobra.Command{
		Use:   "serve [config.json]",
		Short: "Preview a document over HTTP with rebuild on change",
		Long: `Preview a document over HTTP with rebuild on change.

The serve command builds the document, serves the HTML rendering at /, and
watches the configuration (and bundle, if given) for changes. Every write
triggers a rebuild; reload the browser to see the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], addr, &opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVarP(&opts.bundlePath, "bundle", "b", "", "resource bundle TOML file")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "HTML theme: light (default), dark")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "override the bundle's graph layout seed")

	return cmd
}

// preview holds the latest build outputs behind a lock so the HTTP handlers
// and the rebuild goroutine never race.
type preview struct {
	mu   sync.RWMutex
	html []byte
	json []byte
	err  error
}

func (p *preview) set(html, json []byte, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.html, p.json, p.err = html, json, err
}

func (p *preview) snapshot() (html, json []byte, err error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.html, p.json, p.err
}

// runServe builds the document, starts the watcher, and blocks serving HTTP
// until the command context is cancelled.
func (c *CLI) runServe(cmd *cobra.Command, input, addr string, opts *buildOpts) error {
	ctx := cmd.Context()

	var state preview
	rebuild := func() {
		prog := newProgress(c.Logger)
		result, err := c.buildDocument(ctx, cmd, input, opts)
		if err != nil {
			c.Logger.Errorf("Rebuild failed: %v", err)
			state.set(nil, nil, err)
			return
		}
		htmlData, err := WriteHTML(result.Document, opts.theme)
		if err != nil {
			state.set(nil, nil, err)
			return
		}
		jsonData, err := problem.MarshalStructural(result.Document)
		if err != nil {
			state.set(nil, nil, err)
			return
		}
		state.set(htmlData, jsonData, nil)
		prog.done(fmt.Sprintf("Built %d pages", result.Stats.PageCount))
	}
	rebuild()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directories; editors replace files on save, which
	// drops per-file watches.
	watched := map[string]bool{input: true}
	dirs := map[string]bool{filepath.Dir(input): true}
	if opts.bundlePath != "" {
		watched[opts.bundlePath] = true
		dirs[filepath.Dir(opts.bundlePath)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	go watchLoop(ctx, watcher, watched, rebuild, c)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		htmlData, _, err := state.snapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(htmlData)
	})
	router.Get("/document.json", func(w http.ResponseWriter, r *http.Request) {
		_, jsonData, err := state.snapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jsonData)
	})

	server := &http.Server{Addr: addr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %s", input)
	printDetail("http://%s", addr)
	printDetail("Watching for changes; press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return ctx.Err()
}

// watchLoop rebuilds on every write to a watched file. Rapid event bursts
// from editors are debounced with a short timer.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]bool, rebuild func(), c *CLI) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[event.Name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.Logger.Debugf("Change detected: %s", event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(150*time.Millisecond, rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.Logger.Warnf("Watcher error: %v", err)
		}
	}
}
