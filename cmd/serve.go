package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/server"
	"github.com/deckweaver/deckweaver/internal/store"
	"github.com/deckweaver/deckweaver/internal/syncer"
)

var serveProject string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local editing server",
	Long: `Starts the deckweaver editing server: a REST API over the live deck
plus a websocket feed that pushes slide invalidations to connected
editors. When sync is enabled and Drive credentials are available,
edits are pushed to Drive with debouncing and conflict detection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		live := store.New()
		if serveProject != "" {
			p, err := lib.Get(cmd.Context(), serveProject)
			if err != nil {
				return fmt.Errorf("loading project %q: %w", serveProject, err)
			}
			live.Replace(p)
		} else {
			live.Update(func(p *deck.Project) {
				p.Theme.Base = cfg.Theme
			})
		}

		engine := buildEngine(cfg, lib, live)
		if cfg.Sync.Enabled && engine == nil {
			fmt.Fprintln(os.Stderr, "Warning: sync is enabled but no Drive credentials were found.")
			fmt.Fprintln(os.Stderr, "Run `deckweaver auth drive` to sign in. Continuing without sync.")
		}
		if engine != nil {
			engine.Events().OnConflict(func(c *syncer.Conflict) {
				fmt.Fprintf(os.Stderr, "Sync conflict on %q: resolve it with `deckweaver sync %s`\n",
					c.Local.Name, c.Local.Name)
			})
			engine.Events().OnError(func(err error) {
				fmt.Fprintf(os.Stderr, "Sync error: %v\n", err)
			})
		}

		srv := server.New(server.Config{
			Listen:   cfg.Listen,
			AllowAll: true,
		}, live, lib, engine)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "deckweaver v%s listening on %s\n", Version, cfg.Listen)
		if serveProject != "" {
			fmt.Fprintf(os.Stderr, "  Project: %s\n", serveProject)
		}
		fmt.Fprintf(os.Stderr, "  Sync: %s\n", syncLabel(engine))

		return srv.Start()
	},
}

func syncLabel(engine *syncer.Engine) string {
	if engine == nil {
		return "off"
	}
	return "on"
}

func init() {
	serveCmd.Flags().StringVarP(&serveProject, "project", "p", "", "library project to open")
	rootCmd.AddCommand(serveCmd)
}
