package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/live"
	"github.com/Zachkp/portfolio/internal/loader"
	"github.com/Zachkp/portfolio/internal/site"
	"github.com/Zachkp/portfolio/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site",
	Long:  "Serves a single-page portfolio rendered from profile, education, experience and project JSON documents.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio",
	RunE:  runServe,
}

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the page once and write it to a file",
	RunE:  runBuild,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "portfolio.yaml", "Path to config file")
	buildCmd.Flags().StringVar(&buildOut, "out", "dist/index.html", "Output file")
	rootCmd.AddCommand(serveCmd, buildCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dataSource picks where the four documents come from.
func dataSource(cfg *config.Config) loader.Source {
	if cfg.DataURL != "" {
		return loader.HTTPSource{BaseURL: cfg.DataURL}
	}
	return loader.DirSource{FS: os.DirFS(cfg.DataDir)}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var history *store.Store
	var opts []site.Option
	if cfg.DBPath != "" {
		history, err = store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer history.Close()
		opts = append(opts, site.WithRecorder(history))

		// Clean up old load history in background
		go cleanupHistory(history, cfg.RetentionDays)
	}

	portfolio, err := site.NewFromFile(cfg.Template, dataSource(cfg), opts...)
	if err != nil {
		return err
	}

	r := newRouter(cfg, portfolio)
	if history != nil {
		if adminAllowed(cfg, gin.Mode()) {
			newAdmin(history, cfg).setupRoutes(r)
		} else {
			log.Println("Admin dashboard disabled: set PORTFOLIO_ADMIN__PASSWORD to enable it")
		}
	}

	log.Printf("Serving portfolio on %s", cfg.Addr())
	return r.Run(cfg.Addr())
}

func newRouter(cfg *config.Config, portfolio *site.Site) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(filepath.Join(filepath.Dir(cfg.Template), "*.html"))

	r.Static("/images", cfg.ImagesDir)
	r.Static("/files", cfg.FilesDir)
	r.Static("/static", cfg.StaticDir)
	if cfg.DataURL == "" {
		// documents stay addressable at their usual relative paths
		r.Static("/data", filepath.Join(cfg.DataDir, "data"))
	}

	// Home page route: every request is a fresh page load
	r.GET("/", func(c *gin.Context) {
		out, err := portfolio.Start(c.Request.Context())
		if err != nil {
			log.Printf("Error rendering page: %v", err)
			c.String(http.StatusInternalServerError, "page unavailable")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out.HTML))
	})

	// Scroll, click and reveal events for an open page
	r.GET("/live", gin.WrapF(live.Serve))

	return r
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	portfolio, err := site.NewFromFile(cfg.Template, dataSource(cfg))
	if err != nil {
		return err
	}

	out, err := portfolio.Start(cmd.Context())
	if err != nil {
		return err
	}
	if !out.Result.OK {
		return fmt.Errorf("data load failed (%s): %w", out.Result.Reason, out.Result.Err)
	}

	if err := os.MkdirAll(filepath.Dir(buildOut), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(buildOut, []byte(out.HTML), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", buildOut, err)
	}
	fmt.Printf("Wrote %s (%s)\n", buildOut, out.Result.Duration)
	return nil
}

func cleanupHistory(history *store.Store, retentionDays int) {
	if retentionDays == 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	n, err := history.Cleanup(context.Background(), cutoff)
	if err != nil {
		log.Printf("Error cleaning up load history: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Removed %d load records older than %d days", n, retentionDays)
	}
}
