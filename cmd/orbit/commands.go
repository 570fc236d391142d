package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuvaneshSankar/OrbitAI/internal/briefing"
	"github.com/YuvaneshSankar/OrbitAI/internal/collect"
	"github.com/YuvaneshSankar/OrbitAI/internal/config"
	"github.com/YuvaneshSankar/OrbitAI/internal/retrieval"
	"github.com/YuvaneshSankar/OrbitAI/internal/web"
)

func briefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Generate today's briefing and write it to the briefing file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cache.EnsureFresh(cmd.Context()); err != nil {
				return err
			}

			content, err := a.store.Read()
			if err != nil {
				return fmt.Errorf("reading briefing: %w", err)
			}

			fmt.Println(content)
			return nil
		},
	}

	return cmd
}

func ingestCmd() *cobra.Command {
	var exportPath string
	var snapshots bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load a data export and index it for retrieval",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			indexer := retrieval.NewIndexer(a.embedder, a.vectors, a.docs)
			total := 0

			if exportPath != "" {
				export, err := collect.LoadExport(exportPath)
				if err != nil {
					return err
				}

				for _, event := range export.EventRecords() {
					if err := a.docs.SaveEvent(event); err != nil {
						return fmt.Errorf("saving event: %w", err)
					}
				}

				n, err := indexer.Index(cmd.Context(), export.DocumentRecords())
				if err != nil {
					return err
				}
				total += n
				fmt.Printf("Indexed %d documents and %d events from %s\n",
					n, len(export.Events), exportPath)
			}

			if snapshots {
				collector := collect.NewCollector(a.cfg.Feeds.NewsURL, a.cfg.Feeds.WeatherURL)
				records := collector.Snapshots(cmd.Context())

				n, err := indexer.Index(cmd.Context(), records)
				if err != nil {
					return err
				}
				total += n
				fmt.Printf("Indexed %d news/weather snapshots\n", n)
			}

			if total == 0 && exportPath == "" && !snapshots {
				return fmt.Errorf("nothing to ingest: pass --file and/or --snapshots")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&exportPath, "file", "f", "", "Path to an upstream data export (JSON)")
	cmd.Flags().BoolVar(&snapshots, "snapshots", false, "Also capture live news/weather snapshots")

	return cmd
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive question answering over your data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("You: ")
				if !scanner.Scan() {
					break
				}

				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					continue
				}
				if strings.EqualFold(query, "exit") || strings.EqualFold(query, "quit") {
					break
				}

				answer, docs, err := a.session.AskWithSources(cmd.Context(), query)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					continue
				}

				for i, doc := range docs {
					fmt.Printf("  [%d] (%s) %s\n", i+1, doc.Source, preview(doc.Content, 80))
				}
				fmt.Printf("Assistant: %s\n\n", answer)
			}

			return scanner.Err()
		},
	}
}

func preview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store counts and config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			counts, err := a.docs.CountByKind()
			if err != nil {
				return err
			}

			fmt.Println("OrbitAI Status")
			fmt.Println("==============")
			fmt.Printf("Config: %s\n", config.ProjectConfigPath())
			fmt.Printf("Database: %s\n", a.cfg.Storage.DBPath)
			fmt.Printf("Briefing: %s\n", a.cfg.Briefing.Path)
			fmt.Printf("Vectors: %d\n", a.vectors.Count())
			for kind, count := range counts {
				fmt.Printf("Documents (%s): %d\n", kind, count)
			}

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			// Startup check for today's briefing; EnsureFresh is
			// single-flight so a concurrent request cannot double-generate.
			go func() {
				if err := a.cache.EnsureFresh(context.Background()); err != nil {
					fmt.Fprintf(os.Stderr, "startup briefing generation failed: %v\n", err)
				}
			}()

			archiveDir := a.cfg.Briefing.ArchiveDir
			srv := web.NewServer(a.cache, a.store, a.session, func(limit int) ([]briefing.ArchiveEntry, error) {
				return briefing.LoadRecentArchives(archiveDir, limit)
			})
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to config)")

	return cmd
}
