package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/soundlens"
	"github.com/poiesic/soundlens/core"
)

// demoCatalog is a small catalog for trying the engine locally.
var demoCatalog = []*core.Track{
	{Title: "Neon Skyline", Artist: "The Orbits", Genres: []string{"synthpop"}, Tags: []string{"dreamy", "upbeat"}, Tempo: 118, PlayCount: 420, StreamURL: "https://cdn.example/orbits/neon-skyline"},
	{Title: "Midnight Train", Artist: "The Orbits", Genres: []string{"rock"}, Tags: []string{"energetic", "fast"}, Tempo: 140, PlayCount: 610, StreamURL: "https://cdn.example/orbits/midnight-train"},
	{Title: "Glass Harbor", Artist: "Mira Vale", Genres: []string{"ambient"}, Tags: []string{"chill", "dreamy"}, Tempo: 82, PlayCount: 230, StreamURL: "https://cdn.example/vale/glass-harbor"},
	{Title: "Evening Drift", Artist: "Mira Vale", Genres: []string{"ambient", "electronic"}, Tags: []string{"chill", "mellow"}, Tempo: 90, PlayCount: 310, StreamURL: "https://cdn.example/vale/evening-drift"},
	{Title: "Harvest Moon", Artist: "Dust Choir", Genres: []string{"folk"}, Tags: []string{"acoustic", "mellow"}, Tempo: 96, PlayCount: 150, StreamURL: "https://cdn.example/dust/harvest-moon"},
	{Title: "Iron Creek", Artist: "Dust Choir", Genres: []string{"folk", "americana"}, Tags: []string{"melancholic", "acoustic"}, Tempo: 74, PlayCount: 95, StreamURL: "https://cdn.example/dust/iron-creek"},
	{Title: "Stadium Rush", Artist: "Voltage Parade", Genres: []string{"electronic", "house"}, Tags: []string{"energetic", "danceable"}, Tempo: 126, PlayCount: 780, StreamURL: "https://cdn.example/voltage/stadium-rush"},
	{Title: "Slow Tide", Artist: "Voltage Parade", Genres: []string{"downtempo"}, Tags: []string{"slow", "chill"}, Tempo: 70, PlayCount: 180, StreamURL: "https://cdn.example/voltage/slow-tide"},
	{Title: "Paper Lanterns", Artist: "Kei Nakamura", Genres: []string{"lofi"}, Tags: []string{"chill", "instrumental"}, Tempo: 85, PlayCount: 540, StreamURL: "https://cdn.example/nakamura/paper-lanterns"},
	{Title: "Brass Avenue", Artist: "The Uptown Nine", Genres: []string{"jazz"}, Tags: []string{"upbeat", "instrumental"}, Tempo: 132, PlayCount: 260, StreamURL: "https://cdn.example/uptown/brass-avenue"},
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	dbPath := flag.String("db", "./catalog_db", "path to the catalog database directory")
	flag.Parse()

	engine, err := soundlens.NewEngine(*dbPath, soundlens.WithHeuristicPlanner())
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	added, err := pipeline.Ingest(context.Background(), demoCatalog...)
	if err != nil {
		panic(err)
	}

	slog.Info("seeded catalog", "tracks", len(added), "db", *dbPath)
}
