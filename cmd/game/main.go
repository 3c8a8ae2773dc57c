package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/davidmovas/pokespire/internal/core/battle"
	"github.com/davidmovas/pokespire/internal/data"
	"github.com/davidmovas/pokespire/internal/enemy/ai"
	"github.com/davidmovas/pokespire/internal/world/grid"
	"github.com/davidmovas/pokespire/pkg/persist/storage/sqlite"
)

func main() {
	seed := flag.Uint64("seed", 1, "battle RNG seed")
	dbPath := flag.String("db", "", "replay database path (default: XDG data dir)")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	reg, err := data.Load()
	if err != nil {
		log.WithError(err).Fatal("load catalogs")
	}

	b, err := battle.New(reg, demoSetup(*seed))
	if err != nil {
		log.WithError(err).Fatal("create battle")
	}

	path := *dbPath
	if path == "" {
		path = filepath.Join(xdg.DataHome, "pokespire", "replays.db")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.WithError(err).Fatal("create data dir")
		}
	}
	repo, err := sqlite.Open(sqlite.DefaultConfig(path))
	if err != nil {
		log.WithError(err).Fatal("open replay store")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Warn("close replay store")
		}
	}()

	m := newModel(b, ai.NewScripted(), repo, log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.WithError(err).Fatal("run program")
	}
}

func demoSetup(seed uint64) battle.Setup {
	return battle.Setup{
		Seed: seed,
		Players: []battle.Slot{
			{SpeciesID: "squirtle", Pos: grid.NewPosition(grid.RowFront, 0)},
			{SpeciesID: "charmander", Pos: grid.NewPosition(grid.RowFront, 1)},
			{SpeciesID: "bulbasaur", Pos: grid.NewPosition(grid.RowFront, 2)},
			{SpeciesID: "pikachu", Pos: grid.NewPosition(grid.RowBack, 1)},
		},
		Enemies: []battle.Slot{
			{SpeciesID: "pidgey", Pos: grid.NewPosition(grid.RowFront, 0)},
			{SpeciesID: "rattata", Pos: grid.NewPosition(grid.RowFront, 1)},
			{SpeciesID: "geodude", Pos: grid.NewPosition(grid.RowFront, 2)},
			{SpeciesID: "gastly", Pos: grid.NewPosition(grid.RowBack, 1)},
		},
	}
}
