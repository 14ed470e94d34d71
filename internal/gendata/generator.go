// Package gendata generates synthetic season tables for local development
// and load testing. Output is deterministic for a given seed so runs are
// reproducible.
package gendata

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/pitwall/pitboard/internal/domain/model"
	"github.com/pitwall/pitboard/pkg/logger"
)

// Points awarded per finishing position, best first.
var pointsTable = []float64{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// circuitPool is the fixed venue catalog seasons draw from.
var circuitPool = []model.Circuit{
	{Name: "Bahrain International Circuit", Country: "Bahrain", Lat: 26.0325, Lng: 50.5106},
	{Name: "Jeddah Corniche Circuit", Country: "Saudi Arabia", Lat: 21.6319, Lng: 39.1044},
	{Name: "Albert Park Grand Prix Circuit", Country: "Australia", Lat: -37.8497, Lng: 144.968},
	{Name: "Baku City Circuit", Country: "Azerbaijan", Lat: 40.3725, Lng: 49.8533},
	{Name: "Miami International Autodrome", Country: "USA", Lat: 25.9581, Lng: -80.2389},
	{Name: "Autodromo Enzo e Dino Ferrari", Country: "Italy", Lat: 44.3439, Lng: 11.7167},
	{Name: "Circuit de Monaco", Country: "Monaco", Lat: 43.7347, Lng: 7.42056},
	{Name: "Circuit de Barcelona-Catalunya", Country: "Spain", Lat: 41.57, Lng: 2.26111},
	{Name: "Circuit Gilles Villeneuve", Country: "Canada", Lat: 45.5, Lng: -73.5228},
	{Name: "Red Bull Ring", Country: "Austria", Lat: 47.2197, Lng: 14.7647},
	{Name: "Silverstone Circuit", Country: "UK", Lat: 52.0786, Lng: -1.01694},
	{Name: "Hungaroring", Country: "Hungary", Lat: 47.5789, Lng: 19.2486},
	{Name: "Circuit de Spa-Francorchamps", Country: "Belgium", Lat: 50.4372, Lng: 5.97139},
	{Name: "Circuit Park Zandvoort", Country: "Netherlands", Lat: 52.3888, Lng: 4.54092},
	{Name: "Autodromo Nazionale di Monza", Country: "Italy", Lat: 45.6156, Lng: 9.28111},
	{Name: "Marina Bay Street Circuit", Country: "Singapore", Lat: 1.2914, Lng: 103.864},
	{Name: "Suzuka Circuit", Country: "Japan", Lat: 34.8431, Lng: 136.541},
	{Name: "Losail International Circuit", Country: "Qatar", Lat: 25.49, Lng: 51.4542},
	{Name: "Circuit of the Americas", Country: "USA", Lat: 30.1328, Lng: -97.6411},
	{Name: "Autodromo Hermanos Rodriguez", Country: "Mexico", Lat: 19.4042, Lng: -99.0907},
	{Name: "Autodromo Jose Carlos Pace", Country: "Brazil", Lat: -23.7036, Lng: -46.6997},
	{Name: "Las Vegas Strip Street Circuit", Country: "USA", Lat: 36.1147, Lng: -115.173},
	{Name: "Yas Marina Circuit", Country: "UAE", Lat: 24.4672, Lng: 54.6031},
}

// driverPool is the fixed grid the generator seeds standings from.
var driverPool = []model.DriverResult{
	{Code: "VER", Forename: "Max", Surname: "Verstappen", Number: 1},
	{Code: "PER", Forename: "Sergio", Surname: "Perez", Number: 11},
	{Code: "HAM", Forename: "Lewis", Surname: "Hamilton", Number: 44},
	{Code: "RUS", Forename: "George", Surname: "Russell", Number: 63},
	{Code: "LEC", Forename: "Charles", Surname: "Leclerc", Number: 16},
	{Code: "SAI", Forename: "Carlos", Surname: "Sainz", Number: 55},
	{Code: "NOR", Forename: "Lando", Surname: "Norris", Number: 4},
	{Code: "PIA", Forename: "Oscar", Surname: "Piastri", Number: 81},
	{Code: "ALO", Forename: "Fernando", Surname: "Alonso", Number: 14},
	{Code: "STR", Forename: "Lance", Surname: "Stroll", Number: 18},
	{Code: "GAS", Forename: "Pierre", Surname: "Gasly", Number: 10},
	{Code: "OCO", Forename: "Esteban", Surname: "Ocon", Number: 31},
	{Code: "ALB", Forename: "Alexander", Surname: "Albon", Number: 23},
	{Code: "SAR", Forename: "Logan", Surname: "Sargeant", Number: 2},
	{Code: "TSU", Forename: "Yuki", Surname: "Tsunoda", Number: 22},
	{Code: "RIC", Forename: "Daniel", Surname: "Ricciardo", Number: 3},
	{Code: "BOT", Forename: "Valtteri", Surname: "Bottas", Number: 77},
	{Code: "ZHO", Forename: "Guanyu", Surname: "Zhou", Number: 24},
	{Code: "MAG", Forename: "Kevin", Surname: "Magnussen", Number: 20},
	{Code: "HUL", Forename: "Nico", Surname: "Hulkenberg", Number: 27},
}

// Config controls the shape of the generated dataset.
type Config struct {
	StartYear int
	EndYear   int
	Rounds    int // races per season, capped at the venue catalog size
	Drivers   int // grid size, capped at the driver catalog size
	Seed      int64
}

// Dataset holds generated rows for both tables.
type Dataset struct {
	Circuits []model.Circuit
	Drivers  []model.DriverResult
}

// Generate builds seasons for every year in [StartYear, EndYear]. Each
// (year, round) pair appears exactly once in the circuits table, and driver
// points are cumulative per round so the rows mirror the standings column
// of the real dataset.
func Generate(ctx context.Context, cfg Config) (*Dataset, error) {
	if cfg.StartYear > cfg.EndYear {
		return nil, fmt.Errorf("%w: start year %d after end year %d", ErrBadConfig, cfg.StartYear, cfg.EndYear)
	}
	rounds := cfg.Rounds
	if rounds < 1 || rounds > len(circuitPool) {
		return nil, fmt.Errorf("%w: rounds must be in [1, %d]", ErrBadConfig, len(circuitPool))
	}
	grid := cfg.Drivers
	if grid < 1 || grid > len(driverPool) {
		return nil, fmt.Errorf("%w: drivers must be in [1, %d]", ErrBadConfig, len(driverPool))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	ds := &Dataset{}

	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		generateSeason(rng, ds, year, rounds, grid)
	}

	logger.Get().Info(ctx, "dataset generated",
		logger.Int("seasons", cfg.EndYear-cfg.StartYear+1),
		logger.Int("circuitRows", len(ds.Circuits)),
		logger.Int("driverRows", len(ds.Drivers)),
	)
	return ds, nil
}

// generateSeason appends one year's calendar and standings to ds.
func generateSeason(rng *rand.Rand, ds *Dataset, year, rounds, grid int) {
	venues := rng.Perm(len(circuitPool))[:rounds]
	totals := make(map[string]float64, grid)

	for round := 1; round <= rounds; round++ {
		venue := circuitPool[venues[round-1]]
		venue.Year = year
		venue.Round = round
		ds.Circuits = append(ds.Circuits, venue)

		// Finishing order for this race
		order := rng.Perm(grid)
		for place, idx := range order {
			if place < len(pointsTable) {
				totals[driverPool[idx].Code] += pointsTable[place]
			}
		}

		// Standings after this round: cumulative points, descending
		standings := make([]model.DriverResult, grid)
		copy(standings, driverPool[:grid])
		for i := range standings {
			standings[i].Year = year
			standings[i].Round = round
			standings[i].Points = totals[standings[i].Code]
		}
		sort.SliceStable(standings, func(i, j int) bool {
			return standings[i].Points > standings[j].Points
		})
		for i := range standings {
			standings[i].Position = i + 1
		}
		ds.Drivers = append(ds.Drivers, standings...)
	}
}
