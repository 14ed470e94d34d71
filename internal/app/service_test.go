package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	service "github.com/pitwall/pitboard/internal/app"
	"github.com/pitwall/pitboard/internal/domain/standings"
	"github.com/pitwall/pitboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const circuitsCSV = `year,round,name,country,lat,lng
2021,1,Bahrain International Circuit,Bahrain,26.0325,50.5106
2021,2,Silverstone Circuit,UK,52.0786,-1.01694
2020,1,Red Bull Ring,Austria,47.2197,14.7647
`

const driversCSV = `year,round,code,forename,surname,number,points,position
2021,1,HAM,Lewis,Hamilton,44,25,1
2021,1,VER,Max,Verstappen,33,18,2
2021,1,LAT,Nicholas,Latifi,6,0,3
2021,2,VER,Max,Verstappen,33,43,1
2021,2,HAM,Lewis,Hamilton,44,43,2
2021,2,LAT,Nicholas,Latifi,6,0,3
2020,1,BOT,Valtteri,Bottas,77,25,1
`

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "circuits.csv"), []byte(circuitsCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "drivers.csv"), []byte(driversCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return service.New(
		service.WithDataDir(dir),
		service.WithYearRange(2020, 2021),
		service.WithSeasonCacheSize(4),
	)
}

func TestServiceLifecycle(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a service over a temp dataset", t, func() {
		svc := newTestService(t)

		Convey("When starting", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)
			defer svc.Stop()

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stats report the loaded tables", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["circuitRows"], ShouldEqual, 3)
				So(stats["driverRows"], ShouldEqual, 7)
			})
		})
	})

	Convey("Given a service pointed at a missing dataset", t, func() {
		svc := service.New(service.WithDataDir(filepath.Join(t.TempDir(), "nope")))

		Convey("When starting", func() {
			err := svc.Start(ctx)

			Convey("Then startup fails instead of serving nothing", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestServiceYears(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a started service with a 2020-2021 selector", t, func() {
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When listing years", func() {
			years := svc.Years(ctx)

			Convey("Then they are descending and inclusive", func() {
				So(years, ShouldResemble, []int{2021, 2020})
			})
		})
	})
}

func TestServiceSeason(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When rendering a season with data", func() {
			view, err := svc.Season(ctx, 2021)
			So(err, ShouldBeNil)

			Convey("Then the payload carries the season title and winner", func() {
				So(view.Title, ShouldEqual, "Formula 1 Season 2021")
				So(view.Empty, ShouldBeFalse)
				So(view.Winner, ShouldEqual, "Max Verstappen [33]")
			})

			Convey("And the schedule table is ordered by round", func() {
				So(view.Races, ShouldHaveLength, 2)
				So(view.Races[0].Round, ShouldEqual, 1)
				So(view.Races[1].Name, ShouldEqual, "Silverstone Circuit")
			})

			Convey("And the standings come from the last round", func() {
				So(view.Standings, ShouldHaveLength, 3)
				So(view.Standings[0].Code, ShouldEqual, "VER")
				So(view.Standings[0].Points, ShouldEqual, 43.0)
			})

			Convey("And every chart spec is populated", func() {
				So(view.WorldMap.Traces, ShouldHaveLength, 2)
				So(view.Progression.Traces, ShouldHaveLength, 3)
				So(view.PointsBar.Bars, ShouldHaveLength, 3)
				So(view.PointsBar.Annotations, ShouldHaveLength, 1)
			})

			Convey("And a second render is served from the cache", func() {
				again, err := svc.Season(ctx, 2021)
				So(err, ShouldBeNil)
				So(again.Title, ShouldEqual, view.Title)
				So(svc.GetStats()["cachedSeasons"], ShouldEqual, 1)
			})
		})

		Convey("When rendering a season with no rows", func() {
			view, err := svc.Season(ctx, 1950)
			So(err, ShouldBeNil)

			Convey("Then the view is an explicit placeholder, not an error", func() {
				So(view.Empty, ShouldBeTrue)
				So(view.Winner, ShouldBeEmpty)
				So(view.Races, ShouldBeEmpty)
				So(view.Standings, ShouldBeEmpty)
				So(view.Progression.Traces, ShouldBeEmpty)
			})
		})
	})
}

func TestServiceRankings(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When fetching season rankings", func() {
			rows, err := svc.SeasonRankings(ctx, 2021)
			So(err, ShouldBeNil)

			Convey("Then rows are ranked by points descending", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].Position, ShouldEqual, 1)
				So(rows[0].Name, ShouldEqual, "Max Verstappen")
			})
		})

		Convey("When fetching rankings for an empty year", func() {
			rows, err := svc.SeasonRankings(ctx, 1950)

			Convey("Then an empty table is returned without error", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When fetching circuit rankings by name", func() {
			rows, err := svc.CircuitRankings(ctx, 2021, "Bahrain International Circuit")
			So(err, ShouldBeNil)

			Convey("Then rows come from that circuit's round", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].Code, ShouldEqual, "HAM")
				So(rows[0].Points, ShouldEqual, 25.0)
			})
		})

		Convey("When the circuit is not on that year's calendar", func() {
			_, err := svc.CircuitRankings(ctx, 2021, "Red Bull Ring")

			Convey("Then it fails with ErrCircuitNotFound", func() {
				So(err, ShouldEqual, standings.ErrCircuitNotFound)
			})
		})
	})
}

func TestServicePNGExports(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When exporting the progression chart", func() {
			img, err := svc.ProgressionPNG(ctx, 2021)

			Convey("Then a PNG comes back", func() {
				So(err, ShouldBeNil)
				So(len(img), ShouldBeGreaterThan, 8)
			})
		})

		Convey("When exporting charts for an empty year", func() {
			_, err := svc.ProgressionPNG(ctx, 1950)

			Convey("Then it reports there is nothing to draw", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
