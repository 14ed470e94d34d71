package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pitwall/pitboard/internal/adapters/dataset"
	"github.com/pitwall/pitboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const circuitsCSV = `year,round,name,country,lat,lng
2021,1,Bahrain International Circuit,Bahrain,26.0325,50.5106
2021,2,Autodromo Enzo e Dino Ferrari,Italy,44.3439,11.7167
2020,1,Red Bull Ring,Austria,47.2197,14.7647
`

const driversCSV = `year,round,code,forename,surname,number,points,position
2021,1,HAM,Lewis,Hamilton,44,25,1
2021,1,VER,Max,Verstappen,33,18,2
2021,2,VER,Max,Verstappen,33,43,1
2021,2,HAM,Lewis,Hamilton,44,43,2
2020,1,BOT,Valtteri,Bottas,77,25,1
`

func writeDataDir(t *testing.T, circuits, drivers string) string {
	t.Helper()
	dir := t.TempDir()
	if circuits != "" {
		if err := os.WriteFile(filepath.Join(dir, "circuits.csv"), []byte(circuits), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if drivers != "" {
		if err := os.WriteFile(filepath.Join(dir, "drivers.csv"), []byte(drivers), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCSVStoreLoad(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a data directory with both tables", t, func() {
		dir := writeDataDir(t, circuitsCSV, driversCSV)
		store := dataset.NewCSVStore(ctx, dataset.WithDataDir(dir))

		Convey("When loading", func() {
			err := store.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then circuit rows carry their parsed columns", func() {
				circuits, err := store.Circuits(ctx)
				So(err, ShouldBeNil)
				So(circuits, ShouldHaveLength, 3)
				So(circuits[0].Name, ShouldEqual, "Bahrain International Circuit")
				So(circuits[0].Lat, ShouldAlmostEqual, 26.0325)
				So(circuits[0].Lng, ShouldAlmostEqual, 50.5106)
			})

			Convey("And driver rows carry theirs", func() {
				drivers, err := store.Drivers(ctx)
				So(err, ShouldBeNil)
				So(drivers, ShouldHaveLength, 5)
				So(drivers[2].Code, ShouldEqual, "VER")
				So(drivers[2].Points, ShouldEqual, 43.0)
				So(drivers[2].Position, ShouldEqual, 1)
			})

			Convey("And repeated reads serve the same snapshot without rereading", func() {
				first, err := store.Circuits(ctx)
				So(err, ShouldBeNil)
				So(os.Remove(filepath.Join(dir, "circuits.csv")), ShouldBeNil)
				second, err := store.Circuits(ctx)
				So(err, ShouldBeNil)
				So(&second[0], ShouldEqual, &first[0])
			})
		})
	})

	Convey("Given a missing drivers table", t, func() {
		dir := writeDataDir(t, circuitsCSV, "")
		store := dataset.NewCSVStore(ctx, dataset.WithDataDir(dir))

		Convey("When loading", func() {
			err := store.Load(ctx)

			Convey("Then it fails with ErrUnavailable", func() {
				So(err, ShouldWrap, dataset.ErrUnavailable)
			})

			Convey("And reads report the dataset unavailable", func() {
				_, err := store.Drivers(ctx)
				So(err, ShouldEqual, dataset.ErrUnavailable)
			})
		})
	})

	Convey("Given a drivers table with a missing column", t, func() {
		bad := "year,round,code,forename,surname,number,points\n2021,1,HAM,Lewis,Hamilton,44,25\n"
		dir := writeDataDir(t, circuitsCSV, bad)
		store := dataset.NewCSVStore(ctx, dataset.WithDataDir(dir))

		Convey("When loading", func() {
			err := store.Load(ctx)

			Convey("Then it fails with ErrUnavailable wrapping ErrMissingColumn", func() {
				So(err, ShouldWrap, dataset.ErrUnavailable)
				So(err, ShouldWrap, dataset.ErrMissingColumn)
				So(err.Error(), ShouldContainSubstring, "position")
			})
		})
	})

	Convey("Given a circuits table with a malformed cell", t, func() {
		bad := "year,round,name,country,lat,lng\n2021,one,Bahrain International Circuit,Bahrain,26.0,50.5\n"
		dir := writeDataDir(t, bad, driversCSV)
		store := dataset.NewCSVStore(ctx, dataset.WithDataDir(dir))

		Convey("When loading", func() {
			err := store.Load(ctx)

			Convey("Then the error names the offending line and column", func() {
				So(err, ShouldWrap, dataset.ErrUnavailable)
				So(err.Error(), ShouldContainSubstring, "line 2")
				So(err.Error(), ShouldContainSubstring, "column round")
			})
		})
	})
}

func TestCSVStoreWatch(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a store watching its source files", t, func() {
		dir := writeDataDir(t, circuitsCSV, driversCSV)
		reloaded := make(chan struct{}, 1)
		store := dataset.NewCSVStore(ctx,
			dataset.WithDataDir(dir),
			dataset.WithReloadInterval(10*time.Millisecond),
			dataset.WithReloadHook(func() {
				select {
				case reloaded <- struct{}{}:
				default:
				}
			}),
		)
		So(store.Load(ctx), ShouldBeNil)
		store.Watch(ctx)
		defer store.Stop()

		Convey("When a source file changes", func() {
			extended := driversCSV + "2021,3,VER,Max,Verstappen,33,69,1\n"
			path := filepath.Join(dir, "drivers.csv")
			So(os.WriteFile(path, []byte(extended), 0o600), ShouldBeNil)
			future := time.Now().Add(time.Second)
			So(os.Chtimes(path, future, future), ShouldBeNil)

			Convey("Then the snapshot is reloaded and the hook fires", func() {
				select {
				case <-reloaded:
				case <-time.After(2 * time.Second):
					t.Fatal("reload hook never fired")
				}
				drivers, err := store.Drivers(ctx)
				So(err, ShouldBeNil)
				So(drivers, ShouldHaveLength, 6)
			})
		})
	})

	Convey("Given a store with no reload interval", t, func() {
		dir := writeDataDir(t, circuitsCSV, driversCSV)
		store := dataset.NewCSVStore(ctx, dataset.WithDataDir(dir))
		So(store.Load(ctx), ShouldBeNil)

		Convey("When watching and stopping", func() {
			store.Watch(ctx)

			Convey("Then Stop returns immediately", func() {
				done := make(chan struct{})
				go func() {
					store.Stop()
					close(done)
				}()
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("Stop blocked with no watcher running")
				}
			})
		})
	})
}
