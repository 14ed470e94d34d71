package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pitwall/pitboard/internal/adapters/http/api"
	"github.com/pitwall/pitboard/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	years    []int
	view     api.SeasonView
	viewErr  error
	rankings []api.Standing
	rankErr  error
	circuit  []api.Standing
	circErr  error
	png      []byte
	pngErr   error
	lastYear int
	lastName string
}

func (m *mockDependencies) Years(ctx context.Context) []int {
	return m.years
}

func (m *mockDependencies) Season(ctx context.Context, year int) (api.SeasonView, error) {
	m.lastYear = year
	return m.view, m.viewErr
}

func (m *mockDependencies) SeasonRankings(ctx context.Context, year int) ([]api.Standing, error) {
	m.lastYear = year
	return m.rankings, m.rankErr
}

func (m *mockDependencies) CircuitRankings(ctx context.Context, year int, name string) ([]api.Standing, error) {
	m.lastYear = year
	m.lastName = name
	return m.circuit, m.circErr
}

func (m *mockDependencies) ProgressionPNG(ctx context.Context, year int) ([]byte, error) {
	return m.png, m.pngErr
}

func (m *mockDependencies) StandingsPNG(ctx context.Context, year int) ([]byte, error) {
	return m.png, m.pngErr
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"status": "ok"}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{years: []int{2023, 2022}}
		mux := newTestMux(deps)

		Convey("Then the health endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should return JSON", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
			So(w.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("And stats should reject non-GET methods", func() {
			req := httptest.NewRequest("POST", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSeasonsHandler(t *testing.T) {
	Convey("Given a seasons listing endpoint", t, func() {
		deps := &mockDependencies{years: []int{2023, 2022, 2021}}
		mux := newTestMux(deps)

		Convey("When listing seasons", func() {
			req := httptest.NewRequest("GET", "/api/seasons", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the years should come back newest first", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Years []int `json:"years"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Years, ShouldResemble, []int{2023, 2022, 2021})
			})

			Convey("And the response should carry a request ID", func() {
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When a caller supplies its own request ID", func() {
			req := httptest.NewRequest("GET", "/api/seasons", nil)
			req.Header.Set("X-Request-ID", "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the supplied ID should be echoed back", func() {
				So(w.Header().Get("X-Request-ID"), ShouldEqual, "abc-123")
			})
		})

		Convey("When using a non-GET method", func() {
			req := httptest.NewRequest("DELETE", "/api/seasons", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSeasonHandler(t *testing.T) {
	Convey("Given a season payload endpoint", t, func() {
		deps := &mockDependencies{
			view: api.SeasonView{Year: 2023, Title: "Formula 1 Season 2023"},
		}
		mux := newTestMux(deps)

		Convey("When requesting a season by year", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the render payload should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var view api.SeasonView
				So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
				So(view.Year, ShouldEqual, 2023)
				So(view.Title, ShouldEqual, "Formula 1 Season 2023")
				So(deps.lastYear, ShouldEqual, 2023)
			})
		})

		Convey("When the year is not a number", func() {
			req := httptest.NewRequest("GET", "/api/seasons/nineteen", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the path nests too deep", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/rankings/extra", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRankingsHandlers(t *testing.T) {
	Convey("Given rankings endpoints", t, func() {
		rows := []api.Standing{
			{Position: 1, Code: "VER", Name: "Max Verstappen", Number: 1, Points: 454},
			{Position: 2, Code: "PER", Name: "Sergio Perez", Number: 11, Points: 305},
			{Position: 3, Code: "HAM", Name: "Lewis Hamilton", Number: 44, Points: 234},
		}
		deps := &mockDependencies{rankings: rows, circuit: rows[:2]}
		mux := newTestMux(deps)

		Convey("When requesting season rankings", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/rankings", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then all rows should be returned in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []api.Standing
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 3)
				So(got[0].Code, ShouldEqual, "VER")
			})
		})

		Convey("When requesting season rankings with a limit", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/rankings?limit=2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then only the top rows should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []api.Standing
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 2)
			})
		})

		Convey("When the limit exceeds the configured cap", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/rankings?limit=5000", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})

		Convey("When requesting circuit rankings", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/circuits/Silverstone%20Circuit/rankings", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the circuit name should be unescaped", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastName, ShouldEqual, "Silverstone Circuit")
				var got []api.Standing
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 2)
			})
		})

		Convey("When the circuit does not exist", func() {
			deps.circErr = standings.ErrCircuitNotFound
			req := httptest.NewRequest("GET", "/api/seasons/2023/circuits/Nowhere/rankings", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404 with a not_found code", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "not_found")
			})
		})
	})
}

func TestChartExportHandlers(t *testing.T) {
	Convey("Given chart export endpoints", t, func() {
		png := []byte("\x89PNG\r\n\x1a\nfakeimage")
		deps := &mockDependencies{png: png}
		mux := newTestMux(deps)

		Convey("When exporting the progression chart", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/progression.png", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a PNG should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				So(strings.HasPrefix(w.Body.String(), "\x89PNG"), ShouldBeTrue)
			})
		})

		Convey("When exporting the standings chart", func() {
			req := httptest.NewRequest("GET", "/api/seasons/2023/standings.png", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a PNG should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
			})
		})
	})
}
