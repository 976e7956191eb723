package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scout/internal/adapters/http/api"
	"github.com/okian/scout/internal/adapters/repository"
	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/domain/model"
)

// Mock implementations for testing
type mockService struct {
	discoverResult model.DiscoveryResult
	discoverErr    error
	searchResult   model.DiscoveryResult
	searchErr      error
	submitSession  model.Session
	submitErr      error
	sessions       map[string]model.Session

	lastRequest model.DiscoveryRequest
}

func (m *mockService) Discover(_ context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error) {
	m.lastRequest = req
	return m.discoverResult, m.discoverErr
}

func (m *mockService) Search(_ context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error) {
	m.lastRequest = req
	return m.searchResult, m.searchErr
}

func (m *mockService) Submit(_ context.Context, req model.DiscoveryRequest) (model.Session, error) {
	m.lastRequest = req
	return m.submitSession, m.submitErr
}

func (m *mockService) Session(_ context.Context, id string) (model.Session, error) {
	if sess, ok := m.sessions[id]; ok {
		return sess, nil
	}
	return model.Session{}, repository.ErrNotFound
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(svc *mockService, stats *mockStatsProvider) *http.ServeMux {
	server := api.NewServer(svc, stats)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServerRegister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockService{}, &mockStatsProvider{stats: map[string]interface{}{"started": true}})

		Convey("Then the health endpoint responds", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("And the stats endpoint returns provider data", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("And the metrics endpoint serves the registry", func() {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestDiscoverEndpoint(t *testing.T) {
	Convey("Given a discover endpoint", t, func() {
		svc := &mockService{
			discoverResult: model.DiscoveryResult{
				TotalFound:  15,
				UniqueFound: 10,
				FinalCount:  5,
			},
		}
		mux := newMux(svc, &mockStatsProvider{})

		Convey("When posting a valid request", func() {
			w := postJSON(mux, "/discover", `{"tags":["ai","cloud"],"max_articles":5,"platforms":["twitter"]}`)

			Convey("Then it returns the discovery result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var result model.DiscoveryResult
				So(json.Unmarshal(w.Body.Bytes(), &result), ShouldBeNil)
				So(result.TotalFound, ShouldEqual, 15)
				So(result.FinalCount, ShouldEqual, 5)
			})

			Convey("And the request is forwarded unchanged", func() {
				So(svc.lastRequest.Tags, ShouldResemble, []string{"ai", "cloud"})
				So(svc.lastRequest.MaxArticles, ShouldEqual, 5)
				So(svc.lastRequest.Platforms, ShouldResemble, []string{"twitter"})
			})
		})

		Convey("When posting categories", func() {
			w := postJSON(mux, "/discover", `{"tags":["ai"],"categories":["AI","technology"]}`)

			Convey("Then names are normalized to known categories", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(svc.lastRequest.Categories, ShouldResemble, []model.Category{model.CategoryAI, model.CategoryTechnology})
			})
		})

		Convey("When posting malformed JSON", func() {
			w := postJSON(mux, "/discover", `{"tags": [`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting an unknown category", func() {
			w := postJSON(mux, "/discover", `{"tags":["ai"],"categories":["astrology"]}`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "unknown category")
			})
		})

		Convey("When the service rejects empty tags", func() {
			svc.discoverErr = service.ErrNoTags
			w := postJSON(mux, "/discover", `{"tags":[]}`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/discover", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it returns not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSearchEndpoint(t *testing.T) {
	Convey("Given a search endpoint", t, func() {
		svc := &mockService{
			searchResult: model.DiscoveryResult{FinalCount: 3},
		}
		mux := newMux(svc, &mockStatsProvider{})

		Convey("When posting a valid request", func() {
			w := postJSON(mux, "/search", `{"tags":["golang"]}`)

			Convey("Then it returns the ranked result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var result model.DiscoveryResult
				So(json.Unmarshal(w.Body.Bytes(), &result), ShouldBeNil)
				So(result.FinalCount, ShouldEqual, 3)
			})
		})
	})
}

func TestSessionsEndpoint(t *testing.T) {
	Convey("Given a sessions endpoint", t, func() {
		svc := &mockService{
			submitSession: model.Session{ID: "sess-1", Status: model.SessionPending},
			sessions: map[string]model.Session{
				"sess-1": {ID: "sess-1", Status: model.SessionCompleted, Result: &model.DiscoveryResult{FinalCount: 2}},
			},
		}
		mux := newMux(svc, &mockStatsProvider{})

		Convey("When submitting a job", func() {
			w := postJSON(mux, "/sessions", `{"tags":["ai"]}`)

			Convey("Then it is accepted with the pending session", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)

				var sess model.Session
				So(json.Unmarshal(w.Body.Bytes(), &sess), ShouldBeNil)
				So(sess.ID, ShouldEqual, "sess-1")
				So(sess.Status, ShouldEqual, model.SessionPending)
			})
		})

		Convey("When the queue is full", func() {
			svc.submitErr = service.ErrQueueFull
			w := postJSON(mux, "/sessions", `{"tags":["ai"]}`)

			Convey("Then it returns too many requests", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})

		Convey("When the session cap is reached", func() {
			svc.submitErr = service.ErrTooManySessions
			w := postJSON(mux, "/sessions", `{"tags":["ai"]}`)

			Convey("Then it returns too many requests", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})

		Convey("When fetching an existing session", func() {
			req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it returns the snapshot", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var sess model.Session
				So(json.Unmarshal(w.Body.Bytes(), &sess), ShouldBeNil)
				So(sess.Status, ShouldEqual, model.SessionCompleted)
				So(sess.Result.FinalCount, ShouldEqual, 2)
			})
		})

		Convey("When fetching an unknown session", func() {
			req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it returns not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the session path is malformed", func() {
			req := httptest.NewRequest(http.MethodGet, "/sessions/a/b", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}
