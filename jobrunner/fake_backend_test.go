package jobrunner_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/relloyd/hptransform/constants"
)

// fakeBackend serves the Storage API index and both job backends from one httptest server.
type fakeBackend struct {
	server   *httptest.Server
	mu       sync.Mutex
	features []string
	services []map[string]string
	// syrupJobs maps component id to the finished job document returned for it.
	syrupJobs map[string]map[string]interface{}
	// syrupDelay is how long the syrup backend takes to answer.
	syrupDelay time.Duration
	// createWithoutId makes the queue backend omit the id of created jobs.
	createWithoutId bool
	// queueJob is returned once the job has been polled pendingPolls times.
	queueJob     map[string]interface{}
	pendingPolls int
	polls        int
	requests     []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Token  string
	RunId  string
	Body   map[string]interface{}
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{syrupJobs: make(map[string]map[string]interface{})}
	r := mux.NewRouter()
	r.HandleFunc("/v2/storage/", f.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/v2/storage/tokens/verify", f.handleVerify).Methods(http.MethodGet)
	r.HandleFunc("/syrup/docker/{component}/run", f.handleSyrupRun).Methods(http.MethodPost)
	r.HandleFunc("/queue/jobs", f.handleQueueCreate).Methods(http.MethodPost)
	r.HandleFunc("/queue/jobs/{id}", f.handleQueueGet).Methods(http.MethodGet)
	f.server = httptest.NewServer(r)
	f.services = []map[string]string{
		{"id": "syrup", "url": f.server.URL + "/syrup"},
		{"id": "queue", "url": f.server.URL + "/queue/"},
	}
	return f
}

func (f *fakeBackend) Close() {
	f.server.Close()
}

func (f *fakeBackend) URL() string {
	return f.server.URL
}

func (f *fakeBackend) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	retval := make([]recordedRequest, len(f.requests))
	copy(retval, f.requests)
	return retval
}

func (f *fakeBackend) Polls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}

func (f *fakeBackend) record(r *http.Request) {
	rec := recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Token:  r.Header.Get(constants.HeaderStorageApiToken),
		RunId:  r.Header.Get(constants.HeaderRunId),
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, rec)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeBackend) handleIndex(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	writeJSON(w, map[string]interface{}{"services": f.services})
}

func (f *fakeBackend) handleVerify(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	writeJSON(w, map[string]interface{}{"owner": map[string]interface{}{"features": f.features}})
}

func (f *fakeBackend) handleSyrupRun(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	if f.syrupDelay > 0 {
		select {
		case <-time.After(f.syrupDelay):
		case <-r.Context().Done():
			return
		}
	}
	job, ok := f.syrupJobs[mux.Vars(r)["component"]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"component not found"}`))
		return
	}
	writeJSON(w, job)
}

func (f *fakeBackend) handleQueueCreate(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	if f.createWithoutId {
		writeJSON(w, map[string]interface{}{"status": "created", "isFinished": false})
		return
	}
	writeJSON(w, map[string]interface{}{"id": "123", "status": "created", "isFinished": false})
}

func (f *fakeBackend) handleQueueGet(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	f.mu.Lock()
	f.polls++
	polls := f.polls
	f.mu.Unlock()
	if polls <= f.pendingPolls {
		writeJSON(w, map[string]interface{}{"id": mux.Vars(r)["id"], "status": "processing", "isFinished": false, "result": []interface{}{}})
		return
	}
	writeJSON(w, f.queueJob)
}
