package jobrunner_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/jobrunner"
	"github.com/relloyd/hptransform/jobrunner/mocks"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/stats"
)

var _ = Describe("SelectRunnerKind", func() {
	It("Should choose the queue when the queuev2 feature is present", func() {
		Expect(jobrunner.SelectRunnerKind([]string{"foo", "queuev2"})).To(Equal(jobrunner.KindQueue))
	})

	It("Should choose syrup otherwise", func() {
		Expect(jobrunner.SelectRunnerKind(nil)).To(Equal(jobrunner.KindSyrup))
		Expect(jobrunner.SelectRunnerKind([]string{})).To(Equal(jobrunner.KindSyrup))
		Expect(jobrunner.SelectRunnerKind([]string{"queuev2-beta", "QUEUEV2"})).To(Equal(jobrunner.KindSyrup))
	})
})

var _ = Describe("NewJobRunner", func() {
	var (
		ctrl    *gomock.Controller
		storage *mocks.MockStorageAPI
		log     logger.NullLogger
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		storage = mocks.NewMockStorageAPI(ctrl)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("Should verify the token once and not fetch services", func() {
		info := &jobrunner.TokenInfo{}
		info.Owner.Features = []string{constants.FeatureQueueV2}
		storage.EXPECT().VerifyToken(gomock.Any()).Return(info, nil).Times(1)
		r, err := jobrunner.NewJobRunner(context.Background(), log, storage, jobrunner.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Kind()).To(Equal(jobrunner.KindQueue))
	})

	It("Should return the syrup runner without the feature", func() {
		storage.EXPECT().VerifyToken(gomock.Any()).Return(&jobrunner.TokenInfo{}, nil)
		r, err := jobrunner.NewJobRunner(context.Background(), log, storage, jobrunner.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Kind()).To(Equal(jobrunner.KindSyrup))
	})

	It("Should return an application error when the token cannot be verified", func() {
		storage.EXPECT().VerifyToken(gomock.Any()).Return(nil, errors.New("HTTP 401"))
		_, err := jobrunner.NewJobRunner(context.Background(), log, storage, jobrunner.Config{})
		Expect(err).To(HaveOccurred())
		Expect(hperrors.ExitCode(err)).To(Equal(hperrors.ExitCodeApplication))
	})
})

var _ = Describe("ServiceRegistry", func() {
	var (
		ctrl    *gomock.Controller
		storage *mocks.MockStorageAPI
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		storage = mocks.NewMockStorageAPI(ctrl)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("Should fetch the index once and return the first match", func() {
		storage.EXPECT().Services(gomock.Any()).Return([]jobrunner.Service{
			{ID: "syrup", URL: "https://syrup.example.com/"},
			{ID: "queue", URL: "https://queue.example.com"},
			{ID: "queue", URL: "https://other.example.com"},
		}, nil).Times(1)
		r := jobrunner.NewServiceRegistry(storage)
		u, err := r.URL(context.Background(), "queue")
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal("https://queue.example.com"))
		u, err = r.URL(context.Background(), "syrup")
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal("https://syrup.example.com"))
	})

	It("Should fail for unknown services", func() {
		storage.EXPECT().Services(gomock.Any()).Return([]jobrunner.Service{{ID: "syrup", URL: "https://syrup.example.com"}}, nil)
		_, err := jobrunner.NewServiceRegistry(storage).URL(context.Background(), "queue")
		Expect(err).To(MatchError("queue service not found"))
		Expect(hperrors.IsUserError(err)).To(BeFalse())
	})
})

var _ = Describe("SyrupJobRunner", func() {
	var (
		backend *fakeBackend
		runner  jobrunner.JobRunner
		log     logger.NullLogger
		data    map[string]interface{}
	)

	BeforeEach(func() {
		backend = newFakeBackend()
		storage := jobrunner.NewStorageApiClient(nil, backend.URL(), "my-token", "run-1")
		runner = jobrunner.NewSyrupJobRunner(log, jobrunner.NewServiceRegistry(storage), jobrunner.Config{Token: "my-token", RunId: "run-1"})
		data = map[string]interface{}{"parameters": map[string]interface{}{"tableId": "in.c-main.t"}}
	})

	AfterEach(func() {
		backend.Close()
	})

	It("Should return the finished job", func() {
		backend.syrupJobs["keboola.wr-db-oracle"] = map[string]interface{}{"id": 456, "status": "success", "isFinished": true, "result": map[string]interface{}{"message": "done"}}
		job, err := runner.RunJob(context.Background(), "keboola.wr-db-oracle", data)
		Expect(err).NotTo(HaveOccurred())
		Expect(job.ID).To(Equal(jobrunner.JobID("456")))
		reqs := backend.Requests()
		Expect(reqs).To(HaveLen(2))
		Expect(reqs[1].Path).To(Equal("/syrup/docker/keboola.wr-db-oracle/run"))
		Expect(reqs[1].Token).To(Equal("my-token"))
		Expect(reqs[1].RunId).To(Equal("run-1"))
		Expect(reqs[1].Body).To(HaveKeyWithValue("configData", HaveKeyWithValue("parameters", HaveKeyWithValue("tableId", "in.c-main.t"))))
	})

	It("Should return a JobError for failed jobs", func() {
		backend.syrupJobs["keboola.wr-db-oracle"] = map[string]interface{}{"id": 7, "status": "error", "isFinished": true, "result": map[string]interface{}{"message": "disk full"}}
		job, err := runner.RunJob(context.Background(), "keboola.wr-db-oracle", data)
		var jobErr *jobrunner.JobError
		Expect(errors.As(err, &jobErr)).To(BeTrue())
		Expect(jobErr.IsStatusError()).To(BeTrue())
		Expect(jobErr.Message).To(Equal("disk full"))
		Expect(job.ID).To(Equal(jobrunner.JobID("7")))
	})

	It("Should default the message for other statuses", func() {
		backend.syrupJobs["keboola.ex-db-oracle"] = map[string]interface{}{"id": 8, "status": "cancelled", "isFinished": true, "result": []interface{}{}}
		_, err := runner.RunJob(context.Background(), "keboola.ex-db-oracle", data)
		var jobErr *jobrunner.JobError
		Expect(errors.As(err, &jobErr)).To(BeTrue())
		Expect(jobErr.IsStatusError()).To(BeFalse())
		Expect(jobErr.Status).To(Equal("cancelled"))
		Expect(jobErr.Message).To(Equal("No message"))
	})

	It("Should wait for jobs that take longer than the client timeout", func() {
		storage := jobrunner.NewStorageApiClient(nil, backend.URL(), "my-token", "run-1")
		runner = jobrunner.NewSyrupJobRunner(log, jobrunner.NewServiceRegistry(storage), jobrunner.Config{
			Token:      "my-token",
			HttpClient: jobrunner.NewHttpClient(50 * time.Millisecond),
		})
		backend.syrupDelay = 300 * time.Millisecond
		backend.syrupJobs["keboola.wr-db-oracle"] = map[string]interface{}{"id": 1, "status": "success", "isFinished": true}
		job, err := runner.RunJob(context.Background(), "keboola.wr-db-oracle", data)
		Expect(err).NotTo(HaveOccurred())
		Expect(job.ID).To(Equal(jobrunner.JobID("1")))
	})

	It("Should stop waiting when the context is done", func() {
		backend.syrupDelay = 10 * time.Second
		backend.syrupJobs["keboola.wr-db-oracle"] = map[string]interface{}{"id": 1, "status": "success", "isFinished": true}
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := runner.RunJob(ctx, "keboola.wr-db-oracle", data)
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})

	It("Should return HTTP errors", func() {
		_, err := runner.RunJob(context.Background(), "unknown", data)
		var httpErr *jobrunner.HTTPError
		Expect(errors.As(err, &httpErr)).To(BeTrue())
		Expect(httpErr.StatusCode).To(Equal(404))
	})
})

var _ = Describe("QueueJobRunner", func() {
	var (
		backend *fakeBackend
		runner  jobrunner.JobRunner
		s       *stats.PipelineStats
		log     logger.NullLogger
	)

	BeforeEach(func() {
		backend = newFakeBackend()
		s = stats.NewPipelineStats()
		storage := jobrunner.NewStorageApiClient(nil, backend.URL(), "my-token", "")
		runner = jobrunner.NewQueueJobRunner(log, jobrunner.NewServiceRegistry(storage), jobrunner.Config{
			Token:      "my-token",
			PollPolicy: jobrunner.FlatPolicy{Interval: time.Millisecond},
			Stats:      s,
		})
	})

	AfterEach(func() {
		backend.Close()
	})

	It("Should poll until the job is finished", func() {
		backend.pendingPolls = 2
		backend.queueJob = map[string]interface{}{"id": "123", "status": "success", "isFinished": true}
		job, err := runner.RunJob(context.Background(), "keboola.wr-db-oracle", map[string]interface{}{"a": 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(job.ID).To(Equal(jobrunner.JobID("123")))
		Expect(backend.Polls()).To(Equal(3))
		reqs := backend.Requests()
		Expect(reqs[1].Path).To(Equal("/queue/jobs"))
		Expect(reqs[1].Body).To(HaveKeyWithValue("component", "keboola.wr-db-oracle"))
		Expect(reqs[1].Body).To(HaveKeyWithValue("mode", "run"))
		Expect(reqs[1].Body).To(HaveKeyWithValue("configData", HaveKeyWithValue("a", BeNumerically("==", 1))))
		Expect(reqs[2].Path).To(Equal("/queue/jobs/123"))
		om, err := s.Summary()
		Expect(err).NotTo(HaveOccurred())
		v, ok := om.Get(stats.MetricPollAttempts)
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("==", 3))
	})

	It("Should return a JobError for failed jobs", func() {
		backend.queueJob = map[string]interface{}{"id": "123", "status": "error", "isFinished": true, "result": map[string]interface{}{"message": "disk full"}}
		_, err := runner.RunJob(context.Background(), "keboola.wr-db-oracle", nil)
		var jobErr *jobrunner.JobError
		Expect(errors.As(err, &jobErr)).To(BeTrue())
		Expect(jobErr.Message).To(Equal("disk full"))
	})

	It("Should fail when the created job has no id", func() {
		backend.createWithoutId = true
		_, err := runner.RunJob(context.Background(), "keboola.wr-db-oracle", nil)
		Expect(err).To(MatchError(`queue job for component "keboola.wr-db-oracle" was created without an id`))
		Expect(hperrors.IsUserError(err)).To(BeFalse())
		Expect(backend.Polls()).To(Equal(0))
	})

	It("Should stop polling when the context is done", func() {
		backend.pendingPolls = 1 << 30
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := runner.RunJob(ctx, "keboola.wr-db-oracle", nil)
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})
})

var _ = Describe("PollPolicy", func() {
	It("Should wait the same interval with the flat policy", func() {
		p, err := jobrunner.NewPollPolicy(constants.PollPolicyFlat, 0)
		Expect(err).NotTo(HaveOccurred())
		for attempt := 1; attempt < 10; attempt++ {
			Expect(p.Delay(attempt)).To(Equal(10 * time.Second))
		}
	})

	It("Should double up to the cap with the exponential policy", func() {
		p, err := jobrunner.NewPollPolicy(constants.PollPolicyExponential, 10*time.Second)
		Expect(err).NotTo(HaveOccurred())
		expected := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
		for i, d := range expected {
			Expect(p.Delay(i + 1)).To(Equal(d))
		}
	})

	It("Should reject unknown policies", func() {
		_, err := jobrunner.NewPollPolicy("random", time.Second)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Job", func() {
	It("Should accept numeric and string ids", func() {
		var j jobrunner.Job
		Expect(json.Unmarshal([]byte(`{"id": 12345, "status": "success"}`), &j)).To(Succeed())
		Expect(j.ID).To(Equal(jobrunner.JobID("12345")))
		Expect(json.Unmarshal([]byte(`{"id": "abc"}`), &j)).To(Succeed())
		Expect(j.ID).To(Equal(jobrunner.JobID("abc")))
	})

	It("Should treat an empty result array as no message", func() {
		var j jobrunner.Job
		Expect(json.Unmarshal([]byte(`{"id": 1, "result": []}`), &j)).To(Succeed())
		Expect(j.GetMessage()).To(Equal("No message"))
	})
})
