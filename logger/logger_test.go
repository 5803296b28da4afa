package logger_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/relloyd/hptransform/logger"
)

var _ = Describe("Logger", func() {
	var (
		l         *logger.LoggerImpl
		logOutput *bytes.Buffer
	)

	readLine := func() map[string]interface{} {
		var actual map[string]interface{}
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		return actual
	}

	BeforeEach(func() {
		l = logger.NewLoggerWithFormat("test-service", "debug", logger.FormatJSON, true)
		logOutput = bytes.NewBufferString("")
		l.SetOutput(logOutput)
	})

	It("Should have `test-service` as service name", func() {
		l.Info("Testing")
		Expect(readLine()["service"]).To(Equal("test-service"))
	})

	It("Should have info as log level", func() {
		l.Info("Testing")
		Expect(readLine()["level"]).To(Equal("info"))
	})

	It("Should have warning as log level", func() {
		l.Warn("Testing")
		Expect(readLine()["level"]).To(Equal("warning"))
	})

	It("Should have error as log level with a stack trace", func() {
		l.Error("Testing")
		actual := readLine()
		Expect(actual["level"]).To(Equal("error"))
		Expect(actual["stackTrace"]).ToNot(BeNil())
	})

	It("Should have `Testing` as msg", func() {
		l.Info("Testing")
		Expect(readLine()["msg"]).To(Equal("Testing"))
	})

	It("Should add the run id to every line", func() {
		r := l.WithRunId("run-123")
		r.Info("Testing")
		actual := readLine()
		Expect(actual["runId"]).To(Equal("run-123"))
		Expect(actual["service"]).To(Equal("test-service"))
	})

	It("Should not log below the configured level", func() {
		quiet := logger.NewLoggerWithFormat("test-service", "warn", logger.FormatJSON, false)
		quiet.SetOutput(logOutput)
		quiet.Info("Testing")
		Expect(logOutput.Len()).To(Equal(0))
	})
})
