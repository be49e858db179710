package logger_test

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/college-costs/pkg/logger"
)

var _ = Describe("Logger", func() {
	ctx := context.Background()

	Describe("New", func() {
		It("should default to info for invalid level", func() {
			log := logger.New(logger.Options{Level: "invalid", Environment: "dev"})
			Expect(log.Enabled(ctx, slog.LevelInfo)).To(BeTrue())
			Expect(log.Enabled(ctx, slog.LevelDebug)).To(BeFalse())
		})

		It("should respect debug level", func() {
			log := logger.New(logger.Options{Level: "debug", Environment: "dev"})
			Expect(log.Enabled(ctx, slog.LevelDebug)).To(BeTrue())
		})

		It("should respect warn level", func() {
			log := logger.New(logger.Options{Level: "warn", Environment: "dev"})
			Expect(log.Enabled(ctx, slog.LevelInfo)).To(BeFalse())
			Expect(log.Enabled(ctx, slog.LevelWarn)).To(BeTrue())
		})

		It("should respect error level", func() {
			log := logger.New(logger.Options{Level: "ERROR", Environment: "dev"})
			Expect(log.Enabled(ctx, slog.LevelWarn)).To(BeFalse())
			Expect(log.Enabled(ctx, slog.LevelError)).To(BeTrue())
		})

		It("should write JSON in prod", func() {
			var buf bytes.Buffer
			log := logger.New(logger.Options{Level: "info", Environment: "prod", Output: &buf})
			log.Info("Catalog loaded", slog.Int("records", 3))

			var record map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
			Expect(record).To(HaveKeyWithValue("msg", "Catalog loaded"))
			Expect(record).To(HaveKeyWithValue("environment", "prod"))
			Expect(record).To(HaveKeyWithValue("service", "college-costs"))
			Expect(record).To(HaveKeyWithValue("records", BeNumerically("==", 3)))
		})

		It("should write text outside prod", func() {
			var buf bytes.Buffer
			log := logger.New(logger.Options{Level: "info", Environment: "dev", Output: &buf})
			log.Info("hello")

			Expect(buf.String()).To(ContainSubstring("msg=hello"))
			Expect(buf.String()).To(ContainSubstring("environment=dev"))
		})

		It("should add source when asked", func() {
			var buf bytes.Buffer
			log := logger.New(logger.Options{Level: "info", Environment: "dev", AddSource: true, Output: &buf})
			log.Info("hello")

			Expect(buf.String()).To(ContainSubstring("source="))
		})
	})

	Describe("ParseLevel", func() {
		DescribeTable("level names",
			func(name string, want slog.Level) {
				Expect(logger.ParseLevel(name)).To(Equal(want))
			},
			Entry("debug", "debug", slog.LevelDebug),
			Entry("info", "info", slog.LevelInfo),
			Entry("warn", "Warn", slog.LevelWarn),
			Entry("error", "error", slog.LevelError),
			Entry("unknown", "", slog.LevelInfo),
		)
	})

	Describe("Discard", func() {
		It("should not be enabled at any level", func() {
			log := logger.Discard()
			Expect(log.Enabled(ctx, slog.LevelError)).To(BeFalse())
		})
	})
})
