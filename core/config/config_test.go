package config_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"upvote.app/relay/core/config"
)

var _ = Describe("Load", func() {
	var saved map[string]*string

	setEnv := func(key, value string) {
		if _, tracked := saved[key]; !tracked {
			if old, ok := os.LookupEnv(key); ok {
				saved[key] = &old
			} else {
				saved[key] = nil
			}
		}
		Expect(os.Setenv(key, value)).To(Succeed())
	}

	BeforeEach(func() {
		saved = map[string]*string{}
		// keep godotenv away from any .env next to the package
		setEnv("RELAY_ENV", "test")
	})

	AfterEach(func() {
		for key, old := range saved {
			if old == nil {
				_ = os.Unsetenv(key)
			} else {
				_ = os.Setenv(key, *old)
			}
		}
	})

	It("defaults to the memory backend", func() {
		setEnv("RECORDS_BACKEND", "")
		_ = os.Unsetenv("RECORDS_BACKEND")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Records.Backend).To(Equal(config.BackendMemory))
		Expect(cfg.Roadmap.JoinConcurrency).To(Equal(8))
		Expect(cfg.Port).To(Equal("8080"))
	})

	It("reads backend and pool settings", func() {
		setEnv("RECORDS_BACKEND", "Postgres")
		setEnv("DB_MAX_CONNS", "25")
		setEnv("ROADMAP_JOIN_CONCURRENCY", "3")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Records.Backend).To(Equal(config.BackendPostgres))
		Expect(cfg.Records.DB.MaxConns).To(Equal(int32(25)))
		Expect(cfg.Roadmap.JoinConcurrency).To(Equal(3))
	})

	It("rejects an unknown backend", func() {
		setEnv("RECORDS_BACKEND", "sqlite")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("unknown RECORDS_BACKEND")))
	})

	It("requires arangodb connection settings", func() {
		setEnv("RECORDS_BACKEND", "arangodb")
		setEnv("ARANGO_URL", "")

		_, err := config.Load()
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-positive join concurrency", func() {
		setEnv("RECORDS_BACKEND", "memory")
		setEnv("ROADMAP_JOIN_CONCURRENCY", "0")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("ROADMAP_JOIN_CONCURRENCY")))
	})

	It("splits allowed origins", func() {
		setEnv("RECORDS_BACKEND", "memory")
		setEnv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.HTTP.AllowedOrigins).To(Equal([]string{"https://a.example", "https://b.example"}))
	})

	It("reads log level and sample ratio", func() {
		setEnv("RECORDS_BACKEND", "memory")
		setEnv("LOG_LEVEL", "WARN")
		setEnv("OTEL_TRACE_SAMPLE_RATIO", "0.25")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LogLevel).To(Equal("warn"))
		Expect(cfg.OTel.SampleRatio).To(BeNumerically("~", 0.25))
	})

	It("rejects a sample ratio above one", func() {
		setEnv("RECORDS_BACKEND", "memory")
		setEnv("OTEL_TRACE_SAMPLE_RATIO", "1.5")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("OTEL_TRACE_SAMPLE_RATIO")))
	})

	It("rejects an unknown log level", func() {
		setEnv("RECORDS_BACKEND", "memory")
		setEnv("LOG_LEVEL", "verbose")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("LOG_LEVEL")))
	})
})
