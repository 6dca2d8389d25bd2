package middleware

import (
	"github.com/grafana/pyroscope-go"

	"gitfolio-core/internal/config"
)

// InitProfiling starts continuous profiling to Pyroscope. Stop the returned profiler on exit.
func InitProfiling(cfg *config.Config) (*pyroscope.Profiler, error) {
	return pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.Server.Name,
		ServerAddress:   cfg.Profiling.Endpoint,
		Tags: map[string]string{
			"service": cfg.Server.Name,
			"version": cfg.Server.Version,
			"env":     cfg.Server.Env,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
}
