// Package bench runs repeated keygen/sign/verify cycles against one
// Dilithium parameter set and exposes the results as Prometheus histograms
// and a counter,
// in the style of cloudflared's metrics server.
package bench

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/latticesig/dilithium"
)

var (
	keygenSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dilithium",
		Subsystem: "bench",
		Name:      "keygen_seconds",
		Help:      "Wall-clock time spent generating a key pair.",
	})
	signSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dilithium",
		Subsystem: "bench",
		Name:      "sign_seconds",
		Help:      "Wall-clock time spent producing a signature.",
	})
	verifySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dilithium",
		Subsystem: "bench",
		Name:      "verify_seconds",
		Help:      "Wall-clock time spent verifying a signature.",
	})
	iterations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dilithium",
		Subsystem: "bench",
		Name:      "iterations_total",
		Help:      "Number of completed keygen/sign/verify cycles.",
	})
)

func init() {
	prometheus.MustRegister(keygenSeconds, signSeconds, verifySeconds, iterations)
}

// Config controls a benchmark run.
type Config struct {
	Mode       int    // 2, 3, or 5
	Iterations int    // number of keygen/sign/verify cycles
	ListenAddr string // if non-empty, serve /metrics here until Run returns
}

// Result summarizes one Run call.
type Result struct {
	Iterations    int
	KeygenTotal   time.Duration
	SignTotal     time.Duration
	VerifyTotal   time.Duration
}

// Run executes Config.Iterations keygen/sign/verify cycles for the chosen
// mode, recording each phase to the package's Prometheus collectors, and
// optionally serves them over HTTP at ListenAddr for the duration of the run.
func Run(ctx context.Context, cfg Config, log *zerolog.Logger) (Result, error) {
	var srv *http.Server
	if cfg.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: cfg.ListenAddr, Handler: mux}
		go func() {
			log.Info().Str("addr", cfg.ListenAddr).Msg("bench metrics server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("bench metrics server stopped")
			}
		}()
		defer srv.Shutdown(ctx)
	}

	message := []byte("dilithium bench payload")
	var result Result

	for i := 0; i < cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		sig, verifyErr, elapsed, err := runOnce(cfg.Mode, message)
		if err != nil {
			return result, err
		}
		result.KeygenTotal += elapsed.keygen
		result.SignTotal += elapsed.sign
		result.VerifyTotal += elapsed.verify
		result.Iterations++

		keygenSeconds.Observe(elapsed.keygen.Seconds())
		signSeconds.Observe(elapsed.sign.Seconds())
		verifySeconds.Observe(elapsed.verify.Seconds())
		iterations.Inc()

		if verifyErr != nil {
			return result, fmt.Errorf("bench: iteration %d produced a signature (%d bytes) that failed to verify: %w", i, len(sig), verifyErr)
		}
	}
	return result, nil
}

type timings struct {
	keygen, sign, verify time.Duration
}

func runOnce(mode int, message []byte) ([]byte, error, timings, error) {
	var t timings

	switch mode {
	case 2:
		start := time.Now()
		key, err := dilithium.GenerateKey2(rand.Reader)
		t.keygen = time.Since(start)
		if err != nil {
			return nil, nil, t, err
		}

		start = time.Now()
		sig, err := key.Sign(rand.Reader, message)
		t.sign = time.Since(start)
		if err != nil {
			return nil, nil, t, err
		}

		start = time.Now()
		verifyErr := key.PublicKey().Verify(sig, message)
		t.verify = time.Since(start)
		return sig, verifyErr, t, nil
	case 3:
		start := time.Now()
		key, err := dilithium.GenerateKey3(rand.Reader)
		t.keygen = time.Since(start)
		if err != nil {
			return nil, nil, t, err
		}

		start = time.Now()
		sig, err := key.Sign(rand.Reader, message)
		t.sign = time.Since(start)
		if err != nil {
			return nil, nil, t, err
		}

		start = time.Now()
		verifyErr := key.PublicKey().Verify(sig, message)
		t.verify = time.Since(start)
		return sig, verifyErr, t, nil
	case 5:
		start := time.Now()
		key, err := dilithium.GenerateKey5(rand.Reader)
		t.keygen = time.Since(start)
		if err != nil {
			return nil, nil, t, err
		}

		start = time.Now()
		sig, err := key.Sign(rand.Reader, message)
		t.sign = time.Since(start)
		if err != nil {
			return nil, nil, t, err
		}

		start = time.Now()
		verifyErr := key.PublicKey().Verify(sig, message)
		t.verify = time.Since(start)
		return sig, verifyErr, t, nil
	default:
		return nil, nil, t, fmt.Errorf("bench: unsupported mode %d", mode)
	}
}
