package main

import (
	"context"
	"encoding/json"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"
)

// Start a test HTTP server that can be used as a mock for the Tautulli API

var (
	app    = kingpin.New("test-server", "Mock Tautulli activity server.")
	addr   = app.Flag("addr", "Address to listen on.").Default(":8181").String()
	apiKey = app.Flag("api-key", "API key the clients must send.").Default("test").String()
	step   = app.Flag("step", "How long each stream count is reported.").Default("30s").Duration()
	counts = app.Arg("counts", "Stream counts to cycle through.").Default("3", "0", "12", "30").Ints()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if *step <= 0 {
		log.Fatal("The step must be positive.")
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2", activityHandler(*apiKey, *counts, *step))
	server := http.Server{Addr: *addr, Handler: mux}
	log.Infof("Starting mock Tautulli server on %v.", server.Addr)

	go func() {
		<-signalChan
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

type envelope struct {
	Response response `json:"response"`
}

type response struct {
	Result  string  `json:"result"`
	Message *string `json:"message"`
	Data    any     `json:"data"`
}

func activityHandler(key string, counts []int, step time.Duration) func(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	l := sync.Mutex{}
	last := -1

	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)

		q := req.URL.Query()
		if q.Get("apikey") != key {
			msg := "Invalid apikey"
			w.WriteHeader(http.StatusUnauthorized)
			enc.Encode(envelope{Response: response{Result: "error", Message: &msg, Data: struct{}{}}})
			return
		}
		if q.Get("cmd") != "get_activity" {
			msg := "Unknown command: " + q.Get("cmd")
			w.WriteHeader(http.StatusBadRequest)
			enc.Encode(envelope{Response: response{Result: "error", Message: &msg, Data: struct{}{}}})
			return
		}

		l.Lock()
		i := int(time.Since(start)/step) % len(counts)
		if i != last {
			log.Infof("Now reporting %d streams", counts[i])
			last = i
		}
		l.Unlock()

		enc.Encode(envelope{Response: response{
			Result: "success",
			Data: map[string]any{
				"stream_count": strconv.Itoa(counts[i]),
				"sessions":     []any{},
			},
		}})
	}
}
