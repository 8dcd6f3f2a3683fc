package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/university/internal/config"
)

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() { c.closed++ }

func TestServe_ShutsDownWhenContextDone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.Server.Port = "0"
	db := &closeRecorder{}
	srv := NewServer(cfg, router, db, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if db.closed != 1 {
		t.Errorf("database closed %d times, want 1", db.closed)
	}
}

func TestRun_ListenFailureClosesDatabase(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	_, port, err := net.SplitHostPort(taken.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	cfg.Server.Port = port
	db := &closeRecorder{}

	if err := NewServer(cfg, gin.New(), db, zerolog.Nop()).Run(context.Background()); err == nil {
		t.Fatal("expected an error for a port in use")
	}
	if db.closed != 1 {
		t.Errorf("database closed %d times, want 1", db.closed)
	}
}
