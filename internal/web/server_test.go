package web

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewServerValidation(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	cases := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing address",
			config:  Config{AdminCode: testAdminCode, Service: svc},
			wantErr: "http address is required",
		},
		{
			name:    "missing service",
			config:  Config{HTTPAddr: "localhost:0", AdminCode: testAdminCode},
			wantErr: "details service is required",
		},
		{
			name:    "missing admin code",
			config:  Config{HTTPAddr: "localhost:0", Service: svc},
			wantErr: "admin code is required",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewServer(tc.config)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestNewServerGeneratesSigningKey(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr:  "localhost:0",
		AdminCode: testAdminCode,
		Service:   &fakeService{},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if server.Handler() == nil {
		t.Fatal("expected a handler")
	}
}

func TestListenAndServeStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr:  "localhost:0",
		AdminCode: testAdminCode,
		Service:   &fakeService{},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
