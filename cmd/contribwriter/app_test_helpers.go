package main

import (
	"bytes"
	"context"

	"github.com/rdrkr/contribution-writer/internal/config"
	"github.com/rdrkr/contribution-writer/internal/graph"
	"github.com/rdrkr/contribution-writer/internal/logger"
)

// writeCall records one WriteWord invocation on the mock writer
type writeCall struct {
	Word    string
	Year    int
	PlanLen int
}

// mockWriter is a WordWriter that records calls instead of running git
type mockWriter struct {
	VerifyErr    error
	WriteErr     error
	Calls        []writeCall
	SummaryCalls int
}

func (m *mockWriter) Verify() error {
	return m.VerifyErr
}

func (m *mockWriter) WriteWord(ctx context.Context, word string, year int, plan []graph.PlanEntry) error {
	m.Calls = append(m.Calls, writeCall{Word: word, Year: year, PlanLen: len(plan)})
	return m.WriteErr
}

func (m *mockWriter) PrintSummary() {
	m.SummaryCalls++
}

// mockLocker is a Locker that records acquire/release calls
type mockLocker struct {
	AcquireErr   error
	AcquireCalls int
	ReleaseCalls int
}

func (m *mockLocker) Acquire() error {
	m.AcquireCalls++
	return m.AcquireErr
}

func (m *mockLocker) Release() error {
	m.ReleaseCalls++
	return nil
}

// testApp wires an App with mocks and in-memory output buffers
func testApp(cfg *config.Config) (*App, *mockWriter, *mockLocker, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	writer := &mockWriter{}
	locker := &mockLocker{}

	app := NewApp(AppOptions{
		Config: cfg,
		Logger: logger.NewWithOutput(false, "", true, &out, &errOut),
		Locker: locker,
		Writer: writer,
		Stdout: &out,
		Stderr: &errOut,
		Exit:   func(code int) {},
		ExecLookPath: func(file string) (string, error) {
			return "/usr/bin/" + file, nil
		},
		IsRepository: func(string) bool { return true },
	})

	return app, writer, locker, &out, &errOut
}
