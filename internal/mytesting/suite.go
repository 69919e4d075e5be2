package mytesting

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/habiliai/searchchat/internal/mylog"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const testTimeout = 30 * time.Second

// Suite gives each test a deadline-bound context and a logger whose output is captured in Logs.
type Suite struct {
	suite.Suite
	context.Context

	Cancel context.CancelFunc
	Logger *slog.Logger
	Logs   *LogBuffer
}

type LogBuffer struct {
	mtx sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.buf.String()
}

func (s *Suite) SetupTest() {
	if root, err := projectRoot(); err == nil {
		envFile := filepath.Join(root, ".env")
		if _, err := os.Stat(envFile); err == nil {
			s.Require().NoError(godotenv.Load(envFile))
		}
	}

	s.Logs = &LogBuffer{}
	s.Logger = mylog.NewLoggerWithWriter(s.Logs, "debug", "json")
	s.Context, s.Cancel = context.WithTimeout(context.Background(), testTimeout)
}

func (s *Suite) TearDownTest() {
	s.Cancel()
	if s.T().Failed() {
		s.T().Logf("captured logs:\n%s", s.Logs.String())
	}
}

func projectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to get caller information")
	}

	for dir := filepath.Dir(filename); ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}
