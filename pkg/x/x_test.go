package x

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, Wrapf(nil, "reading %s", "config"))
	err := Wrapf(errors.New("boom"), "reading %s", "config")
	require.EqualError(t, err, "reading config: boom")
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger(LogOptions{Level: "loud"})
	require.Error(t, err)

	l, err := NewLogger(LogOptions{Level: "debug", Development: true})
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(-1))

	dir := t.TempDir()
	l, err = NewLogger(LogOptions{Level: "info", Dir: dir, Filename: "test.log"})
	require.NoError(t, err)
	l.Info("hello")
	Sync(l)
	raw, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "hello")

	Sync(nil)
}

func TestSubCommand(t *testing.T) {
	sc := SubCommand{Cmd: &cobra.Command{Use: "test"}, Conf: viper.New()}
	sc.Conf.Set("lang", "hu")
	sc.Conf.Set("n", 3)
	sc.Conf.Set("timeout", "2s")
	sc.Conf.Set("json", true)
	sc.Conf.Set("brokers", []string{"a:1", "b:2"})

	require.Equal(t, "hu", sc.GetStringP("lang", "l", "pt"))
	require.Equal(t, "pt", sc.GetStringP("missing", "m", "pt"))
	require.Equal(t, 3, sc.GetIntP("workers", "n", 0))
	require.Equal(t, 2*time.Second, sc.GetDurationP("timeout", "", time.Second))
	require.True(t, sc.GetBoolP("json", "", false))
	require.Equal(t, []string{"a:1", "b:2"}, sc.GetStringSliceP("brokers", "", nil))
}

func TestMetricsHandler(t *testing.T) {
	WordsStemmed.WithLabelValues("hu", "test").Add(2)

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `wordstem_words_stemmed_total{language="hu",transport="test"} 2`)
}
