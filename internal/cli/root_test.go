package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/customer-tracker-api/infrastructure/repository"
	"github.com/vfg2006/customer-tracker-api/internal/config"
	"github.com/vfg2006/customer-tracker-api/internal/domain"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
)

// sharedStore devolve sempre o mesmo store, simulando execuções sobre o mesmo arquivo
func sharedStore(t *testing.T) (StoreOpener, tracking.Tracker) {
	t.Helper()

	store := tracking.NewService(repository.NewMemoryKeyValueRepository())
	require.NoError(t, store.Load(context.Background()))

	opener := func(ctx context.Context, cfg config.Database) (tracking.Tracker, func() error, error) {
		assert.Equal(t, config.DriverMemory, cfg.Driver)
		return store, func() error { return nil }, nil
	}

	return opener, store
}

func run(t *testing.T, opener StoreOpener, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(opener)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--driver", "memory"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"summary", "list", "add", "delete", "export", "clear"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSummaryCommand(t *testing.T) {
	opener, _ := sharedStore(t)

	out, err := run(t, opener, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "743")
	assert.Contains(t, out, "27.5%")
	assert.Contains(t, out, "$38.91")
	assert.Contains(t, out, "5.5%")

	out, err = run(t, opener, "summary", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalAcquired": 743`)

	_, err = run(t, opener, "summary", "--format", "yaml")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	opener, _ := sharedStore(t)

	out, err := run(t, opener, "list", "acquisitions")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "Jan 2024")
	assert.Contains(t, lines[1], "31.0%")

	out, err = run(t, opener, "list", "churn")
	require.NoError(t, err)
	assert.Contains(t, out, "Jun 2024")

	_, err = run(t, opener, "list", "leads")
	assert.Error(t, err)
}

func TestAddAndDeleteCommands(t *testing.T) {
	opener, store := sharedStore(t)

	out, err := run(t, opener, "add", "acquisition", "--month", "2024-01", "--new-customers", "50", "--total-leads", "100", "--cost", "1000")
	require.NoError(t, err)
	assert.Equal(t, "Acquisition record updated successfully!\n", out)
	assert.Equal(t, 50.0, store.AcquisitionRows()[0].AcquisitionRate)

	out, err = run(t, opener, "add", "churn", "--month", "2024-07", "--total-start", "700", "--churned", "21")
	require.NoError(t, err)
	assert.Equal(t, "Churn record added successfully!\n", out)
	assert.Len(t, store.Churns(), 7)

	_, err = run(t, opener, "add", "churn", "--month", "2024-7", "--total-start", "700", "--churned", "21")
	assert.Error(t, err)

	out, err = run(t, opener, "delete", "acquisition", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01")
	assert.Equal(t, "2024-02", store.Acquisitions()[0].Month)

	_, err = run(t, opener, "delete", "churn", "99")
	assert.ErrorIs(t, err, tracking.ErrOutOfRange)

	_, err = run(t, opener, "delete", "churn", "first")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	opener, _ := sharedStore(t)

	out, err := run(t, opener, "export", "churn")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Month,Total Customers Start,Churned Customers,Churn Rate (%)\n"))

	target := filepath.Join(t.TempDir(), "acq.csv")
	_, err = run(t, opener, "export", "acquisitions", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-06,145,521,6102,27.8,42.08")
}

func TestClearCommand(t *testing.T) {
	opener, store := sharedStore(t)

	_, err := run(t, opener, "clear")
	assert.ErrorIs(t, err, errClearNotConfirmed)
	assert.Len(t, store.Acquisitions(), 6)

	out, err := run(t, opener, "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "All data cleared successfully!\n", out)
	assert.Equal(t, domain.Summary{}, store.Summary())

	_, err = run(t, opener, "export", "acquisitions")
	assert.Error(t, err)
}
