package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rsvp-backend/domain/dto"
	"rsvp-backend/domain/models"
	"rsvp-backend/infrastructure/postgres"
	"rsvp-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cli-logs")
	if err != nil {
		panic(err)
	}
	if err := logger.Init(dir, false); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// sqliteOpener returns an opener over one SQLite file shared by every command
// run in the test.
func sqliteOpener(t *testing.T, migrate bool) (BackendOpener, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rsvp.db")), postgres.NewGormConfig("silent"))
	require.NoError(t, err)
	if migrate {
		require.NoError(t, postgres.Migrate(db))
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return func() (*Backend, error) { return NewBackend(db, nil), nil }, db
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rsvpctl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"migrate", "import", "stats"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	importCmd, _, err := cmd.Find([]string{"import"})
	require.NoError(t, err)
	guestType := importCmd.Flags().Lookup("type")
	require.NotNil(t, guestType)
	assert.Equal(t, "adult", guestType.DefValue)
	waitlist := importCmd.Flags().Lookup("waitlist")
	require.NotNil(t, waitlist)
	assert.Equal(t, "false", waitlist.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	open, _ := sqliteOpener(t, true)
	_, err := execute(t, newRootCommand(open), "stats", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestMigrateCommand(t *testing.T) {
	open, db := sqliteOpener(t, false)

	out, err := execute(t, newRootCommand(open), "migrate")
	require.NoError(t, err)
	assert.Equal(t, "migrations applied\n", out)
	assert.True(t, db.Migrator().HasTable(&models.Guest{}))
	assert.True(t, db.Migrator().HasTable(&models.Story{}))
}

func TestImportNames(t *testing.T) {
	open, _ := sqliteOpener(t, true)
	path := writeFile(t, "names.txt", "Alice\n\nBob\n")

	out, err := execute(t, newRootCommand(open), "import", path, "--type", "child", "--waitlist")
	require.NoError(t, err)
	assert.Equal(t, "imported 2 guests\n", out)

	out, err = execute(t, newRootCommand(open), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "total: 0\n")
	assert.Contains(t, out, "waitlist: 2")
}

func TestImportYAMLRoster(t *testing.T) {
	open, _ := sqliteOpener(t, true)
	path := writeFile(t, "roster.yaml", `
- name: Head
  email: head@example.com
  familyHeadId: self
- name: Kid
  type: child
- name: Maybe
  isOnWaitlist: true
`)

	out, err := execute(t, newRootCommand(open), "--format", "json", "import", path)
	require.NoError(t, err)

	var guests []dto.GuestResponse
	require.NoError(t, json.Unmarshal([]byte(out), &guests))
	require.Len(t, guests, 3)
	require.NotNil(t, guests[0].FamilyHeadID)
	assert.Equal(t, guests[0].ID, *guests[0].FamilyHeadID)
	assert.Equal(t, "child", guests[1].Type)
	assert.True(t, guests[2].IsOnWaitlist)

	out, err = execute(t, newRootCommand(open), "stats", "--format", "json")
	require.NoError(t, err)
	var stats dto.RosterStatsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, dto.RosterStatsResponse{Total: 2, Adults: 1, Children: 1, Pending: 2, Waitlist: 1}, stats)
}

func TestImportErrors(t *testing.T) {
	open, _ := sqliteOpener(t, true)

	_, err := execute(t, newRootCommand(open), "import", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	path := writeFile(t, "names.txt", "Alice\n")
	_, err = execute(t, newRootCommand(open), "import", path, "--type", "teen")
	assert.Error(t, err)

	_, err = execute(t, newRootCommand(open), "import")
	assert.Error(t, err)
}
