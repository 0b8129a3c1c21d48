package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/adapter/directory"
	"dlt-orchestrator/internal/app"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const cliDirectory = `
enterprises:
  - enterprise_id: 6f1c2a52-3c1e-4d7e-9b0a-0c9a3f1d2e01
    approval_quorum: 1
    token_id: 0.0.5005
    swap_contract_id: 0.0.7007
    treasury_account_id: 0.0.2002
    max_advance_amount: 100000

users:
  - id: 0b4e7c7a-1d9f-4c55-8a9e-1b2c3d4e5f01
    account_id: 0.0.1001
    role: employee
    enterprise_id: 6f1c2a52-3c1e-4d7e-9b0a-0c9a3f1d2e01
`

var cliEmployee = uuid.MustParse("0b4e7c7a-1d9f-4c55-8a9e-1b2c3d4e5f01")

func cliConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Engine: config.EngineConfig{
			AssociationMaxAttempts: 3,
			ScheduleMaxAttempts:    3,
			PaymentTTL:             15 * time.Minute,
			SwapTTL:                10 * time.Minute,
			LockTTL:                10 * time.Second,
			LockWait:               time.Second,
			StaleAfter:             time.Hour,
			SignerTimeout:          time.Second,
		},
		Chain: config.ChainConfig{
			Network:            "testnet",
			NodeAccountIDs:     []string{"0.0.3"},
			ValidDuration:      120 * time.Second,
			MaxTransactionFee:  200000000,
			SwapGas:            300000,
			ScheduleMemoPrefix: "wage-advance:",
		},
		Directory: config.DirectoryConfig{Source: config.DirectoryFile},
	}
}

// engineFixture builds one in-memory engine shared by every command run in a test.
type engineFixture struct {
	app *app.App
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockChainReader(ctrl)
	chain.EXPECT().TokenExists(gomock.Any(), "0.0.5005").Return(true, nil).AnyTimes()
	chain.EXPECT().IsAssociated(gomock.Any(), "0.0.1001", "0.0.5005").Return(false, nil).AnyTimes()

	dir, err := directory.Parse([]byte(cliDirectory))
	require.NoError(t, err)
	a, err := app.Build(context.Background(), cliConfig(), zerolog.Nop(),
		app.WithChainReader(chain), app.WithDirectory(dir))
	require.NoError(t, err)
	return &engineFixture{app: a}
}

// pendingAssociation leaves one PENDING_SIGNATURE operation in the ledger.
func (f *engineFixture) pendingAssociation(t *testing.T) *domain.Operation {
	t.Helper()
	ctx := context.Background()
	req, err := f.app.WageAdvance.CreateRequest(ctx, cliEmployee, 500)
	require.NoError(t, err)
	step, err := f.app.WageAdvance.GetAssociationRequirement(ctx, req.ID, "0.0.1001")
	require.NoError(t, err)
	require.NotNil(t, step.Operation)
	return step.Operation
}

// run executes the root command with the fixture's engine injected.
func (f *engineFixture) run(args ...string) (string, error) {
	cmd := newRootCommand(&RootOptions{
		Open: func(context.Context, *RootOptions) (*app.App, error) {
			return f.app, nil
		},
		LoadConfig: func(string) (*config.Config, error) { return cliConfig(), nil },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"force-complete", "stale", "migrate", "seed"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	for _, flag := range []string{"config", "format", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag --%s", flag)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"stale", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestForceComplete_RequiresFlags(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.run("force-complete", uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestForceComplete_BadID(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.run("force-complete", "not-a-uuid", "--evidence", "x", "--actor", "ops:test")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestForceComplete_JSON(t *testing.T) {
	f := newEngineFixture(t)
	op := f.pendingAssociation(t)

	out, err := f.run("force-complete", op.ID.String(),
		"--evidence", "seen on explorer", "--actor", "ops:maria", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   domain.Operation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, domain.OperationSuccess, resp.Data.Status)

	trail, err := f.app.Ledger.AuditTrail(context.Background(), op.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "ops:maria", trail[1].Actor)
}

func TestForceComplete_UnknownOperation(t *testing.T) {
	f := newEngineFixture(t)

	out, err := f.run("force-complete", uuid.NewString(),
		"--evidence", "x", "--actor", "ops:test", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"status": "error"`)
	assert.Contains(t, out, `"code": "NOT_FOUND_001"`)
}

func TestStale_DefaultThresholdListsNothing(t *testing.T) {
	f := newEngineFixture(t)
	f.pendingAssociation(t)

	out, err := f.run("stale")
	require.NoError(t, err)
	assert.Contains(t, out, "no operations pending signature for more than 1h0m0s")
}

func TestStale_Text(t *testing.T) {
	f := newEngineFixture(t)
	op := f.pendingAssociation(t)
	time.Sleep(5 * time.Millisecond)

	out, err := f.run("stale", "--older-than", "1ms")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, op.ID.String())
	assert.Contains(t, out, string(domain.OperationTokenAssociate))
}

func TestStale_JSONEmptyList(t *testing.T) {
	f := newEngineFixture(t)

	out, err := f.run("stale", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"data": []`)
}

func TestStale_OpenFailure(t *testing.T) {
	cmd := newRootCommand(&RootOptions{
		Open: func(context.Context, *RootOptions) (*app.App, error) {
			return nil, errors.New("no database")
		},
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"stale"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMigrate_Print(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate", "--print"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS operations")
}

func TestMigrate_MemoryDriverRefused(t *testing.T) {
	cmd := newRootCommand(&RootOptions{
		LoadConfig: func(string) (*config.Config, error) { return cliConfig(), nil },
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, strings.Contains(err.Error(), "postgres"))
}

func TestSeed_NeedsDatabaseDirectory(t *testing.T) {
	f := newEngineFixture(t)
	path := t.TempDir() + "/directory.yaml"
	require.NoError(t, os.WriteFile(path, []byte(cliDirectory), 0o600))

	_, err := f.run("seed", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "postgres")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", nil)))
	wrapped := WrapExitError(ExitFailure, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
}
