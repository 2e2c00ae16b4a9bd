package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/constants"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" help:"Show store path."`
	DumpEntries *DebugDumpEntriesCmd `cmd:"" help:"Dump the raw stored dream collection."`
	DumpPending *DebugDumpPendingCmd `cmd:"" help:"Dump the raw pending-edit slot."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDumpEntriesCmd struct{}

func (cmd *DebugDumpEntriesCmd) Run(ctx *cli.Context) error {
	return dumpKey(ctx, constants.EntriesKey)
}

type DebugDumpPendingCmd struct{}

func (cmd *DebugDumpPendingCmd) Run(ctx *cli.Context) error {
	return dumpKey(ctx, constants.PendingEditKey)
}

// dumpKey prints a stored value exactly as written, without decoding it
func dumpKey(ctx *cli.Context, key string) error {
	raw, ok, err := ctx.Store.Get(ctx.Ctx(), key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("no value stored under %s", key)
	}

	ctx.Println(raw)
	return nil
}
